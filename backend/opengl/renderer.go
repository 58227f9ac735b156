package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/gfx"
)

// Vertex is the layout consumed by Renderer: a position and a color.
type Vertex struct {
	Pos   mgl32.Vec3
	Color mgl32.Vec3
}

// Renderer draws a triangle list with one shader program and one vertex
// buffer. The program must declare the vec3 inputs aPos and aColor and the
// mat4 uniforms model and projection.
type Renderer struct {
	program *gfx.ShaderProgram
	vbo     *gfx.BufferObject
	vao     uint32
	count   int32
}

// NewRenderer builds the program from the two source identifiers and sets
// up a vertex array describing Vertex.
func NewRenderer(vertexSource, fragmentSource string) (*Renderer, error) {
	program, err := gfx.NewShaderProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	r := &Renderer{
		program: program,
		vbo:     gfx.NewBufferObject(),
	}

	posLoc, err := program.GetAttributeLocation("aPos")
	if err != nil {
		r.Delete()
		return nil, err
	}
	colorLoc, err := program.GetAttributeLocation("aColor")
	if err != nil {
		r.Delete()
		return nil, err
	}
	if posLoc < 0 || colorLoc < 0 {
		r.Delete()
		return nil, fmt.Errorf("shader is missing aPos or aColor (locations %d, %d)", posLoc, colorLoc)
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	if err := r.vbo.Bind(); err != nil {
		r.Delete()
		return nil, err
	}

	stride := int32(unsafe.Sizeof(Vertex{}))
	gl.VertexAttribPointerWithOffset(uint32(posLoc), 3, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.Pos))
	gl.EnableVertexAttribArray(uint32(posLoc))
	gl.VertexAttribPointerWithOffset(uint32(colorLoc), 3, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.Color))
	gl.EnableVertexAttribArray(uint32(colorLoc))

	gl.BindVertexArray(0)
	gfx.UnbindCurrent()

	return r, nil
}

// SetVertices replaces the triangle list.
func (r *Renderer) SetVertices(verts []Vertex, hint gfx.Usage) error {
	if err := gfx.SetData(r.vbo, verts, hint); err != nil {
		return err
	}
	r.count = int32(len(verts))
	return nil
}

// Render draws the triangle list. model and projection are column-major
// mgl32 matrices.
func (r *Renderer) Render(model, projection mgl32.Mat4) error {
	if err := r.program.Use(); err != nil {
		return err
	}
	if err := r.program.SetMatrix4("model", model.Transpose()); err != nil {
		return err
	}
	if err := r.program.SetMatrix4("projection", projection.Transpose()); err != nil {
		return err
	}

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.count)
	gl.BindVertexArray(0)
	return nil
}

// Program exposes the renderer's shader program for extra uniforms.
func (r *Renderer) Program() *gfx.ShaderProgram { return r.program }

// Delete releases the vertex array, buffer and program.
func (r *Renderer) Delete() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.vbo.Dispose()
	r.program.Dispose()
}
