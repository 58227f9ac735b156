// Package opengl provides the OpenGL 4.1 core-profile gfx.Driver, a GLFW
// window bootstrap, and a small mesh renderer built on gfx resources.
package opengl

import (
	"bytes"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/gfx"
)

// Driver issues gfx calls against the OpenGL context current on the calling
// thread. gl.Init must have succeeded first.
//
// Each method mirrors the gl function of the same name (the i/fv suffixed
// getters wrap the iv variants, CreateBuffer wraps GenBuffers), converting
// gfx enums to uint32 and Go strings to NUL-terminated ones.
type Driver struct{}

// NewDriver returns the OpenGL driver.
func NewDriver() *Driver { return &Driver{} }

var _ gfx.Driver = (*Driver)(nil)

func (*Driver) CreateShader(typ gfx.ShaderType) uint32 {
	return gl.CreateShader(uint32(typ))
}

func (*Driver) ShaderSource(shader uint32, src string) {
	csource, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (*Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (*Driver) GetShaderi(shader uint32, pname gfx.Enum) int32 {
	var v int32
	gl.GetShaderiv(shader, uint32(pname), &v)
	return v
}

func (d *Driver) GetShaderInfoLog(shader uint32) string {
	n := d.GetShaderi(shader, gfx.InfoLogLength)
	if n <= 0 {
		return ""
	}
	log := make([]byte, n+1)
	gl.GetShaderInfoLog(shader, n, nil, &log[0])
	return cString(log)
}

func (*Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*Driver) CreateProgram() uint32 { return gl.CreateProgram() }

func (*Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (*Driver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (*Driver) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (*Driver) GetProgrami(program uint32, pname gfx.Enum) int32 {
	var v int32
	gl.GetProgramiv(program, uint32(pname), &v)
	return v
}

func (d *Driver) GetProgramInfoLog(program uint32) string {
	n := d.GetProgrami(program, gfx.InfoLogLength)
	if n <= 0 {
		return ""
	}
	log := make([]byte, n+1)
	gl.GetProgramInfoLog(program, n, nil, &log[0])
	return cString(log)
}

func (*Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (*Driver) UseProgram(program uint32) { gl.UseProgram(program) }

func (*Driver) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (*Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Driver) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (*Driver) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (*Driver) UniformMatrix4fv(location int32, transpose bool, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &m[0])
}

func (*Driver) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (*Driver) BindBuffer(target gfx.BufferTarget, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

// BufferData passes a nil pointer for empty data, which allocates a zero
// sized store.
func (*Driver) BufferData(target gfx.BufferTarget, data []byte, usage gfx.Usage) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = gl.Ptr(data)
	}
	gl.BufferData(uint32(target), len(data), p, uint32(usage))
}

func (*Driver) GetBufferParameteri(target gfx.BufferTarget, pname gfx.Enum) int32 {
	var v int32
	gl.GetBufferParameteriv(uint32(target), uint32(pname), &v)
	return v
}

func (*Driver) GetBufferSubData(target gfx.BufferTarget, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.GetBufferSubData(uint32(target), offset, len(data), gl.Ptr(data))
}

func (*Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (*Driver) GetInteger(pname gfx.Enum) int32 {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return v
}

// cString trims an info log buffer at its NUL terminator.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(string(b), "\n")
}
