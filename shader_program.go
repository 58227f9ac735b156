package gfx

import (
	"runtime"
	"weak"

	"github.com/go-gl/mathgl/mgl32"
)

// ShaderProgram owns a linked vertex+fragment program object.
//
// Construction is all-or-nothing: a program that fails to compile or link is
// handed to the fatal reporter and never returned live.
type ShaderProgram struct {
	life    *lifecycle
	cleanup runtime.Cleanup
}

// NewShaderProgram reads both sources through the installed SourceProvider,
// compiles them, and links them into a program. The intermediate shader
// objects are always deleted before it returns.
//
// An error from the SourceProvider is returned as is. Compile and link
// failures are passed to the FatalReporter as a *CompilationError; should
// the reporter return, that error is also returned with a nil program.
func NewShaderProgram(vertexID, fragmentID string) (*ShaderProgram, error) {
	cfg := currentConfig()
	d := driver()

	vs, err := compileStage(d, cfg, StageVertex, vertexID)
	if err != nil {
		return nil, fail(cfg, err)
	}
	fs, err := compileStage(d, cfg, StageFragment, fragmentID)
	if err != nil {
		d.DeleteShader(vs)
		return nil, fail(cfg, err)
	}

	handle := d.CreateProgram()
	d.AttachShader(handle, vs)
	d.AttachShader(handle, fs)
	d.LinkProgram(handle)

	linked := d.GetProgrami(handle, LinkStatus) != False
	var linkLog string
	if !linked {
		linkLog = d.GetProgramInfoLog(handle)
	}

	// Stages are released whatever the link outcome.
	d.DetachShader(handle, vs)
	d.DetachShader(handle, fs)
	d.DeleteShader(fs)
	d.DeleteShader(vs)

	if !linked {
		d.DeleteProgram(handle)
		return nil, fail(cfg, &CompilationError{Stage: StageLink, Log: linkLog})
	}

	Logger().Debug("linked shader program",
		"program", handle, "vertex", vertexID, "fragment", fragmentID)

	p := &ShaderProgram{life: &lifecycle{kind: "shader program", handle: handle}}
	p.cleanup = watch(p, p.life)
	return p, nil
}

// fail hands a compile or link error to the fatal reporter. Every object the
// build created must already be deleted. Source errors pass through.
func fail(cfg *config, err error) error {
	if cerr, ok := err.(*CompilationError); ok {
		cfg.reporter.Report(cerr, true)
	}
	return err
}

// compileStage creates and compiles one shader object. On a compile failure
// the object is deleted and a *CompilationError returned unreported.
func compileStage(d Driver, cfg *config, stage Stage, id string) (uint32, error) {
	src, err := cfg.sources.Read(id)
	if err != nil {
		return 0, err
	}

	typ := VertexShader
	if stage == StageFragment {
		typ = FragmentShader
	}
	shader := d.CreateShader(typ)
	d.ShaderSource(shader, src)
	d.CompileShader(shader)

	if d.GetShaderi(shader, CompileStatus) == False {
		cerr := &CompilationError{Stage: stage, Source: id, Log: d.GetShaderInfoLog(shader)}
		d.DeleteShader(shader)
		return 0, cerr
	}

	Logger().Debug("compiled shader", "stage", stage, "source", id, "shader", shader)
	return shader, nil
}

// Handle returns the native program object.
func (p *ShaderProgram) Handle() uint32 { return p.life.handle }

// Disposed reports whether Dispose has been called.
func (p *ShaderProgram) Disposed() bool { return p.life.disposed }

// GetAttributeLocation returns the location of the named vertex attribute,
// or -1 if the program has no such active attribute.
func (p *ShaderProgram) GetAttributeLocation(name string) (int32, error) {
	if err := p.life.check(); err != nil {
		return -1, err
	}
	return driver().GetAttribLocation(p.life.handle, name), nil
}

// GetUniformLocation returns the location of the named uniform, or -1 if the
// program has no such active uniform.
func (p *ShaderProgram) GetUniformLocation(name string) (int32, error) {
	if err := p.life.check(); err != nil {
		return -1, err
	}
	return driver().GetUniformLocation(p.life.handle, name), nil
}

// Use makes p the active program and records it as CurrentProgram.
func (p *ShaderProgram) Use() error {
	if err := p.life.check(); err != nil {
		return err
	}
	driver().UseProgram(p.life.handle)
	state.program = weak.Make(p)
	return nil
}

// The uniform setters look the location up on every call and upload to the
// active program, so p should be in use.

// SetInt uploads an int (or sampler) uniform.
func (p *ShaderProgram) SetInt(name string, v int32) error {
	if err := p.life.check(); err != nil {
		return err
	}
	d := driver()
	d.Uniform1i(d.GetUniformLocation(p.life.handle, name), v)
	return nil
}

// SetMatrix4 uploads a mat4 uniform with transpose set: m is read in
// row-major order. Pass m.Transpose() for a column-major mgl32 matrix.
func (p *ShaderProgram) SetMatrix4(name string, m mgl32.Mat4) error {
	if err := p.life.check(); err != nil {
		return err
	}
	d := driver()
	d.UniformMatrix4fv(d.GetUniformLocation(p.life.handle, name), true, m)
	return nil
}

// SetVector3 uploads a vec3 uniform.
func (p *ShaderProgram) SetVector3(name string, v mgl32.Vec3) error {
	if err := p.life.check(); err != nil {
		return err
	}
	d := driver()
	d.Uniform3f(d.GetUniformLocation(p.life.handle, name), v[0], v[1], v[2])
	return nil
}

// Dispose deletes the program object. Calling it again is a no-op.
func (p *ShaderProgram) Dispose() {
	if p.life.disposed {
		return
	}
	p.cleanup.Stop()
	driver().DeleteProgram(p.life.handle)
	p.life.disposed = true
	Logger().Debug("disposed shader program", "program", p.life.handle)
}
