package gfx_test

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/gfx"
	"github.com/go-theft-auto/gfx/gfxtest"
)

func newBasicProgram(t *testing.T) *gfx.ShaderProgram {
	t.Helper()
	p, err := gfx.NewShaderProgram("shaders/basic.vert", "shaders/basic.frag")
	require.NoError(t, err)
	require.NotNil(t, p)
	t.Cleanup(p.Dispose)
	return p
}

func TestShaderProgramBuild(t *testing.T) {
	env := gfxtest.Setup(t)

	p := newBasicProgram(t)

	assert.NotZero(t, p.Handle())
	assert.False(t, p.Disposed())
	assert.Empty(t, env.Reporter.Reports())

	// Only the program survives construction.
	assert.Equal(t, 0, env.Driver.LiveShaders())
	assert.Equal(t, 1, env.Driver.LivePrograms())
	assert.Equal(t, 2, env.Driver.Count("CompileShader"))
	assert.Equal(t, 2, env.Driver.Count("DetachShader"))
	assert.Equal(t, 2, env.Driver.Count("DeleteShader"))
}

func TestShaderProgramPipelineOrder(t *testing.T) {
	env := gfxtest.Setup(t)
	newBasicProgram(t)

	want := []string{
		"CreateShader", "ShaderSource", "CompileShader", "GetShaderi",
		"CreateShader", "ShaderSource", "CompileShader", "GetShaderi",
		"CreateProgram", "AttachShader", "AttachShader", "LinkProgram", "GetProgrami",
		"DetachShader", "DetachShader", "DeleteShader", "DeleteShader",
	}
	assert.Equal(t, want, env.Driver.CallNames())
}

// liveAtReport reinstalls env's reporter so that it also counts the shader
// and program objects still alive when a failure is reported.
func liveAtReport(env *gfxtest.Env) *int {
	live := -1
	gfx.Init(env.Driver,
		gfx.WithSourceProvider(env.Sources),
		gfx.WithWarningSink(env.Sink),
		gfx.WithFatalReporter(gfx.ReporterFunc(func(err error, shouldFail bool) {
			live = env.Driver.LiveShaders() + env.Driver.LivePrograms()
			env.Reporter.Report(err, shouldFail)
		})),
	)
	return &live
}

func TestShaderProgramVertexCompileError(t *testing.T) {
	env := gfxtest.Setup(t)
	live := liveAtReport(env)

	p, err := gfx.NewShaderProgram("shaders/broken.vert", "shaders/basic.frag")
	require.Nil(t, p)

	var cerr *gfx.CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, gfx.StageVertex, cerr.Stage)
	assert.Equal(t, "shaders/broken.vert", cerr.Source)
	assert.Contains(t, cerr.Log, "missing semicolon")

	reports := env.Reporter.Reports()
	require.Len(t, reports, 1)
	assert.True(t, reports[0].ShouldFail)
	assert.Same(t, cerr, reports[0].Err)

	// The fragment stage is never created.
	assert.Equal(t, 1, env.Driver.Count("CreateShader"))
	assert.Equal(t, 0, env.Driver.Count("CreateProgram"))
	assert.Equal(t, 0, env.Driver.LiveShaders())
	assert.Equal(t, 0, *live, "failed stage should be released before reporting")
}

func TestShaderProgramFragmentCompileError(t *testing.T) {
	env := gfxtest.Setup(t)
	live := liveAtReport(env)

	p, err := gfx.NewShaderProgram("shaders/basic.vert", "shaders/broken.frag")
	require.Nil(t, p)

	var cerr *gfx.CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, gfx.StageFragment, cerr.Stage)
	assert.Equal(t, "shaders/broken.frag", cerr.Source)
	assert.NotEmpty(t, cerr.Log)

	require.Len(t, env.Reporter.Reports(), 1)
	assert.Equal(t, 0, *live, "compiled vertex stage should be released before reporting")
	assert.Equal(t, 0, env.Driver.LiveShaders())
	assert.Equal(t, 0, env.Driver.LivePrograms())
	names := env.Driver.CallNames()
	assert.Equal(t, []string{"DeleteShader", "DeleteShader"}, names[len(names)-2:])
}

func TestShaderProgramLinkError(t *testing.T) {
	env := gfxtest.Setup(t)
	live := liveAtReport(env)

	p, err := gfx.NewShaderProgram("shaders/basic.vert", "shaders/mismatched.frag")
	require.Nil(t, p)

	var cerr *gfx.CompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, gfx.StageLink, cerr.Stage)
	assert.Empty(t, cerr.Source)
	assert.Contains(t, cerr.Log, "Color")

	require.Len(t, env.Reporter.Reports(), 1)
	assert.Equal(t, 0, *live, "stages and program should be released before reporting")
	assert.Equal(t, 2, env.Driver.Count("DetachShader"))
	assert.Equal(t, 2, env.Driver.Count("DeleteShader"))
}

func TestShaderProgramSourceErrorPropagates(t *testing.T) {
	env := gfxtest.Setup(t)

	_, err := gfx.NewShaderProgram("shaders/missing.vert", "shaders/basic.frag")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	var perr *fs.PathError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "shaders/missing.vert", perr.Path)
	assert.Empty(t, env.Reporter.Reports())
	assert.Equal(t, 0, env.Driver.Count("CreateShader"))

	_, err = gfx.NewShaderProgram("shaders/basic.vert", "shaders/missing.frag")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Empty(t, env.Reporter.Reports())
	assert.Equal(t, 0, env.Driver.LiveShaders(), "compiled vertex stage should be released")
}

func TestShaderProgramLocations(t *testing.T) {
	gfxtest.Setup(t)
	p := newBasicProgram(t)

	loc, err := p.GetAttributeLocation("aColor")
	require.NoError(t, err)
	assert.Equal(t, int32(1), loc)

	loc, err = p.GetAttributeLocation("aNormal")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), loc)

	loc, err = p.GetUniformLocation("tint")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, loc, int32(0))

	loc, err = p.GetUniformLocation("nope")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), loc)
}

func TestShaderProgramUniforms(t *testing.T) {
	env := gfxtest.Setup(t)
	p := newBasicProgram(t)
	require.NoError(t, p.Use())

	require.NoError(t, p.SetInt("albedo", 3))
	require.NoError(t, p.SetVector3("tint", mgl32.Vec3{0.5, 0.25, 1}))

	rowMajor := mgl32.Mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	require.NoError(t, p.SetMatrix4("model", rowMajor))

	v, ok := env.Driver.Uniform(p.Handle(), "albedo")
	require.True(t, ok)
	assert.Equal(t, int32(3), v)

	v, ok = env.Driver.Uniform(p.Handle(), "tint")
	require.True(t, ok)
	assert.Equal(t, [3]float32{0.5, 0.25, 1}, v)

	v, ok = env.Driver.Uniform(p.Handle(), "model")
	require.True(t, ok)
	assert.Equal(t, [16]float32(rowMajor.Transpose()), v)

	// Unknown uniforms are a no-op, not an error.
	assert.NoError(t, p.SetInt("missing", 1))
}

func TestShaderProgramUniformLookupEveryCall(t *testing.T) {
	env := gfxtest.Setup(t)
	p := newBasicProgram(t)
	require.NoError(t, p.Use())
	env.Driver.ResetCalls()

	for i := range 3 {
		require.NoError(t, p.SetInt("albedo", int32(i)))
	}
	assert.Equal(t, 3, env.Driver.Count("GetUniformLocation"))
}

func TestShaderProgramUse(t *testing.T) {
	env := gfxtest.Setup(t)
	assert.Nil(t, gfx.CurrentProgram())

	first := newBasicProgram(t)
	second := newBasicProgram(t)

	require.NoError(t, first.Use())
	assert.Same(t, first, gfx.CurrentProgram())
	assert.Equal(t, first.Handle(), env.Driver.CurrentProgram())

	require.NoError(t, second.Use())
	assert.Same(t, second, gfx.CurrentProgram())
	assert.Equal(t, second.Handle(), env.Driver.CurrentProgram())
	assert.Equal(t, 2, env.Driver.Count("UseProgram"))
}

func TestShaderProgramDisposeIdempotent(t *testing.T) {
	env := gfxtest.Setup(t)
	p := newBasicProgram(t)

	p.Dispose()
	p.Dispose()

	assert.True(t, p.Disposed())
	assert.Equal(t, 1, env.Driver.Count("DeleteProgram"))
	assert.Equal(t, 0, env.Driver.LivePrograms())
}

func TestShaderProgramDisposedOperations(t *testing.T) {
	env := gfxtest.Setup(t)
	p := newBasicProgram(t)
	p.Dispose()
	env.Driver.ResetCalls()

	ops := map[string]func() error{
		"Use":    p.Use,
		"SetInt": func() error { return p.SetInt("albedo", 1) },
		"SetVector3": func() error {
			return p.SetVector3("tint", mgl32.Vec3{})
		},
		"SetMatrix4": func() error {
			return p.SetMatrix4("model", mgl32.Ident4())
		},
		"GetUniformLocation": func() error {
			_, err := p.GetUniformLocation("tint")
			return err
		},
		"GetAttributeLocation": func() error {
			_, err := p.GetAttributeLocation("aPos")
			return err
		},
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			assert.ErrorIs(t, err, gfx.ErrDisposed)
		})
	}
	assert.Empty(t, env.Driver.Calls, "no driver call after dispose")
}

func TestShaderProgramUndisposedWarns(t *testing.T) {
	env := gfxtest.Setup(t)

	handle := func() uint32 {
		p, err := gfx.NewShaderProgram("shaders/basic.vert", "shaders/basic.frag")
		require.NoError(t, err)
		require.NoError(t, p.Use())
		return p.Handle()
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return len(env.Sink.Messages()) > 0
	}, 5*time.Second, 10*time.Millisecond)

	msgs := env.Sink.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "shader program")
	assert.Contains(t, msgs[0], "Dispose")
	assert.Nil(t, gfx.CurrentProgram(), "current program must not keep the program alive")

	// The warning is diagnostic only; the cleanup never calls the driver.
	assert.Equal(t, 0, env.Driver.Count("DeleteProgram"))
	assert.Equal(t, handle, env.Driver.CurrentProgram())
}

func TestShaderProgramDisposedDoesNotWarn(t *testing.T) {
	env := gfxtest.Setup(t)

	var leaked uint32
	func() {
		p, err := gfx.NewShaderProgram("shaders/basic.vert", "shaders/basic.frag")
		require.NoError(t, err)
		p.Dispose()

		q, err := gfx.NewShaderProgram("shaders/basic.vert", "shaders/basic.frag")
		require.NoError(t, err)
		leaked = q.Handle()
	}()

	// The leaked program's warning shows the cleanups have run.
	require.Eventually(t, func() bool {
		runtime.GC()
		return len(env.Sink.Messages()) > 0
	}, 5*time.Second, 10*time.Millisecond)

	msgs := env.Sink.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], fmt.Sprintf("shader program %d ", leaked))
}

func TestCompilationErrorMessage(t *testing.T) {
	compile := &gfx.CompilationError{Stage: gfx.StageFragment, Source: "a.frag", Log: "bad"}
	assert.Equal(t, "gfx: compiling fragment shader @ a.frag: bad", compile.Error())

	link := &gfx.CompilationError{Stage: gfx.StageLink, Log: "mismatch"}
	assert.Equal(t, "gfx: linking program: mismatch", link.Error())

	assert.False(t, errors.Is(link, gfx.ErrDisposed))
	assert.Equal(t, "Stage(7)", gfx.Stage(7).String())
}
