package gfx

import (
	"log/slog"
	"sync/atomic"
	"weak"
)

type config struct {
	sources   SourceProvider
	reporter  FatalReporter
	sink      WarningSink
	logger    *slog.Logger
	hasLogger bool
}

// Option configures the collaborators installed by Init.
type Option func(*config)

// WithSourceProvider sets where shader sources are read from.
func WithSourceProvider(p SourceProvider) Option {
	return func(c *config) { c.sources = p }
}

// WithFatalReporter sets the reporter for shader compile and link failures.
func WithFatalReporter(r FatalReporter) Option {
	return func(c *config) { c.reporter = r }
}

// WithWarningSink sets the sink for undisposed-resource warnings.
func WithWarningSink(w WarningSink) Option {
	return func(c *config) { c.sink = w }
}

// WithLogger calls SetLogger with l during Init.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
		c.hasLogger = true
	}
}

func defaultConfig() *config {
	return &config{
		sources:  FileSource{},
		reporter: ExitReporter{},
		sink:     LogSink{},
	}
}

// cfgPtr is read by the cleanup goroutine, so it is swapped atomically.
var cfgPtr atomic.Pointer[config]

func init() {
	cfgPtr.Store(defaultConfig())
}

func currentConfig() *config {
	return cfgPtr.Load()
}

// state mirrors the bind slots of the graphics context. It holds no
// ownership: the current program is a weak pointer. Like the context itself
// it must only be touched from the thread that owns the context.
var state struct {
	driver      Driver
	program     weak.Pointer[ShaderProgram]
	arrayBuffer uint32
}

// Init installs d as the process-wide graphics context and resets the
// tracked bind state. Call it once the context is current, before creating
// any resource.
func Init(d Driver, opts ...Option) {
	if d == nil {
		panic("gfx: Init called with nil Driver")
	}
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	if c.hasLogger {
		SetLogger(c.logger)
	}
	cfgPtr.Store(c)

	state.driver = d
	state.program = weak.Pointer[ShaderProgram]{}
	state.arrayBuffer = 0
}

func driver() Driver {
	if state.driver == nil {
		panic("gfx: no Driver installed, call gfx.Init first")
	}
	return state.driver
}

// CurrentProgram returns the program most recently activated with Use, or
// nil if none has been or it has since been collected.
func CurrentProgram() *ShaderProgram {
	return state.program.Value()
}

// BoundArrayBuffer returns the handle last bound to the array-buffer slot,
// zero meaning none.
func BoundArrayBuffer() uint32 {
	return state.arrayBuffer
}

// MaxVertexAttributes reports how many vertex attributes a vertex shader can
// consume on the current hardware.
func MaxVertexAttributes() int {
	return int(driver().GetInteger(MaxVertexAttribs))
}

func bindArrayBuffer(handle uint32) {
	driver().BindBuffer(ArrayBuffer, handle)
	state.arrayBuffer = handle
}
