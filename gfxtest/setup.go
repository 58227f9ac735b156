package gfxtest

import (
	"testing"

	"github.com/go-theft-auto/gfx"
)

// Env bundles a fake context with its recording collaborators.
type Env struct {
	Driver   *Driver
	Reporter *Reporter
	Sink     *Sink
	Sources  Sources
}

// Setup installs a fresh fake context with DefaultSources, a Reporter and a
// Sink. Extra options are applied after those, so they win. The logger in
// place before Setup is restored on cleanup.
func Setup(tb testing.TB, opts ...gfx.Option) *Env {
	tb.Helper()
	env := &Env{
		Driver:   NewDriver(),
		Reporter: &Reporter{},
		Sink:     &Sink{},
		Sources:  DefaultSources(),
	}
	orig := gfx.Logger()
	all := append([]gfx.Option{
		gfx.WithSourceProvider(env.Sources),
		gfx.WithFatalReporter(env.Reporter),
		gfx.WithWarningSink(env.Sink),
	}, opts...)
	gfx.Init(env.Driver, all...)
	tb.Cleanup(func() { gfx.SetLogger(orig) })
	return env
}
