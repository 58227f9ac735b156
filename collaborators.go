package gfx

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
)

// SourceProvider resolves a shader source identifier to its text.
type SourceProvider interface {
	Read(id string) (string, error)
}

// FatalReporter is told about unrecoverable failures. When shouldFail is true
// the reporter is expected not to return.
type FatalReporter interface {
	Report(err error, shouldFail bool)
}

// WarningSink receives lifecycle hygiene warnings. It may be called from the
// runtime's cleanup goroutine.
type WarningSink interface {
	Warn(message string)
}

// SourceFunc adapts a function to a SourceProvider.
type SourceFunc func(id string) (string, error)

func (f SourceFunc) Read(id string) (string, error) { return f(id) }

// ReporterFunc adapts a function to a FatalReporter.
type ReporterFunc func(err error, shouldFail bool)

func (f ReporterFunc) Report(err error, shouldFail bool) { f(err, shouldFail) }

// WarnFunc adapts a function to a WarningSink.
type WarnFunc func(message string)

func (f WarnFunc) Warn(message string) { f(message) }

// FileSource reads shader sources from the file system, treating the
// identifier as a path.
type FileSource struct{}

func (FileSource) Read(id string) (string, error) {
	b, err := os.ReadFile(id)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FSSource reads shader sources from an fs.FS, typically an embed.FS.
type FSSource struct {
	FS fs.FS
}

func (s FSSource) Read(id string) (string, error) {
	b, err := fs.ReadFile(s.FS, id)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// exit is swapped out by tests.
var exit = os.Exit

// ExitReporter logs the error and terminates the process with Code (1 when
// zero). Reports with shouldFail false are ignored.
type ExitReporter struct {
	Code int
}

func (r ExitReporter) Report(err error, shouldFail bool) {
	if !shouldFail {
		return
	}
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelError) {
		l = slog.Default()
	}
	l.Error("unrecoverable graphics error", "err", err)

	code := r.Code
	if code == 0 {
		code = 1
	}
	exit(code)
}

// LogSink writes warnings to the gfx logger.
type LogSink struct{}

func (LogSink) Warn(message string) {
	Logger().Warn(message)
}
