package gfx

import (
	"errors"
	"fmt"
)

// ErrDisposed is returned by any operation on a resource after Dispose.
var ErrDisposed = errors.New("gfx: resource disposed")

func disposedError(kind string, handle uint32) error {
	return fmt.Errorf("%w: %s %d", ErrDisposed, kind, handle)
}

// Stage identifies where in the build pipeline a CompilationError occurred.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageLink
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// CompilationError reports a shader stage that failed to compile or a program
// that failed to link. Source is empty for link failures since no single
// source is at fault.
type CompilationError struct {
	Stage  Stage
	Source string
	Log    string
}

func (e *CompilationError) Error() string {
	if e.Stage == StageLink {
		return fmt.Sprintf("gfx: linking program: %s", e.Log)
	}
	return fmt.Sprintf("gfx: compiling %s shader @ %s: %s", e.Stage, e.Source, e.Log)
}
