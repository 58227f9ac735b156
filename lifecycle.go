package gfx

import (
	"fmt"
	"runtime"
)

// lifecycle is the part of a resource visible to its cleanup. It must never
// point back at the resource, otherwise the resource is never collected.
type lifecycle struct {
	kind     string
	handle   uint32
	disposed bool

	// sink is the warning sink in effect when the resource was created.
	sink WarningSink
}

func (l *lifecycle) check() error {
	if l.disposed {
		return disposedError(l.kind, l.handle)
	}
	return nil
}

// watch arranges for a warning if owner becomes unreachable while l is still
// live. The returned Cleanup is stopped by Dispose.
func watch[T any](owner *T, l *lifecycle) runtime.Cleanup {
	l.sink = currentConfig().sink
	return runtime.AddCleanup(owner, warnUndisposed, l)
}

// warnUndisposed never touches the driver: it runs on the cleanup goroutine,
// not the thread owning the context, so the handle is leaked.
func warnUndisposed(l *lifecycle) {
	if l.disposed {
		return
	}
	l.sink.Warn(fmt.Sprintf("gfx: %s %d was not disposed; call Dispose to release it", l.kind, l.handle))
}
