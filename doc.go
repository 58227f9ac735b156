/*
Package gfx manages the lifetime of two GPU resources for a rendering
engine: linked shader programs and vertex buffer objects.

# Overview

Every resource owns exactly one native handle from the moment its
constructor returns until Dispose. There is no sharing, transfer or
reference counting. Operations on a disposed resource fail with an error
matching ErrDisposed and make no driver call.

	// Once the context is current (see backend/opengl.OpenWindow):
	gfx.Init(opengl.NewDriver())

	prog, err := gfx.NewShaderProgram("shaders/basic.vert", "shaders/basic.frag")
	if err != nil {
	    return err
	}
	defer prog.Dispose()

	vbo := gfx.NewBufferObject()
	defer vbo.Dispose()
	if err := gfx.SetData(vbo, vertices, gfx.StaticDraw); err != nil {
	    return err
	}

	prog.Use()
	prog.SetMatrix4("projection", proj)

# Shader build pipeline

NewShaderProgram reads the vertex source, compiles it, reads and compiles
the fragment source, links both into a program, then detaches and deletes
the two stage objects whether or not linking succeeded. A compile failure
is reported with the offending source identifier and the driver log; a link
failure carries no source identifier. Both go to the FatalReporter, which
by default logs and exits: a broken shader has no degraded mode.

# Global bind state

The graphics context is process-wide and so is its bind state. Use records
the program as CurrentProgram (a weak reference), and Bind, SetData and
UnbindCurrent move the single array-buffer slot. Nothing here is
synchronised; all calls must come from the thread owning the context.

# Forgotten Dispose

A resource that becomes unreachable without Dispose triggers a warning on
the WarningSink. The warning runs on the runtime's cleanup goroutine and
cannot release the handle, which is leaked. Treat it as a bug report, not a
release path.
*/
package gfx
