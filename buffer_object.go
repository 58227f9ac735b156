package gfx

import (
	"runtime"
	"unsafe"
)

// BufferObject owns a vertex buffer object. All operations go through the
// global array-buffer slot: binding one buffer unbinds whatever was there.
type BufferObject struct {
	life    *lifecycle
	cleanup runtime.Cleanup
}

// NewBufferObject allocates a buffer object.
func NewBufferObject() *BufferObject {
	handle := driver().CreateBuffer()
	b := &BufferObject{life: &lifecycle{kind: "buffer object", handle: handle}}
	b.cleanup = watch(b, b.life)
	Logger().Debug("created buffer object", "buffer", handle)
	return b
}

// Handle returns the native buffer object.
func (b *BufferObject) Handle() uint32 { return b.life.handle }

// Disposed reports whether Dispose has been called.
func (b *BufferObject) Disposed() bool { return b.life.disposed }

// Bind binds b to the array-buffer slot.
func (b *BufferObject) Bind() error {
	if err := b.life.check(); err != nil {
		return err
	}
	bindArrayBuffer(b.life.handle)
	return nil
}

// UnbindCurrent clears the array-buffer slot, whichever buffer is bound.
func UnbindCurrent() {
	bindArrayBuffer(0)
}

// SetBytes binds b and replaces its whole contents with data.
func (b *BufferObject) SetBytes(data []byte, hint Usage) error {
	if err := b.Bind(); err != nil {
		return err
	}
	driver().BufferData(ArrayBuffer, data, hint)
	Logger().Debug("uploaded buffer data", "buffer", b.life.handle, "bytes", len(data), "usage", hint)
	return nil
}

// SetData uploads elements to b as raw memory, len(elements) times the size
// of T bytes. T must not contain Go pointers.
func SetData[T any](b *BufferObject, elements []T, hint Usage) error {
	var zero T
	n := len(elements) * int(unsafe.Sizeof(zero))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(elements))), n)
	return b.SetBytes(raw, hint)
}

// ReadData binds b and returns a copy of its contents. A zero sized store
// reads back as an empty, non-nil slice.
func (b *BufferObject) ReadData() ([]byte, error) {
	if err := b.Bind(); err != nil {
		return nil, err
	}
	d := driver()
	out := make([]byte, d.GetBufferParameteri(ArrayBuffer, BufferSize))
	if len(out) > 0 {
		d.GetBufferSubData(ArrayBuffer, 0, out)
	}
	return out, nil
}

// Dispose clears the array-buffer slot and deletes the buffer. Calling it
// again is a no-op.
func (b *BufferObject) Dispose() {
	if b.life.disposed {
		return
	}
	b.cleanup.Stop()
	UnbindCurrent()
	driver().DeleteBuffer(b.life.handle)
	b.life.disposed = true
	Logger().Debug("disposed buffer object", "buffer", b.life.handle)
}
