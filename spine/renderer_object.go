package spine

// RendererObject is a type-erased slot on an engine-owned resource (an atlas
// page) where a renderer parks its own per-resource state. The engine never
// inspects the value; it only carries it and reports disposal.
//
// The slot is single-writer: exactly one goroutine (the render thread) may
// call Set and Get. Dispose is called by the engine when the owning resource
// is torn down; any Get or Set after Dispose is a use-after-free bug and
// panics.
type RendererObject struct {
	value    any
	disposed bool
}

// Set stores the renderer's state in the slot.
func (r *RendererObject) Set(value any) {
	if r.disposed {
		panic("spine: RendererObject used after Dispose")
	}
	r.value = value
}

// Get returns the stored value, or nil if nothing has been stored yet.
func (r *RendererObject) Get() any {
	if r.disposed {
		panic("spine: RendererObject used after Dispose")
	}
	return r.value
}

// Dispose marks the slot dead and returns the value it held so the caller can
// release it. Dispose is idempotent; the second call returns nil.
func (r *RendererObject) Dispose() any {
	if r.disposed {
		return nil
	}
	r.disposed = true
	value := r.value
	r.value = nil
	return value
}

// Disposed reports whether Dispose has been called.
func (r *RendererObject) Disposed() bool {
	return r.disposed
}
