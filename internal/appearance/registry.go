package appearance

// Registry is a Binder that fans each binding out to the renderables
// registered for a surface and remembers the last handle bound to it.
//
// Registry is not safe for concurrent use; it lives on the tick goroutine
// together with the book that drives it.
type Registry struct {
	renderables map[Surface][]Renderable
	current     map[Surface]Handle
	binds       int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		renderables: make(map[Surface][]Renderable),
		current:     make(map[Surface]Handle),
	}
}

// Register adds a renderable for a surface. If the surface already has a
// handle bound, the renderable receives it immediately.
func (r *Registry) Register(surface Surface, rr Renderable) {
	r.renderables[surface] = append(r.renderables[surface], rr)
	if h, ok := r.current[surface]; ok {
		rr.SetAppearance(h)
	}
}

// Bind implements Binder.
func (r *Registry) Bind(surface Surface, h Handle) {
	r.current[surface] = h
	r.binds++
	for _, rr := range r.renderables[surface] {
		rr.SetAppearance(h)
	}
}

// Current returns the handle last bound to a surface.
func (r *Registry) Current(surface Surface) Handle {
	return r.current[surface]
}

// BindCount returns how many bindings have been made.
func (r *Registry) BindCount() int {
	return r.binds
}

// Snapshot returns the current handle of every bound surface keyed by name.
func (r *Registry) Snapshot() map[string]Handle {
	out := make(map[string]Handle, len(r.current))
	for s, h := range r.current {
		out[s.String()] = h
	}
	return out
}
