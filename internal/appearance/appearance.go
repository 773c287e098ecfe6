// Package appearance defines the handles and surfaces the book engine binds.
//
// The engine never looks inside a Handle. It only decides which handle each
// Surface should show and hands that decision to a Binder, which propagates
// it to every renderable instance registered for the surface.
//
// # Usage
//
//	reg := appearance.NewRegistry()
//	reg.Register(appearance.SurfacePageLeft, appearance.RenderableFunc(func(h appearance.Handle) {
//		leftMesh.SetMaterial(string(h))
//	}))
//	reg.Bind(appearance.SurfacePageLeft, "page-3")
package appearance

import "fmt"

// Handle identifies an appearance (a material, a texture set) owned by the
// renderer. The zero value means "unset".
type Handle string

// IsZero reports whether the handle is unset.
func (h Handle) IsZero() bool {
	return h == ""
}

// Or returns h, or fallback when h is unset.
func (h Handle) Or(fallback Handle) Handle {
	if h.IsZero() {
		return fallback
	}
	return h
}

// Surface is a logical physical face of the book.
type Surface int

const (
	SurfaceCover     Surface = iota // outer cover, both faces
	SurfacePageFront                // inside page shown when open at the front
	SurfacePageBack                 // inside page shown when open at the back
	SurfacePageLeft                 // left page of the open book
	SurfacePageRight                // right page of the open book
)

// Surfaces lists every surface in binding order.
var Surfaces = []Surface{
	SurfaceCover,
	SurfacePageFront,
	SurfacePageBack,
	SurfacePageLeft,
	SurfacePageRight,
}

func (s Surface) String() string {
	switch s {
	case SurfaceCover:
		return "cover"
	case SurfacePageFront:
		return "page_front"
	case SurfacePageBack:
		return "page_back"
	case SurfacePageLeft:
		return "page_left"
	case SurfacePageRight:
		return "page_right"
	default:
		return fmt.Sprintf("surface(%d)", int(s))
	}
}

// ParseSurface converts a surface name back to a Surface.
func ParseSurface(name string) (Surface, error) {
	for _, s := range Surfaces {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown surface %q", name)
}

// Binder propagates an appearance to everything that renders a surface.
type Binder interface {
	Bind(surface Surface, h Handle)
}

// Renderable is a single instance that displays one surface.
type Renderable interface {
	SetAppearance(h Handle)
}

// RenderableFunc adapts a plain function to Renderable.
type RenderableFunc func(h Handle)

func (f RenderableFunc) SetAppearance(h Handle) { f(h) }
