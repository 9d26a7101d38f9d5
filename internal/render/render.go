// Package render defines the drawing-surface abstraction used to plot track
// entities. A Surface is an externally owned sink for marker and legend
// primitives; backends (PNG via gonum/plot, HTML via go-echarts) implement it,
// and the caller owns the backend's lifetime: create it, pass it into the
// plot operations, then save or serve the result.
package render

import "image/color"

// Shape selects the marker glyph drawn for a point.
type Shape int

const (
	// ShapeUnset means "no override"; Merge keeps the base shape.
	ShapeUnset Shape = iota
	// ShapeCircle is a filled circle.
	ShapeCircle
	// ShapeRing is an unfilled circle.
	ShapeRing
	// ShapeTriangle is a filled upward triangle.
	ShapeTriangle
	// ShapeSquare is a filled square.
	ShapeSquare
	// ShapeCross is a diagonal cross.
	ShapeCross
)

// Style describes how a single marker is drawn. Zero-valued fields are
// treated as "unset" by Merge, so a Style can double as a partial override.
type Style struct {
	Color  color.Color // marker fill color; nil means unset
	Shape  Shape       // glyph shape; ShapeUnset means unset
	Radius float64     // marker radius in points; <= 0 means unset
}

// Merge returns the base style with any set fields of override applied on
// top. Neither receiver nor argument is mutated.
func (s Style) Merge(override Style) Style {
	out := s
	if override.Color != nil {
		out.Color = override.Color
	}
	if override.Shape != ShapeUnset {
		out.Shape = override.Shape
	}
	if override.Radius > 0 {
		out.Radius = override.Radius
	}
	return out
}

// IsZero reports whether no field of the style is set.
func (s Style) IsZero() bool {
	return s.Color == nil && s.Shape == ShapeUnset && s.Radius <= 0
}

// Same reports whether two styles render identically. Colors are compared by
// their RGBA values rather than interface equality, so uncomparable
// color.Color implementations cannot panic.
func Same(a, b Style) bool {
	if a.Shape != b.Shape || a.Radius != b.Radius {
		return false
	}
	if (a.Color == nil) != (b.Color == nil) {
		return false
	}
	if a.Color == nil {
		return true
	}
	ar, ag, ab, aa := a.Color.RGBA()
	br, bg, bb, ba := b.Color.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// Surface is a 2D drawing target. Implementations accumulate draw calls in
// the order they arrive; callers rely on that ordering so later markers are
// rendered on top of earlier ones.
//
// Surfaces are not safe for concurrent use; callers serialize draw calls the
// same way they serialize collection mutation.
type Surface interface {
	// Marker draws a marker at (x, y) with the given style.
	Marker(x, y float64, s Style)

	// Legend registers a legend entry associating label with style. Calling
	// Legend twice with the same label is allowed; backends keep the first.
	Legend(label string, s Style)
}
