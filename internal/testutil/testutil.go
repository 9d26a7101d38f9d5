// Package testutil provides shared test utilities and fixtures.
//
// The centerpiece is RecordingSurface, a fake drawing surface that records
// draw calls in order so plotting behavior can be verified without any
// rendering backend.
package testutil

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gridline-data/trackmap/internal/render"
	"github.com/gridline-data/trackmap/internal/track"
)

// MarkerCall records one Surface.Marker invocation.
type MarkerCall struct {
	X, Y  float64
	Style render.Style
}

// LegendCall records one Surface.Legend invocation.
type LegendCall struct {
	Label string
	Style render.Style
}

// RecordingSurface implements render.Surface by recording every call in
// arrival order.
type RecordingSurface struct {
	Markers []MarkerCall
	Legends []LegendCall
}

// Marker appends the call to Markers.
func (s *RecordingSurface) Marker(x, y float64, style render.Style) {
	s.Markers = append(s.Markers, MarkerCall{X: x, Y: y, Style: style})
}

// Legend appends the call to Legends.
func (s *RecordingSurface) Legend(label string, style render.Style) {
	s.Legends = append(s.Legends, LegendCall{Label: label, Style: style})
}

// MustCone builds a cone or fails the test.
func MustCone(t *testing.T, x, y float64, category track.Category) track.Cone {
	t.Helper()
	c, err := track.NewCone(r2.Vec{X: x, Y: y}, category)
	if err != nil {
		t.Fatalf("NewCone(%v, %v, %s): %v", x, y, category, err)
	}
	return c
}

// MustConeArray builds a cone array or fails the test.
func MustConeArray(t *testing.T, cones ...track.Cone) *track.ConeArray {
	t.Helper()
	a, err := track.NewConeArray(cones...)
	if err != nil {
		t.Fatalf("NewConeArray: %v", err)
	}
	return a
}

// BoundaryPair returns a small left/right boundary fixture: three blue cones
// and three yellow cones along parallel lines.
func BoundaryPair(t *testing.T) (left, right *track.ConeArray) {
	t.Helper()
	left = MustConeArray(t,
		MustCone(t, 0, 1.5, track.CategoryBlue),
		MustCone(t, 2, 1.5, track.CategoryBlue),
		MustCone(t, 4, 1.5, track.CategoryBlue),
	)
	right = MustConeArray(t,
		MustCone(t, 0, -1.5, track.CategoryYellow),
		MustCone(t, 2, -1.5, track.CategoryYellow),
		MustCone(t, 4, -1.5, track.CategoryYellow),
	)
	return left, right
}
