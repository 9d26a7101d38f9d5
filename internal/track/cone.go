// Package track models the cone entities produced by a track-mapping
// perception pipeline: a single categorized 2D point (Cone) and an ordered,
// validated collection of them (ConeArray).
//
// Positions are gonum spatial/r2 vectors; arithmetic and equality come from
// that package rather than being redefined here.
package track

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gridline-data/trackmap/internal/render"
)

// Cone is a single detected track-boundary marker: a 2D position plus a
// category. Cones are value types, fixed at construction; build them with
// NewCone so the invariants hold.
type Cone struct {
	Position r2.Vec
	Category Category
}

// NewCone constructs a validated cone. It fails with ErrInvalidPosition when
// either coordinate is NaN or infinite, and with ErrInvalidCategory when the
// category is outside the closed enumeration.
func NewCone(position r2.Vec, category Category) (Cone, error) {
	c := Cone{Position: position, Category: category}
	if err := c.Validate(); err != nil {
		return Cone{}, err
	}
	return c, nil
}

// Validate re-checks the construction invariants. It exists so collection
// boundaries can reject cones assembled without NewCone.
func (c Cone) Validate() error {
	if !isFinite(c.Position.X) || !isFinite(c.Position.Y) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidPosition, c.Position.X, c.Position.Y)
	}
	if !c.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c.Category)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// X returns the x coordinate of the cone.
func (c Cone) X() float64 { return c.Position.X }

// Y returns the y coordinate of the cone.
func (c Cone) Y() float64 { return c.Position.Y }

// Equal reports whether two cones have equal positions and equal categories.
// Positional equality alone is insufficient: differently categorized cones
// may share a position during error analysis.
func (c Cone) Equal(other Cone) bool {
	return c.Position == other.Position && c.Category == other.Category
}

func (c Cone) String() string {
	return fmt.Sprintf("Cone(%g, %g, %s)", c.Position.X, c.Position.Y, c.Category)
}

// Plot draws the cone on the surface using its category's default style,
// with any set fields of override taking precedence. The only side effect is
// on the surface; the cone itself is unchanged.
func (c Cone) Plot(s render.Surface, override render.Style) {
	s.Marker(c.Position.X, c.Position.Y, c.Category.DefaultStyle().Merge(override))
}

// PlotDetailed draws the cone as layered markers (base, stripe, tip) the way
// a physical cone looks from above. Slower than Plot; intended for close-up
// views.
func (c Cone) PlotDetailed(s render.Surface, override render.Style) {
	base := c.Category.DefaultStyle().Merge(override)
	stripe := base
	stripe.Color = categoryStripes[c.Category]
	stripe.Radius = base.Radius * 0.6
	tip := base
	tip.Radius = base.Radius * 0.3

	s.Marker(c.Position.X, c.Position.Y, base)
	s.Marker(c.Position.X, c.Position.Y, stripe)
	s.Marker(c.Position.X, c.Position.Y, tip)
}
