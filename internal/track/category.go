package track

import (
	"fmt"
	"image/color"

	"github.com/gridline-data/trackmap/internal/render"
)

// Category classifies a cone by its role on a Formula Student track.
type Category string

const (
	// CategoryBlue marks the left track boundary.
	CategoryBlue Category = "blue"
	// CategoryYellow marks the right track boundary.
	CategoryYellow Category = "yellow"
	// CategoryOrange marks start/finish and timing lines.
	CategoryOrange Category = "orange"
	// CategoryOrangeBig marks the start/finish zone (large cone).
	CategoryOrangeBig Category = "orange-big"
)

// allCategories is the closed enumeration in canonical order.
var allCategories = []Category{
	CategoryBlue,
	CategoryYellow,
	CategoryOrange,
	CategoryOrangeBig,
}

// Categories returns the closed set of cone categories in canonical order.
// The returned slice is a copy and safe to modify.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether the category is one of the closed enumeration values.
func (c Category) Valid() bool {
	switch c {
	case CategoryBlue, CategoryYellow, CategoryOrange, CategoryOrangeBig:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory maps untyped input onto the closed enumeration. It fails
// with ErrInvalidCategory for anything outside the set; there is no silent
// coercion.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q (valid: %v)", ErrInvalidCategory, s, allCategories)
	}
	return c, nil
}

// Marker appearance per category. Sizes follow the physical cones: the big
// orange cone is drawn larger than the standard ones.
var categoryStyles = map[Category]render.Style{
	CategoryBlue:      {Color: color.RGBA{R: 0x00, G: 0x57, B: 0xe7, A: 0xff}, Shape: render.ShapeTriangle, Radius: 4},
	CategoryYellow:    {Color: color.RGBA{R: 0xff, G: 0xd5, B: 0x00, A: 0xff}, Shape: render.ShapeTriangle, Radius: 4},
	CategoryOrange:    {Color: color.RGBA{R: 0xff, G: 0x6b, B: 0x00, A: 0xff}, Shape: render.ShapeTriangle, Radius: 4},
	CategoryOrangeBig: {Color: color.RGBA{R: 0xff, G: 0x6b, B: 0x00, A: 0xff}, Shape: render.ShapeTriangle, Radius: 6},
}

// Stripe colors used by detailed plotting: blue and orange cones carry white
// stripes, yellow cones a black one.
var categoryStripes = map[Category]color.Color{
	CategoryBlue:      color.White,
	CategoryYellow:    color.Black,
	CategoryOrange:    color.White,
	CategoryOrangeBig: color.White,
}

// DefaultStyle returns the marker style selected deterministically from the
// category. Unknown categories get a zero style; callers validate first.
func (c Category) DefaultStyle() render.Style {
	return categoryStyles[c]
}
