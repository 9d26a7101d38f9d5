// Package vehicle models the on-track vehicle and its detection hardware: a
// camera with a triangular field-of-view that filters cone arrays down to
// what the car can actually see.
package vehicle

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gridline-data/trackmap/internal/render"
	"github.com/gridline-data/trackmap/internal/track"
)

// ErrInvalidParameter indicates a vehicle parameter that is non-finite or
// outside its physical range.
var ErrInvalidParameter = errors.New("invalid vehicle parameter")

// triangle is a 2D triangle used to approximate the camera's detection area.
type triangle struct {
	a, b, c r2.Vec
}

// contains reports whether p lies inside the triangle, edges included.
// Sign-of-cross-product test; tolerant of degenerate zero-area triangles.
func (t triangle) contains(p r2.Vec) bool {
	d1 := cross(sub(p, t.a), sub(t.b, t.a))
	d2 := cross(sub(p, t.b), sub(t.c, t.b))
	d3 := cross(sub(p, t.c), sub(t.a, t.c))

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross(a, b r2.Vec) float64 { return a.X*b.Y - a.Y*b.X }
func sub(a, b r2.Vec) r2.Vec    { return r2.Vec{X: a.X - b.X, Y: a.Y - b.Y} }

// Camera is the onboard detection camera: a position, a lens orientation and
// a focal angle/length spanning a detection area. The area is approximated
// by two triangles: apex-to-boundary and boundary-to-far-cap.
type Camera struct {
	position    r2.Vec
	orientation float64 // lens heading, radians
	focalAngle  float64 // full aperture, radians
	focalLength float64 // detection range, meters

	area [2]triangle
}

// NewCamera constructs a validated camera and computes its detection area.
func NewCamera(position r2.Vec, orientation, focalAngle, focalLength float64) (*Camera, error) {
	c := &Camera{
		position:    position,
		orientation: orientation,
		focalAngle:  focalAngle,
		focalLength: focalLength,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.updateArea()
	return c, nil
}

func (c *Camera) validate() error {
	for name, v := range map[string]float64{
		"position.x":   c.position.X,
		"position.y":   c.position.Y,
		"orientation":  c.orientation,
		"focal_angle":  c.focalAngle,
		"focal_length": c.focalLength,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameter, name)
		}
	}
	if c.focalAngle <= 0 || c.focalAngle >= math.Pi {
		return fmt.Errorf("%w: focal_angle %v outside (0, pi)", ErrInvalidParameter, c.focalAngle)
	}
	if c.focalLength <= 0 {
		return fmt.Errorf("%w: focal_length %v must be positive", ErrInvalidParameter, c.focalLength)
	}
	return nil
}

// updateArea recomputes the two detection triangles from the current pose.
func (c *Camera) updateArea() {
	leftRot := c.orientation - c.focalAngle/2
	rightRot := c.orientation + c.focalAngle/2

	far := add(c.position, polar(c.focalLength, c.orientation))
	left := add(c.position, polar(c.focalLength, leftRot))
	right := add(c.position, polar(c.focalLength, rightRot))

	c.area = [2]triangle{
		{a: c.position, b: left, c: right},
		{a: left, b: right, c: far},
	}
}

func add(a, b r2.Vec) r2.Vec { return r2.Vec{X: a.X + b.X, Y: a.Y + b.Y} }

func polar(length, angle float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Position returns the camera position.
func (c *Camera) Position() r2.Vec { return c.position }

// Orientation returns the lens heading in radians.
func (c *Camera) Orientation() float64 { return c.orientation }

// FocalAngle returns the full aperture in radians.
func (c *Camera) FocalAngle() float64 { return c.focalAngle }

// FocalLength returns the detection range in meters.
func (c *Camera) FocalLength() float64 { return c.focalLength }

// SetPose moves and rotates the camera, re-validating and recomputing the
// detection area. On failure the camera is unchanged.
func (c *Camera) SetPose(position r2.Vec, orientation float64) error {
	next := *c
	next.position = position
	next.orientation = orientation
	if err := next.validate(); err != nil {
		return err
	}
	next.updateArea()
	*c = next
	return nil
}

// Sees reports whether the cone lies inside the camera's detection area.
func (c *Camera) Sees(cone track.Cone) bool {
	return c.area[0].contains(cone.Position) || c.area[1].contains(cone.Position)
}

// Detection is the result of one detection pass: the input arrays filtered
// down to visible cones, order preserved, stamped with a unique ID.
type Detection struct {
	ID     string
	Arrays []*track.ConeArray
}

// Detect filters each array to the cones inside the detection area. Relative
// order within each array is preserved; arrays with no visible cones come
// back empty, not nil.
func (c *Camera) Detect(arrays ...*track.ConeArray) (Detection, error) {
	det := Detection{
		ID:     fmt.Sprintf("det_%s", uuid.NewString()),
		Arrays: make([]*track.ConeArray, 0, len(arrays)),
	}
	for i, arr := range arrays {
		if arr == nil {
			return Detection{}, fmt.Errorf("%w: cone array %d is nil", ErrInvalidParameter, i)
		}
		var visible []track.Cone
		for _, cone := range arr.Cones() {
			if c.Sees(cone) {
				visible = append(visible, cone)
			}
		}
		filtered, err := track.NewConeArray(visible...)
		if err != nil {
			return Detection{}, fmt.Errorf("cone array %d: %w", i, err)
		}
		det.Arrays = append(det.Arrays, filtered)
	}
	return det, nil
}

var cameraStyle = render.Style{
	Color:  color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff},
	Shape:  render.ShapeSquare,
	Radius: 4,
}

var fovStyle = render.Style{
	Color:  color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff},
	Shape:  render.ShapeCross,
	Radius: 3,
}

// Plot draws the camera position and the three corners of its detection
// area.
func (c *Camera) Plot(s render.Surface) {
	s.Legend("camera", cameraStyle)
	s.Marker(c.position.X, c.position.Y, cameraStyle)
	for _, corner := range []r2.Vec{c.area[0].b, c.area[0].c, c.area[1].c} {
		s.Marker(corner.X, corner.Y, fovStyle)
	}
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera(x: %g, y: %g, orientation: %g, focal_angle: %g, focal_length: %g)",
		c.position.X, c.position.Y, c.orientation, c.focalAngle, c.focalLength)
}
