package vehicle

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gridline-data/trackmap/internal/render"
)

// CarState holds the dynamic properties of the car at one instant.
type CarState struct {
	Position     r2.Vec  // meters
	Orientation  float64 // radians
	Steering     float64 // front wheel angle, radians
	Speed        float64 // m/s
	Acceleration float64 // m/s^2
	Torque       float64 // Nm
}

// NewCarState builds a validated state; every component must be finite.
func NewCarState(position r2.Vec, orientation, steering, speed, acceleration, torque float64) (CarState, error) {
	st := CarState{
		Position:     position,
		Orientation:  orientation,
		Steering:     steering,
		Speed:        speed,
		Acceleration: acceleration,
		Torque:       torque,
	}
	if err := st.Validate(); err != nil {
		return CarState{}, err
	}
	return st, nil
}

// Validate re-checks the finite-value invariant.
func (s CarState) Validate() error {
	for name, v := range map[string]float64{
		"position.x":   s.Position.X,
		"position.y":   s.Position.Y,
		"orientation":  s.Orientation,
		"steering":     s.Steering,
		"speed":        s.Speed,
		"acceleration": s.Acceleration,
		"torque":       s.Torque,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: state %s is not finite", ErrInvalidParameter, name)
		}
	}
	return nil
}

// CarStructure holds the static physical properties of the car. All
// dimensions are meters, angles radians, speeds m/s.
type CarStructure struct {
	BackToWheel     float64 // rear overhang to rear axle
	Length          float64
	Width           float64
	WheelBase       float64 // front to rear axle
	Tread           float64 // left to right wheel
	WheelLength     float64
	WheelWidth      float64
	MaxAcceleration float64
	MaxSpeed        float64
	MinSpeed        float64
	MaxSteering     float64
	MaxDownsteering float64
}

// Validate rejects negative or non-finite dimensions. Zero values are
// allowed so partially specified structures stay usable.
func (s CarStructure) Validate() error {
	for name, v := range map[string]float64{
		"back_to_wheel":    s.BackToWheel,
		"length":           s.Length,
		"width":            s.Width,
		"wheel_base":       s.WheelBase,
		"tread":            s.Tread,
		"wheel_length":     s.WheelLength,
		"wheel_width":      s.WheelWidth,
		"max_acceleration": s.MaxAcceleration,
		"max_speed":        s.MaxSpeed,
		"min_speed":        s.MinSpeed,
		"max_steering":     s.MaxSteering,
		"max_downsteering": s.MaxDownsteering,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: structure %s = %v", ErrInvalidParameter, name, v)
		}
	}
	return nil
}

// Car combines the time-dependent state, the static structure and the
// optional detection camera.
type Car struct {
	State     CarState
	Structure CarStructure
	Camera    *Camera
}

// NewCar builds a validated car. Camera may be nil for cars without
// detection hardware.
func NewCar(state CarState, structure CarStructure, camera *Camera) (*Car, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if err := structure.Validate(); err != nil {
		return nil, err
	}
	return &Car{State: state, Structure: structure, Camera: camera}, nil
}

var carStyle = render.Style{
	Color:  color.Black,
	Shape:  render.ShapeSquare,
	Radius: 5,
}

var headingStyle = render.Style{
	Color:  color.Black,
	Shape:  render.ShapeCross,
	Radius: 3,
}

// Plot draws the car position, a heading marker half a wheelbase ahead, and
// the camera's detection area when one is fitted.
func (c *Car) Plot(s render.Surface) {
	s.Legend("car", carStyle)
	s.Marker(c.State.Position.X, c.State.Position.Y, carStyle)

	ahead := c.Structure.WheelBase / 2
	if ahead <= 0 {
		ahead = 1
	}
	head := add(c.State.Position, polar(ahead, c.State.Orientation))
	s.Marker(head.X, head.Y, headingStyle)

	if c.Camera != nil {
		c.Camera.Plot(s)
	}
}
