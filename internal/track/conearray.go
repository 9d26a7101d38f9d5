package track

import (
	"fmt"
	"iter"
	"strings"

	"github.com/gridline-data/trackmap/internal/render"
)

// ConeArray is an ordered, validated collection of cones. Insertion order is
// the mapping/scan order and is semantically significant: equality is
// order-sensitive and plotting draws later cones on top of earlier ones.
// Duplicate positions are permitted; they represent re-detections.
//
// A ConeArray is not safe for concurrent mutation; callers serialize
// Append/Extend against reads and plots on the same instance.
type ConeArray struct {
	cones []Cone
}

// NewConeArray builds an array from the given cones, validating eagerly: if
// any element is invalid the whole input is rejected with ErrInvalidElement
// (wrapping the cause) and no array is produced. The input slice is copied.
func NewConeArray(cones ...Cone) (*ConeArray, error) {
	if err := validateAll(cones); err != nil {
		return nil, err
	}
	a := &ConeArray{cones: make([]Cone, len(cones))}
	copy(a.cones, cones)
	return a, nil
}

// validateAll checks every element before any mutation happens, so failed
// inserts never leave a partially valid collection.
func validateAll(cones []Cone) error {
	for i, c := range cones {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidElement, i, err)
		}
	}
	return nil
}

// Append adds one cone to the end of the array. On validation failure the
// array is unchanged.
func (a *ConeArray) Append(c Cone) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w %d: %w", ErrInvalidElement, len(a.cones), err)
	}
	a.cones = append(a.cones, c)
	return nil
}

// Extend appends all given cones, preserving their order. Validation is
// atomic: if any element fails, nothing is appended.
func (a *ConeArray) Extend(cones []Cone) error {
	if err := validateAll(cones); err != nil {
		return err
	}
	a.cones = append(a.cones, cones...)
	return nil
}

// Len returns the number of cones in the array.
func (a *ConeArray) Len() int { return len(a.cones) }

// At returns the cone at index i, failing with ErrIndexOutOfRange when i is
// outside [0, Len).
func (a *ConeArray) At(i int) (Cone, error) {
	if i < 0 || i >= len(a.cones) {
		return Cone{}, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(a.cones))
	}
	return a.cones[i], nil
}

// Cones returns a copy of the underlying sequence in insertion order.
func (a *ConeArray) Cones() []Cone {
	out := make([]Cone, len(a.cones))
	copy(out, a.cones)
	return out
}

// All iterates index/cone pairs in insertion order.
func (a *ConeArray) All() iter.Seq2[int, Cone] {
	return func(yield func(int, Cone) bool) {
		for i, c := range a.cones {
			if !yield(i, c) {
				return
			}
		}
	}
}

// FilterByCategory returns a new array holding only the cones of the given
// category, relative order preserved. No matches yields an empty array, not
// an error. The result shares no storage with the receiver.
func (a *ConeArray) FilterByCategory(category Category) *ConeArray {
	out := &ConeArray{}
	for _, c := range a.cones {
		if c.Category == category {
			out.cones = append(out.cones, c)
		}
	}
	return out
}

// Categories returns a restartable sequence of the distinct categories
// actually present, in first-observation order. It reflects the observed
// cones, not the full enumeration.
func (a *ConeArray) Categories() iter.Seq[Category] {
	return func(yield func(Category) bool) {
		seen := make(map[Category]bool, len(allCategories))
		for _, c := range a.cones {
			if seen[c.Category] {
				continue
			}
			seen[c.Category] = true
			if !yield(c.Category) {
				return
			}
		}
	}
}

// Equal reports whether both arrays hold elementwise-equal cones in the same
// order. Order matters: the sequence records the mapping order.
func (a *ConeArray) Equal(other *ConeArray) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.cones) != len(other.cones) {
		return false
	}
	for i, c := range a.cones {
		if !c.Equal(other.cones[i]) {
			return false
		}
	}
	return true
}

// Plot draws every cone in insertion order, so later detections end up on
// top of earlier ones. Entries in styles override the per-category defaults;
// one legend entry is emitted per distinct category at its first occurrence.
func (a *ConeArray) Plot(s render.Surface, styles map[Category]render.Style) {
	legended := make(map[Category]bool, len(allCategories))
	for _, c := range a.cones {
		override := styles[c.Category]
		if !legended[c.Category] {
			legended[c.Category] = true
			s.Legend(string(c.Category), c.Category.DefaultStyle().Merge(override))
		}
		c.Plot(s, override)
	}
}

func (a *ConeArray) String() string {
	var b strings.Builder
	b.WriteString("ConeArray[")
	for i, c := range a.cones {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteString("]")
	return b.String()
}
