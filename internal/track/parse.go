package track

import (
	"encoding/json"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r2"
)

// ConeRecord is the untyped wire shape of one cone observation, as emitted
// by upstream detection tooling. Static typing makes []Cone homogeneous by
// construction, so element validation lives here, at the untyped boundary.
type ConeRecord struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Category string  `json:"category"`
}

// ParseConeRecords decodes a JSON array of cone records into a validated
// ConeArray. Rejection is atomic: a single malformed record fails the whole
// input with ErrInvalidElement wrapping the position or category cause, and
// no array is produced.
func ParseConeRecords(r io.Reader) (*ConeArray, error) {
	var records []ConeRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode cone records: %w", err)
	}
	return ConesFromRecords(records)
}

// ConesFromRecords validates and converts already-decoded records. Order is
// preserved; duplicates are kept as re-detections.
func ConesFromRecords(records []ConeRecord) (*ConeArray, error) {
	cones := make([]Cone, 0, len(records))
	for i, rec := range records {
		category, err := ParseCategory(rec.Category)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidElement, i, err)
		}
		c, err := NewCone(r2.Vec{X: rec.X, Y: rec.Y}, category)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidElement, i, err)
		}
		cones = append(cones, c)
	}
	return NewConeArray(cones...)
}
