package booking

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("end time must be after start time")

// Interval is a half-open time range [Start, End). Two back-to-back intervals
// sharing an endpoint do not overlap.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

func (iv Interval) Validate() error {
	if iv.Start.IsZero() || iv.End.IsZero() {
		return ErrInvalidInterval
	}
	if !iv.End.After(iv.Start) {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether the two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether t falls inside [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

func (iv Interval) Hours() float64 {
	return iv.End.Sub(iv.Start).Hours()
}
