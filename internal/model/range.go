// Package model defines the data structures for metamorphic testing.
package model

import "fmt"

// Range is a closed interval [Min, Max] of sweep units. For hash primitives a
// unit is an input size in bytes, for key-encapsulation primitives it is a
// trial index.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Fixed returns the single-unit range [n, n].
func Fixed(n int) Range {
	return Range{Min: n, Max: n}
}

// Validate reports whether the range is usable for a sweep.
func (r Range) Validate() error {
	if r.Min < 0 {
		return fmt.Errorf("range minimum %d is negative", r.Min)
	}

	if r.Max < r.Min {
		return fmt.Errorf("range maximum %d is below minimum %d", r.Max, r.Min)
	}

	return nil
}

// Len returns the number of units in the range, or 0 when it is invalid.
func (r Range) Len() int {
	if r.Validate() != nil {
		return 0
	}

	return r.Max - r.Min + 1
}

// Values lists every unit of the range in ascending order.
func (r Range) Values() []int {
	values := make([]int, 0, r.Len())
	for v := r.Min; v <= r.Max && r.Len() > 0; v++ {
		values = append(values, v)
	}

	return values
}

func (r Range) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d", r.Min)
	}

	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}
