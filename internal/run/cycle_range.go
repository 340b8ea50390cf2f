package run

import (
	"encoding/json"
	"math"
)

// CycleRange is an inclusive [first, last] range of cycles.
// The zero value is not empty; use NewCycleRange.
type CycleRange struct {
	first int
	last  int
}

// NewCycleRange returns an empty range.
func NewCycleRange() CycleRange {
	return CycleRange{first: math.MaxInt, last: 0}
}

// Empty reports whether no cycle has been recorded.
func (r CycleRange) Empty() bool { return r.first == math.MaxInt }

// FirstCycle returns the first cycle, or 0 when the range is empty.
func (r CycleRange) FirstCycle() int {
	if r.Empty() {
		return 0
	}
	return r.first
}

// LastCycle returns the last cycle.
func (r CycleRange) LastCycle() int { return r.last }

// Update extends the range to include cycle.
func (r *CycleRange) Update(cycle int) {
	if cycle > r.last {
		r.last = cycle
	}
	if cycle < r.first {
		r.first = cycle
	}
}

// Merge extends the range to include other.
func (r *CycleRange) Merge(other CycleRange) {
	if other.last > r.last {
		r.last = other.last
	}
	if other.first < r.first {
		r.first = other.first
	}
}

// Shift returns the range moved down by offset. A range ending before the
// offset is returned unchanged, as is an empty range.
func (r CycleRange) Shift(offset int) CycleRange {
	if r.last < offset || r.Empty() {
		return r
	}
	return CycleRange{first: r.first - offset, last: r.last - offset}
}

type cycleRangeView struct {
	FirstCycle int `json:"first_cycle" yaml:"first_cycle"`
	LastCycle  int `json:"last_cycle" yaml:"last_cycle"`
}

// MarshalJSON writes the range as {"first_cycle", "last_cycle"}.
func (r CycleRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(cycleRangeView{FirstCycle: r.FirstCycle(), LastCycle: r.LastCycle()})
}

// MarshalYAML implements yaml.Marshaler.
func (r CycleRange) MarshalYAML() (interface{}, error) {
	return cycleRangeView{FirstCycle: r.FirstCycle(), LastCycle: r.LastCycle()}, nil
}
