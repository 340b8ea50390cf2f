// Package metrics holds the per-kind metric records of a run and the
// indexed Store that owns them.
package metrics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// ErrIndexOutOfBounds is returned when a lane, tile, cycle or read does not
// resolve to a stored record or exceeds the capacity declared by the run.
var ErrIndexOutOfBounds = errors.New("index out of bounds")

// Metric is implemented by every record kind.
type Metric interface {
	Lane() int
	Tile() int
}

// CycleMetric is a record keyed by cycle.
type CycleMetric interface {
	Metric
	Cycle() int
}

// ReadMetric is a record keyed by read.
type ReadMetric interface {
	Metric
	Read() int
}

// IDOf returns the identifier of a record. The third field is the cycle for
// cycle records, the read for read records and 0 for tile records.
func IDOf(m Metric) (metricid.ID, error) {
	return metricid.New(m.Lane(), m.Tile(), slotOf(m))
}

func slotOf(m Metric) int {
	switch v := m.(type) {
	case CycleMetric:
		return v.Cycle()
	case ReadMetric:
		return v.Read()
	default:
		return 0
	}
}

// Store owns an ordered collection of records of one kind plus an index from
// identifier to position.
//
// Inserting a record with an identifier already present keeps both records
// in the backing slice; the index then points at the newer one.
type Store[T Metric] struct {
	records  []T
	index    map[metricid.ID]int
	maxCycle int
}

// NewStore creates an empty store.
func NewStore[T Metric]() *Store[T] {
	return &Store[T]{index: make(map[metricid.ID]int)}
}

// NewStoreWithCapacity creates an empty store with room for n records.
func NewStoreWithCapacity[T Metric](n int) *Store[T] {
	return &Store[T]{
		records: make([]T, 0, n),
		index:   make(map[metricid.ID]int, n),
	}
}

// Insert appends a record and indexes it by identifier.
func (s *Store[T]) Insert(record T) error {
	id, err := IDOf(record)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	if s.index == nil {
		s.index = make(map[metricid.ID]int)
	}
	s.index[id] = len(s.records)
	s.records = append(s.records, record)
	if cm, ok := Metric(record).(CycleMetric); ok && cm.Cycle() > s.maxCycle {
		s.maxCycle = cm.Cycle()
	}
	return nil
}

// Find returns the position of the record with the given identifier.
func (s *Store[T]) Find(id metricid.ID) (int, bool) {
	pos, ok := s.index[id]
	return pos, ok
}

// HasMetric reports whether a record exists for lane, tile and cycle (or
// read). Tile records use 0 for the last field.
func (s *Store[T]) HasMetric(lane, tile, cycle int) bool {
	id, err := metricid.New(lane, tile, cycle)
	if err != nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// GetMetric returns the record for lane, tile and cycle (or read).
func (s *Store[T]) GetMetric(lane, tile, cycle int) (T, error) {
	var zero T
	id, err := metricid.New(lane, tile, cycle)
	if err != nil {
		return zero, fmt.Errorf("%w: lane %d tile %d cycle %d: %v", ErrIndexOutOfBounds, lane, tile, cycle, err)
	}
	pos, ok := s.index[id]
	if !ok {
		return zero, fmt.Errorf("%w: no metric for key %d (lane %d tile %d cycle %d)",
			ErrIndexOutOfBounds, uint64(id), lane, tile, cycle)
	}
	return s.records[pos], nil
}

// At returns a pointer to the record at position i for in-place updates.
func (s *Store[T]) At(i int) *T {
	return &s.records[i]
}

// Records returns the backing records in insertion order.
func (s *Store[T]) Records() []T {
	return s.records
}

// Size returns the number of records, duplicates included.
func (s *Store[T]) Size() int { return len(s.records) }

// Empty reports whether the store holds no records.
func (s *Store[T]) Empty() bool { return len(s.records) == 0 }

// MaxCycle returns the highest cycle inserted, or 0 for non-cycle kinds.
func (s *Store[T]) MaxCycle() int { return s.maxCycle }

// Clear removes every record.
func (s *Store[T]) Clear() {
	s.records = s.records[:0]
	s.index = make(map[metricid.ID]int)
	s.maxCycle = 0
}

// MetricsForLane returns the records of a lane.
func (s *Store[T]) MetricsForLane(lane int) []T {
	var out []T
	for _, r := range s.records {
		if r.Lane() == lane {
			out = append(out, r)
		}
	}
	return out
}

// MetricsForCycle returns the records of a cycle. Non-cycle kinds return nil.
func (s *Store[T]) MetricsForCycle(cycle int) []T {
	var out []T
	for _, r := range s.records {
		if cm, ok := Metric(r).(CycleMetric); ok && cm.Cycle() == cycle {
			out = append(out, r)
		}
	}
	return out
}

// TileNumbersForLane returns the sorted distinct tiles of a lane.
func (s *Store[T]) TileNumbersForLane(lane int) []int {
	seen := make(map[int]struct{})
	for _, r := range s.records {
		if r.Lane() == lane {
			seen[r.Tile()] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// TileNumbersForLaneSurface returns the sorted distinct tiles of a lane on
// one surface.
func (s *Store[T]) TileNumbersForLaneSurface(lane, surface int, method metricid.NamingMethod) []int {
	seen := make(map[int]struct{})
	for _, r := range s.records {
		if r.Lane() == lane && metricid.Surface(r.Tile(), method) == surface {
			seen[r.Tile()] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Lanes returns the sorted distinct lanes.
func (s *Store[T]) Lanes() []int {
	seen := make(map[int]struct{})
	for _, r := range s.records {
		seen[r.Lane()] = struct{}{}
	}
	return sortedKeys(seen)
}

// Cycles returns the sorted distinct cycles. Non-cycle kinds return nil.
func (s *Store[T]) Cycles() []int {
	seen := make(map[int]struct{})
	for _, r := range s.records {
		if cm, ok := Metric(r).(CycleMetric); ok {
			seen[cm.Cycle()] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Keys returns the sorted distinct identifiers in the index.
func (s *Store[T]) Keys() []metricid.ID {
	keys := make([]metricid.ID, 0, len(s.index))
	for id := range s.index {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedKeys(set map[int]struct{}) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
