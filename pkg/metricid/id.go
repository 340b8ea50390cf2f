// Package metricid packs (lane, tile, cycle-or-read) tuples into a single
// 64-bit identifier and decodes tile numbers under the flow-cell naming
// conventions.
//
// Layout, most significant bit first:
//
//	lane(6) | tile(26) | cycle_or_read(16) | reserved(16)
package metricid

import (
	"errors"
	"fmt"
)

// Bit widths of each identifier field.
const (
	LaneBits     = 6
	TileBits     = 26
	CycleBits    = 16
	ReservedBits = 16
)

// Shift offsets of each field within the identifier.
const (
	cycleShift = ReservedBits
	tileShift  = cycleShift + CycleBits
	laneShift  = tileShift + TileBits
)

// Largest value each field can hold.
const (
	MaxLane  = 1<<LaneBits - 1
	MaxTile  = 1<<TileBits - 1
	MaxCycle = 1<<CycleBits - 1
)

const (
	laneMask  = uint64(MaxLane)
	tileMask  = uint64(MaxTile)
	cycleMask = uint64(MaxCycle)
)

// ErrOutOfRange is returned when a field does not fit its bit width.
var ErrOutOfRange = errors.New("identifier field out of range")

// ID identifies a metric record by lane, tile and cycle (or read).
type ID uint64

// New packs lane, tile and cycle-or-read into an ID.
// A value that exceeds its bit width is rejected rather than truncated.
func New(lane, tile, cycleOrRead int) (ID, error) {
	if lane < 0 || lane > MaxLane {
		return 0, fmt.Errorf("%w: lane %d exceeds %d", ErrOutOfRange, lane, MaxLane)
	}
	if tile < 0 || tile > MaxTile {
		return 0, fmt.Errorf("%w: tile %d exceeds %d", ErrOutOfRange, tile, MaxTile)
	}
	if cycleOrRead < 0 || cycleOrRead > MaxCycle {
		return 0, fmt.Errorf("%w: cycle %d exceeds %d", ErrOutOfRange, cycleOrRead, MaxCycle)
	}
	return encode(uint64(lane), uint64(tile), uint64(cycleOrRead)), nil
}

// MustNew is like New but panics on an out-of-range field.
func MustNew(lane, tile, cycleOrRead int) ID {
	id, err := New(lane, tile, cycleOrRead)
	if err != nil {
		panic(err)
	}
	return id
}

// ForTile returns the identifier of a tile with the cycle slot cleared.
func ForTile(lane, tile int) (ID, error) {
	return New(lane, tile, 0)
}

func encode(lane, tile, cycle uint64) ID {
	return ID(lane<<laneShift | tile<<tileShift | cycle<<cycleShift)
}

// Lane returns the lane field.
func (id ID) Lane() int { return int(uint64(id) >> laneShift & laneMask) }

// Tile returns the tile field.
func (id ID) Tile() int { return int(uint64(id) >> tileShift & tileMask) }

// Cycle returns the cycle-or-read field.
func (id ID) Cycle() int { return int(uint64(id) >> cycleShift & cycleMask) }

// Read is an alias of Cycle for read-keyed records.
func (id ID) Read() int { return id.Cycle() }

// TileID drops the cycle-or-read field.
func (id ID) TileID() ID {
	return encode(uint64(id.Lane()), uint64(id.Tile()), 0)
}

func (id ID) String() string {
	return fmt.Sprintf("lane=%d tile=%d cycle=%d", id.Lane(), id.Tile(), id.Cycle())
}
