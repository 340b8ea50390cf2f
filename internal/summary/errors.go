package summary

import (
	"fmt"

	"github.com/wesleyorama2/seqsum/internal/logic"
	"github.com/wesleyorama2/seqsum/internal/metrics"
)

var (
	// ErrIndexOutOfBounds is returned when a record references a lane, read
	// or cycle beyond what the run declares.
	ErrIndexOutOfBounds = metrics.ErrIndexOutOfBounds
	// ErrInvalidChannel is returned when channel names cannot be mapped to a
	// canonical order.
	ErrInvalidChannel = logic.ErrInvalidChannel
)

func laneOutOfBounds(lane, tile, laneCount int) error {
	return fmt.Errorf("%w: lane %d (tile %d) exceeds lane count %d", ErrIndexOutOfBounds, lane, tile, laneCount)
}

func readOutOfBounds(read, lane, tile, readCount int) error {
	return fmt.Errorf("%w: read %d (lane %d tile %d) exceeds read count %d",
		ErrIndexOutOfBounds, read, lane, tile, readCount)
}

func cycleOutOfBounds(cycle, lane, tile, cycleCount int) error {
	return fmt.Errorf("%w: cycle %d (lane %d tile %d) exceeds total cycles %d",
		ErrIndexOutOfBounds, cycle, lane, tile, cycleCount)
}

// checkLane returns the 0-based lane index of a record.
func checkLane(lane, tile, laneCount int) (int, error) {
	if lane < 1 || lane > laneCount {
		return 0, laneOutOfBounds(lane, tile, laneCount)
	}
	return lane - 1, nil
}

// surfaceIndex returns the 0-based surface slot of a tile. ok is false when
// surfaces are not tracked or the surface is outside the declared count.
func surfaceIndex(surface, surfaceCount int) (idx int, ok bool) {
	if surfaceCount < 2 {
		return 0, false
	}
	if surface < 1 || surface > surfaceCount {
		return 0, false
	}
	return surface - 1, true
}
