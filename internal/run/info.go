// Package run describes the shape of a sequencing run: its reads and the
// flow-cell geometry the summary hierarchy is allocated from.
package run

import (
	"fmt"

	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// ReadInfo describes one read of the run.
type ReadInfo struct {
	Number     int  `json:"number" yaml:"number"`
	FirstCycle int  `json:"first_cycle" yaml:"first_cycle"`
	LastCycle  int  `json:"last_cycle" yaml:"last_cycle"`
	IsIndex    bool `json:"is_index" yaml:"is_index"`
}

// TotalCycles returns the number of cycles in the read.
func (r ReadInfo) TotalCycles() int {
	if r.LastCycle < r.FirstCycle {
		return 0
	}
	return r.LastCycle - r.FirstCycle + 1
}

// UseableCycles returns the number of cycles with usable base calls.
// The last cycle of a read is never usable.
func (r ReadInfo) UseableCycles() int {
	if r.LastCycle < r.FirstCycle {
		return 0
	}
	return r.LastCycle - r.FirstCycle
}

// Info is the view of RunInfo the summary engine consumes.
type Info struct {
	Reads           []ReadInfo            `json:"reads" yaml:"reads"`
	LaneCount       int                   `json:"lane_count" yaml:"lane_count"`
	SurfaceCount    int                   `json:"surface_count" yaml:"surface_count"`
	SwathCount      int                   `json:"swath_count" yaml:"swath_count"`
	TileCount       int                   `json:"tile_count" yaml:"tile_count"`
	SectionsPerLane int                   `json:"sections_per_lane" yaml:"sections_per_lane"`
	NamingMethod    metricid.NamingMethod `json:"naming_method" yaml:"naming_method"`
	Channels        []string              `json:"channels" yaml:"channels"`
}

// TotalCycles returns the sum of read lengths.
func (i Info) TotalCycles() int {
	total := 0
	for _, r := range i.Reads {
		total += r.TotalCycles()
	}
	return total
}

// Layout returns the flow-cell layout for tile placement.
func (i Info) Layout() metricid.Layout {
	return metricid.Layout{
		Method:          i.NamingMethod,
		SectionsPerLane: i.SectionsPerLane,
		TileCount:       i.TileCount,
		SwathCount:      i.SwathCount,
	}
}

// Validate checks the invariants the summary engine relies on: reads are
// ordered, contiguous and non-overlapping, and the geometry is positive.
func (i Info) Validate() error {
	if i.LaneCount < 1 {
		return fmt.Errorf("lane count must be positive, got %d", i.LaneCount)
	}
	if i.LaneCount > metricid.MaxLane {
		return fmt.Errorf("lane count %d exceeds %d", i.LaneCount, metricid.MaxLane)
	}
	if i.SurfaceCount < 1 {
		return fmt.Errorf("surface count must be positive, got %d", i.SurfaceCount)
	}
	prevLast := 0
	for idx, r := range i.Reads {
		if r.Number != idx+1 {
			return fmt.Errorf("read %d: expected read number %d", r.Number, idx+1)
		}
		if r.FirstCycle < 1 || r.LastCycle < r.FirstCycle {
			return fmt.Errorf("read %d: invalid cycle range [%d, %d]", r.Number, r.FirstCycle, r.LastCycle)
		}
		if r.FirstCycle <= prevLast {
			return fmt.Errorf("read %d: first cycle %d overlaps previous read ending at %d",
				r.Number, r.FirstCycle, prevLast)
		}
		prevLast = r.LastCycle
	}
	return nil
}
