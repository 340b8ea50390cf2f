package summary

import (
	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// CycleStage names a processing stage tracked by the cycle state.
type CycleStage int

const (
	ExtractedStage CycleStage = iota
	QScoredStage
	CalledStage
	ErrorStage
)

func (s CycleStage) String() string {
	switch s {
	case ExtractedStage:
		return "extracted"
	case QScoredStage:
		return "qscored"
	case CalledStage:
		return "called"
	case ErrorStage:
		return "error"
	default:
		return "unknown"
	}
}

// rangeOf returns the range of a stage within a cycle state.
func (s CycleStage) rangeOf(cs *CycleStateSummary) *run.CycleRange {
	switch s {
	case ExtractedStage:
		return &cs.ExtractedCycleRange
	case QScoredStage:
		return &cs.QScoredCycleRange
	case CalledStage:
		return &cs.CalledCycleRange
	default:
		return &cs.ErrorCycleRange
	}
}

// SummarizeCycleState records how far a processing stage has progressed.
//
// Each lane gets the range of the last cycle reached by its tiles, relative
// to the start of the read. A tile listed in the tile store with no data for
// a read counts as stopped just before the read began. The run-level range
// spans the last absolute cycle reached by each tile.
func SummarizeCycleState[T metrics.CycleMetric](tiles *metrics.Store[metrics.TileRecord],
	store *metrics.Store[T],
	cycleToRead run.CycleReadMap,
	stage CycleStage,
	summary *RunSummary) error {
	if summary.Empty() {
		return nil
	}

	byReadTile := make([]map[metricid.ID]run.CycleRange, summary.Size())
	for r := range byReadTile {
		byReadTile[r] = make(map[metricid.ID]run.CycleRange)
	}
	lastByTile := make(map[metricid.ID]int)

	for _, rec := range store.Records() {
		rc, ok := cycleToRead.Lookup(rec.Cycle())
		if !ok {
			return cycleOutOfBounds(rec.Cycle(), rec.Lane(), rec.Tile(), len(cycleToRead))
		}
		if rc.Number == 0 {
			continue
		}
		if rc.Number > summary.Size() {
			return readOutOfBounds(rc.Number, rec.Lane(), rec.Tile(), summary.Size())
		}
		id, err := metricid.ForTile(rec.Lane(), rec.Tile())
		if err != nil {
			return err
		}
		rng, seen := byReadTile[rc.Number-1][id]
		if !seen {
			rng = run.NewCycleRange()
		}
		rng.Update(rec.Cycle())
		byReadTile[rc.Number-1][id] = rng
		lastByTile[id] = max(lastByTile[id], rec.Cycle())
	}

	for _, tile := range tiles.Records() {
		id, err := metricid.ForTile(tile.Lane(), tile.Tile())
		if err != nil {
			return err
		}
		last := 0
		for r := range byReadTile {
			rng, seen := byReadTile[r][id]
			if !seen {
				rng = run.NewCycleRange()
				rng.Update(summary.Reads[r].Read.FirstCycle - 1)
				byReadTile[r][id] = rng
				continue
			}
			last = rng.LastCycle()
		}
		lastByTile[id] = last
	}

	for r := range summary.Reads {
		read := &summary.Reads[r]
		laneRanges := make([]run.CycleRange, summary.LaneCount)
		for l := range laneRanges {
			laneRanges[l] = run.NewCycleRange()
		}
		for id, rng := range byReadTile[r] {
			lane, err := checkLane(id.Lane(), id.Tile(), summary.LaneCount)
			if err != nil {
				return err
			}
			laneRanges[lane].Update(rng.LastCycle())
		}
		offset := read.Read.FirstCycle - 1
		for l := range read.Lanes {
			*stage.rangeOf(&read.Lanes[l].CycleState) = laneRanges[l].Shift(offset)
		}
	}

	overall := run.NewCycleRange()
	for _, last := range lastByTile {
		overall.Update(last)
	}
	*stage.rangeOf(&summary.CycleState) = overall
	return nil
}
