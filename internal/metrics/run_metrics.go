package metrics

import (
	"github.com/wesleyorama2/seqsum/internal/run"
)

// RunMetrics is the full set of metric stores of one run.
type RunMetrics struct {
	Info run.Info

	Tile               *Store[TileRecord]
	Error              *Store[ErrorRecord]
	Extraction         *Store[ExtractionRecord]
	Q                  *Store[QRecord]
	QCollapsed         *Store[QCollapsedRecord]
	Phasing            *Store[PhasingRecord]
	DynamicPhasing     *Store[DynamicPhasingRecord]
	CorrectedIntensity *Store[CorrectedIntensityRecord]
	Index              *Store[IndexRecord]
	ExtendedTile       *Store[ExtendedTileRecord]
	Image              *Store[ImageRecord]

	// QBins holds the q-score binning of the Q store, empty when unbinned.
	QBins []QScoreBin
	// SummaryRun holds instrument-reported run totals, if any.
	SummaryRun *SummaryRunRecord
}

// NewRunMetrics creates empty stores for a run.
func NewRunMetrics(info run.Info) *RunMetrics {
	return &RunMetrics{
		Info:               info,
		Tile:               NewStore[TileRecord](),
		Error:              NewStore[ErrorRecord](),
		Extraction:         NewStore[ExtractionRecord](),
		Q:                  NewStore[QRecord](),
		QCollapsed:         NewStore[QCollapsedRecord](),
		Phasing:            NewStore[PhasingRecord](),
		DynamicPhasing:     NewStore[DynamicPhasingRecord](),
		CorrectedIntensity: NewStore[CorrectedIntensityRecord](),
		Index:              NewStore[IndexRecord](),
		ExtendedTile:       NewStore[ExtendedTileRecord](),
		Image:              NewStore[ImageRecord](),
	}
}

// StoreSizes returns the record count of every store by kind name.
func (m *RunMetrics) StoreSizes() map[string]int {
	return map[string]int{
		"tile":                m.Tile.Size(),
		"error":               m.Error.Size(),
		"extraction":          m.Extraction.Size(),
		"q":                   m.Q.Size(),
		"q_collapsed":         m.QCollapsed.Size(),
		"phasing":             m.Phasing.Size(),
		"dynamic_phasing":     m.DynamicPhasing.Size(),
		"corrected_intensity": m.CorrectedIntensity.Size(),
		"index":               m.Index.Size(),
		"extended_tile":       m.ExtendedTile.Size(),
		"image":               m.Image.Size(),
	}
}

// Empty reports whether no store holds a record and no run totals exist.
func (m *RunMetrics) Empty() bool {
	if m.SummaryRun != nil {
		return false
	}
	for _, n := range m.StoreSizes() {
		if n > 0 {
			return false
		}
	}
	return true
}
