// Package config loads run fixtures: the run description plus the metric
// records of every kind, as written by an InterOp export or by hand.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
)

// RunDocument is the on-disk form of a run.
type RunDocument struct {
	Run        run.Info       `json:"run" yaml:"run"`
	QScoreBins []QScoreBinDoc `json:"qscore_bins,omitempty" yaml:"qscore_bins,omitempty"`
	Metrics    MetricsDoc     `json:"metrics" yaml:"metrics"`
	SummaryRun *SummaryRunDoc `json:"summary_run,omitempty" yaml:"summary_run,omitempty"`
}

// QScoreBinDoc is one q-score bin.
type QScoreBinDoc struct {
	Lower int `json:"lower" yaml:"lower"`
	Upper int `json:"upper" yaml:"upper"`
	Value int `json:"value" yaml:"value"`
}

// MetricsDoc holds the records of every metric kind.
type MetricsDoc struct {
	Tile               []TileDoc               `json:"tile,omitempty" yaml:"tile,omitempty"`
	Error              []ErrorDoc              `json:"error,omitempty" yaml:"error,omitempty"`
	Extraction         []ExtractionDoc         `json:"extraction,omitempty" yaml:"extraction,omitempty"`
	Q                  []QDoc                  `json:"q,omitempty" yaml:"q,omitempty"`
	QCollapsed         []QCollapsedDoc         `json:"q_collapsed,omitempty" yaml:"q_collapsed,omitempty"`
	Phasing            []PhasingDoc            `json:"phasing,omitempty" yaml:"phasing,omitempty"`
	DynamicPhasing     []DynamicPhasingDoc     `json:"dynamic_phasing,omitempty" yaml:"dynamic_phasing,omitempty"`
	CorrectedIntensity []CorrectedIntensityDoc `json:"corrected_intensity,omitempty" yaml:"corrected_intensity,omitempty"`
	Index              []IndexDoc              `json:"index,omitempty" yaml:"index,omitempty"`
	ExtendedTile       []ExtendedTileDoc       `json:"extended_tile,omitempty" yaml:"extended_tile,omitempty"`
	Image              []ImageDoc              `json:"image,omitempty" yaml:"image,omitempty"`
}

// TileDoc is a tile record. Missing per-read values decode as NaN.
type TileDoc struct {
	Lane             int           `json:"lane" yaml:"lane"`
	Tile             int           `json:"tile" yaml:"tile"`
	ClusterDensity   *float64      `json:"cluster_density" yaml:"cluster_density"`
	ClusterDensityPF *float64      `json:"cluster_density_pf" yaml:"cluster_density_pf"`
	ClusterCount     *float64      `json:"cluster_count" yaml:"cluster_count"`
	ClusterCountPF   *float64      `json:"cluster_count_pf" yaml:"cluster_count_pf"`
	Reads            []TileReadDoc `json:"reads,omitempty" yaml:"reads,omitempty"`
}

// TileReadDoc holds the per-read values of a tile.
type TileReadDoc struct {
	Read              int      `json:"read" yaml:"read"`
	PercentAligned    *float64 `json:"percent_aligned" yaml:"percent_aligned"`
	PercentPhasing    *float64 `json:"percent_phasing" yaml:"percent_phasing"`
	PercentPrephasing *float64 `json:"percent_prephasing" yaml:"percent_prephasing"`
}

// ErrorDoc is an error record.
type ErrorDoc struct {
	Lane           int      `json:"lane" yaml:"lane"`
	Tile           int      `json:"tile" yaml:"tile"`
	Cycle          int      `json:"cycle" yaml:"cycle"`
	ErrorRate      float64  `json:"error_rate" yaml:"error_rate"`
	MismatchCounts []uint32 `json:"mismatch_counts,omitempty" yaml:"mismatch_counts,omitempty"`
}

// ExtractionDoc is an extraction record.
type ExtractionDoc struct {
	Lane           int       `json:"lane" yaml:"lane"`
	Tile           int       `json:"tile" yaml:"tile"`
	Cycle          int       `json:"cycle" yaml:"cycle"`
	MaxIntensities []uint16  `json:"max_intensities" yaml:"max_intensities"`
	FocusScores    []float64 `json:"focus_scores,omitempty" yaml:"focus_scores,omitempty"`
	DateTime       time.Time `json:"date_time,omitempty" yaml:"date_time,omitempty"`
}

// QDoc is a q-score histogram record.
type QDoc struct {
	Lane      int      `json:"lane" yaml:"lane"`
	Tile      int      `json:"tile" yaml:"tile"`
	Cycle     int      `json:"cycle" yaml:"cycle"`
	Histogram []uint32 `json:"histogram" yaml:"histogram"`
}

// QCollapsedDoc is a collapsed q-score record.
type QCollapsedDoc struct {
	Lane         int    `json:"lane" yaml:"lane"`
	Tile         int    `json:"tile" yaml:"tile"`
	Cycle        int    `json:"cycle" yaml:"cycle"`
	Q20          uint64 `json:"q20" yaml:"q20"`
	Q30          uint64 `json:"q30" yaml:"q30"`
	Total        uint64 `json:"total" yaml:"total"`
	MedianQScore int    `json:"median_qscore" yaml:"median_qscore"`
}

// PhasingDoc is a per-cycle phasing record.
type PhasingDoc struct {
	Lane             int     `json:"lane" yaml:"lane"`
	Tile             int     `json:"tile" yaml:"tile"`
	Cycle            int     `json:"cycle" yaml:"cycle"`
	PhasingWeight    float64 `json:"phasing_weight" yaml:"phasing_weight"`
	PrephasingWeight float64 `json:"prephasing_weight" yaml:"prephasing_weight"`
}

// DynamicPhasingDoc is a fitted phasing record.
type DynamicPhasingDoc struct {
	Lane             int     `json:"lane" yaml:"lane"`
	Tile             int     `json:"tile" yaml:"tile"`
	Read             int     `json:"read" yaml:"read"`
	PhasingSlope     float64 `json:"phasing_slope" yaml:"phasing_slope"`
	PhasingOffset    float64 `json:"phasing_offset" yaml:"phasing_offset"`
	PrephasingSlope  float64 `json:"prephasing_slope" yaml:"prephasing_slope"`
	PrephasingOffset float64 `json:"prephasing_offset" yaml:"prephasing_offset"`
}

// CorrectedIntensityDoc is a corrected intensity record.
type CorrectedIntensityDoc struct {
	Lane          int      `json:"lane" yaml:"lane"`
	Tile          int      `json:"tile" yaml:"tile"`
	Cycle         int      `json:"cycle" yaml:"cycle"`
	CalledCounts  []uint32 `json:"called_counts,omitempty" yaml:"called_counts,omitempty"`
	SignalToNoise float64  `json:"signal_to_noise" yaml:"signal_to_noise"`
}

// IndexDoc holds the index counts of a tile for one read.
type IndexDoc struct {
	Lane    int             `json:"lane" yaml:"lane"`
	Tile    int             `json:"tile" yaml:"tile"`
	Read    int             `json:"read" yaml:"read"`
	Entries []IndexEntryDoc `json:"entries" yaml:"entries"`
}

// IndexEntryDoc is one demultiplexed index sequence.
type IndexEntryDoc struct {
	Sequence      string `json:"sequence" yaml:"sequence"`
	SampleID      string `json:"sample_id" yaml:"sample_id"`
	SampleProject string `json:"sample_project,omitempty" yaml:"sample_project,omitempty"`
	Count         uint64 `json:"count" yaml:"count"`
}

// ExtendedTileDoc is an occupancy record.
type ExtendedTileDoc struct {
	Lane                 int      `json:"lane" yaml:"lane"`
	Tile                 int      `json:"tile" yaml:"tile"`
	ClusterCountOccupied *float64 `json:"cluster_count_occupied" yaml:"cluster_count_occupied"`
	PercentOccupied      *float64 `json:"percent_occupied" yaml:"percent_occupied"`
}

// ImageDoc is an image contrast record.
type ImageDoc struct {
	Lane        int      `json:"lane" yaml:"lane"`
	Tile        int      `json:"tile" yaml:"tile"`
	Cycle       int      `json:"cycle" yaml:"cycle"`
	MinContrast []uint16 `json:"min_contrast,omitempty" yaml:"min_contrast,omitempty"`
	MaxContrast []uint16 `json:"max_contrast,omitempty" yaml:"max_contrast,omitempty"`
}

// SummaryRunDoc holds instrument-reported run totals.
type SummaryRunDoc struct {
	RawClusterCount      float64 `json:"raw_cluster_count" yaml:"raw_cluster_count"`
	OccupiedClusterCount float64 `json:"occupied_cluster_count" yaml:"occupied_cluster_count"`
	PFClusterCount       float64 `json:"pf_cluster_count" yaml:"pf_cluster_count"`
}

// orNaN returns *v, or NaN when the value was null or absent.
func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// insertAll converts and inserts a list of documents into a store.
func insertAll[D any, T metrics.Metric](kind string, docs []D, store *metrics.Store[T], convert func(D) T) error {
	if store.Empty() {
		*store = *metrics.NewStoreWithCapacity[T](len(docs))
	}
	for i, d := range docs {
		if err := store.Insert(convert(d)); err != nil {
			return fmt.Errorf("metrics.%s[%d]: %w", kind, i, err)
		}
	}
	return nil
}

// RunMetrics builds the metric stores described by the document.
func (d *RunDocument) RunMetrics() (*metrics.RunMetrics, error) {
	m := metrics.NewRunMetrics(d.Run)
	for _, b := range d.QScoreBins {
		m.QBins = append(m.QBins, metrics.QScoreBin{Lower: b.Lower, Upper: b.Upper, Value: b.Value})
	}
	if d.SummaryRun != nil {
		m.SummaryRun = &metrics.SummaryRunRecord{
			RawClusterCount:      d.SummaryRun.RawClusterCount,
			OccupiedClusterCount: d.SummaryRun.OccupiedClusterCount,
			PFClusterCount:       d.SummaryRun.PFClusterCount,
		}
	}

	md := d.Metrics
	steps := []func() error{
		func() error { return insertAll("tile", md.Tile, m.Tile, TileDoc.record) },
		func() error { return insertAll("error", md.Error, m.Error, ErrorDoc.record) },
		func() error { return insertAll("extraction", md.Extraction, m.Extraction, ExtractionDoc.record) },
		func() error { return insertAll("q", md.Q, m.Q, QDoc.record) },
		func() error { return insertAll("q_collapsed", md.QCollapsed, m.QCollapsed, QCollapsedDoc.record) },
		func() error { return insertAll("phasing", md.Phasing, m.Phasing, PhasingDoc.record) },
		func() error {
			return insertAll("dynamic_phasing", md.DynamicPhasing, m.DynamicPhasing, DynamicPhasingDoc.record)
		},
		func() error {
			return insertAll("corrected_intensity", md.CorrectedIntensity, m.CorrectedIntensity, CorrectedIntensityDoc.record)
		},
		func() error { return insertAll("index", md.Index, m.Index, IndexDoc.record) },
		func() error { return insertAll("extended_tile", md.ExtendedTile, m.ExtendedTile, ExtendedTileDoc.record) },
		func() error { return insertAll("image", md.Image, m.Image, ImageDoc.record) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (d TileDoc) record() metrics.TileRecord {
	rec := metrics.TileRecord{
		TileKey:          metrics.AtTile(d.Lane, d.Tile),
		ClusterDensity:   orNaN(d.ClusterDensity),
		ClusterDensityPF: orNaN(d.ClusterDensityPF),
		ClusterCount:     orNaN(d.ClusterCount),
		ClusterCountPF:   orNaN(d.ClusterCountPF),
	}
	for _, r := range d.Reads {
		rec.Reads = append(rec.Reads, metrics.TileReadRecord{
			Read:              r.Read,
			PercentAligned:    orNaN(r.PercentAligned),
			PercentPhasing:    orNaN(r.PercentPhasing),
			PercentPrephasing: orNaN(r.PercentPrephasing),
		})
	}
	return rec
}

func (d ErrorDoc) record() metrics.ErrorRecord {
	return metrics.ErrorRecord{
		CycleKey:       metrics.AtCycle(d.Lane, d.Tile, d.Cycle),
		ErrorRate:      d.ErrorRate,
		MismatchCounts: d.MismatchCounts,
	}
}

func (d ExtractionDoc) record() metrics.ExtractionRecord {
	return metrics.ExtractionRecord{
		CycleKey:       metrics.AtCycle(d.Lane, d.Tile, d.Cycle),
		MaxIntensities: d.MaxIntensities,
		FocusScores:    d.FocusScores,
		DateTime:       d.DateTime,
	}
}

func (d QDoc) record() metrics.QRecord {
	return metrics.QRecord{CycleKey: metrics.AtCycle(d.Lane, d.Tile, d.Cycle), Histogram: d.Histogram}
}

func (d QCollapsedDoc) record() metrics.QCollapsedRecord {
	return metrics.QCollapsedRecord{
		CycleKey:     metrics.AtCycle(d.Lane, d.Tile, d.Cycle),
		Q20:          d.Q20,
		Q30:          d.Q30,
		Total:        d.Total,
		MedianQScore: d.MedianQScore,
	}
}

func (d PhasingDoc) record() metrics.PhasingRecord {
	return metrics.PhasingRecord{
		CycleKey:         metrics.AtCycle(d.Lane, d.Tile, d.Cycle),
		PhasingWeight:    d.PhasingWeight,
		PrephasingWeight: d.PrephasingWeight,
	}
}

func (d DynamicPhasingDoc) record() metrics.DynamicPhasingRecord {
	return metrics.DynamicPhasingRecord{
		ReadKey:          metrics.AtRead(d.Lane, d.Tile, d.Read),
		PhasingSlope:     d.PhasingSlope,
		PhasingOffset:    d.PhasingOffset,
		PrephasingSlope:  d.PrephasingSlope,
		PrephasingOffset: d.PrephasingOffset,
	}
}

func (d CorrectedIntensityDoc) record() metrics.CorrectedIntensityRecord {
	return metrics.CorrectedIntensityRecord{
		CycleKey:      metrics.AtCycle(d.Lane, d.Tile, d.Cycle),
		CalledCounts:  d.CalledCounts,
		SignalToNoise: d.SignalToNoise,
	}
}

func (d IndexDoc) record() metrics.IndexRecord {
	rec := metrics.IndexRecord{ReadKey: metrics.AtRead(d.Lane, d.Tile, d.Read)}
	for _, e := range d.Entries {
		rec.Entries = append(rec.Entries, metrics.IndexEntry{
			Sequence:      e.Sequence,
			SampleID:      e.SampleID,
			SampleProject: e.SampleProject,
			Count:         e.Count,
		})
	}
	return rec
}

func (d ExtendedTileDoc) record() metrics.ExtendedTileRecord {
	return metrics.ExtendedTileRecord{
		TileKey:              metrics.AtTile(d.Lane, d.Tile),
		ClusterCountOccupied: orNaN(d.ClusterCountOccupied),
		PercentOccupied:      orNaN(d.PercentOccupied),
	}
}

func (d ImageDoc) record() metrics.ImageRecord {
	return metrics.ImageRecord{
		CycleKey:    metrics.AtCycle(d.Lane, d.Tile, d.Cycle),
		MinContrast: d.MinContrast,
		MaxContrast: d.MaxContrast,
	}
}
