// Package output renders run summaries: JSON and YAML exports for machines
// and a colored console report for people.
package output

import (
	"math"

	"github.com/wesleyorama2/seqsum/internal/run"
	"github.com/wesleyorama2/seqsum/internal/summary"
)

// Number is a float that encodes NaN and infinities as null.
type Number = *float64

func num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// StatView is the exported form of a summary.StatValue.
type StatView struct {
	Mean   Number `json:"mean" yaml:"mean"`
	StdDev Number `json:"stddev" yaml:"stddev"`
	Median Number `json:"median" yaml:"median"`
}

func statView(v summary.StatValue) StatView {
	return StatView{Mean: num(v.Mean), StdDev: num(v.StdDev), Median: num(v.Median)}
}

// StatsView holds the statistics of a lane or surface.
type StatsView struct {
	TileCount           int      `json:"tile_count" yaml:"tile_count"`
	Density             StatView `json:"density" yaml:"density"`
	DensityK            StatView `json:"density_k" yaml:"density_k"`
	DensityPF           StatView `json:"density_pf" yaml:"density_pf"`
	DensityPFK          StatView `json:"density_pf_k" yaml:"density_pf_k"`
	ClusterCount        StatView `json:"cluster_count" yaml:"cluster_count"`
	ClusterCountK       StatView `json:"cluster_count_k" yaml:"cluster_count_k"`
	ClusterCountPF      StatView `json:"cluster_count_pf" yaml:"cluster_count_pf"`
	ClusterCountPFK     StatView `json:"cluster_count_pf_k" yaml:"cluster_count_pf_k"`
	PercentPF           StatView `json:"percent_pf" yaml:"percent_pf"`
	Phasing             StatView `json:"phasing" yaml:"phasing"`
	Prephasing          StatView `json:"prephasing" yaml:"prephasing"`
	PhasingSlope        StatView `json:"phasing_slope" yaml:"phasing_slope"`
	PhasingOffset       StatView `json:"phasing_offset" yaml:"phasing_offset"`
	PrephasingSlope     StatView `json:"prephasing_slope" yaml:"prephasing_slope"`
	PrephasingOffset    StatView `json:"prephasing_offset" yaml:"prephasing_offset"`
	PercentAligned      StatView `json:"percent_aligned" yaml:"percent_aligned"`
	ErrorRate           StatView `json:"error_rate" yaml:"error_rate"`
	ErrorRate35         StatView `json:"error_rate_35" yaml:"error_rate_35"`
	ErrorRate50         StatView `json:"error_rate_50" yaml:"error_rate_50"`
	ErrorRate75         StatView `json:"error_rate_75" yaml:"error_rate_75"`
	ErrorRate100        StatView `json:"error_rate_100" yaml:"error_rate_100"`
	FirstCycleIntensity StatView `json:"first_cycle_intensity" yaml:"first_cycle_intensity"`
	PercentOccupied     StatView `json:"percent_occupied" yaml:"percent_occupied"`
	PercentGtQ30        Number   `json:"percent_gt_q30" yaml:"percent_gt_q30"`
	YieldG              Number   `json:"yield_g" yaml:"yield_g"`
	ProjectedYieldG     Number   `json:"projected_yield_g" yaml:"projected_yield_g"`
	Reads               Number   `json:"reads" yaml:"reads"`
	ReadsPF             Number   `json:"reads_pf" yaml:"reads_pf"`
}

func statsView(s summary.StatSummary) StatsView {
	return StatsView{
		TileCount:           s.TileCount,
		Density:             statView(s.Density),
		DensityK:            statView(s.Density.Thousands()),
		DensityPF:           statView(s.DensityPF),
		DensityPFK:          statView(s.DensityPF.Thousands()),
		ClusterCount:        statView(s.ClusterCount),
		ClusterCountK:       statView(s.ClusterCount.Thousands()),
		ClusterCountPF:      statView(s.ClusterCountPF),
		ClusterCountPFK:     statView(s.ClusterCountPF.Thousands()),
		PercentPF:           statView(s.PercentPF),
		Phasing:             statView(s.Phasing),
		Prephasing:          statView(s.Prephasing),
		PhasingSlope:        statView(s.PhasingSlope),
		PhasingOffset:       statView(s.PhasingOffset),
		PrephasingSlope:     statView(s.PrephasingSlope),
		PrephasingOffset:    statView(s.PrephasingOffset),
		PercentAligned:      statView(s.PercentAligned),
		ErrorRate:           statView(s.ErrorRate),
		ErrorRate35:         statView(s.ErrorRate35),
		ErrorRate50:         statView(s.ErrorRate50),
		ErrorRate75:         statView(s.ErrorRate75),
		ErrorRate100:        statView(s.ErrorRate100),
		FirstCycleIntensity: statView(s.FirstCycleIntensity),
		PercentOccupied:     statView(s.PercentOccupied),
		PercentGtQ30:        num(s.PercentGtQ30),
		YieldG:              num(s.YieldG),
		ProjectedYieldG:     num(s.ProjectedYieldG),
		Reads:               num(s.Reads),
		ReadsPF:             num(s.ReadsPF),
	}
}

// MetricView is the exported form of a summary.MetricSummary.
type MetricView struct {
	ErrorRate           Number `json:"error_rate" yaml:"error_rate"`
	PercentAligned      Number `json:"percent_aligned" yaml:"percent_aligned"`
	FirstCycleIntensity Number `json:"first_cycle_intensity" yaml:"first_cycle_intensity"`
	PercentGtQ30        Number `json:"percent_gt_q30" yaml:"percent_gt_q30"`
	YieldG              Number `json:"yield_g" yaml:"yield_g"`
	ProjectedYieldG     Number `json:"projected_yield_g" yaml:"projected_yield_g"`
	Reads               Number `json:"reads" yaml:"reads"`
	ReadsPF             Number `json:"reads_pf" yaml:"reads_pf"`
	ClusterCount        Number `json:"cluster_count" yaml:"cluster_count"`
	ClusterCountPF      Number `json:"cluster_count_pf" yaml:"cluster_count_pf"`
	PercentOccupied     Number `json:"percent_occupied" yaml:"percent_occupied"`
}

func metricView(m summary.MetricSummary) MetricView {
	return MetricView{
		ErrorRate:           num(m.ErrorRate),
		PercentAligned:      num(m.PercentAligned),
		FirstCycleIntensity: num(m.FirstCycleIntensity),
		PercentGtQ30:        num(m.PercentGtQ30),
		YieldG:              num(m.YieldG),
		ProjectedYieldG:     num(m.ProjectedYieldG),
		Reads:               num(m.Reads),
		ReadsPF:             num(m.ReadsPF),
		ClusterCount:        num(m.ClusterCount),
		ClusterCountPF:      num(m.ClusterCountPF),
		PercentOccupied:     num(m.PercentOccupied),
	}
}

// CycleStateView is the exported form of a summary.CycleStateSummary.
type CycleStateView struct {
	Extracted run.CycleRange `json:"extracted" yaml:"extracted"`
	Called    run.CycleRange `json:"called" yaml:"called"`
	QScored   run.CycleRange `json:"qscored" yaml:"qscored"`
	Error     run.CycleRange `json:"error" yaml:"error"`
}

func cycleStateView(c summary.CycleStateSummary) CycleStateView {
	return CycleStateView{
		Extracted: c.ExtractedCycleRange,
		Called:    c.CalledCycleRange,
		QScored:   c.QScoredCycleRange,
		Error:     c.ErrorCycleRange,
	}
}

// SurfaceView is one surface of a lane.
type SurfaceView struct {
	Surface   int `json:"surface" yaml:"surface"`
	StatsView `yaml:",inline"`
}

// LaneView is one lane of a read.
type LaneView struct {
	Lane       int            `json:"lane" yaml:"lane"`
	StatsView  `yaml:",inline"`
	CycleState CycleStateView `json:"cycle_state" yaml:"cycle_state"`
	Surfaces   []SurfaceView  `json:"surfaces,omitempty" yaml:"surfaces,omitempty"`
}

// ReadView is one read of the run.
type ReadView struct {
	Read    run.ReadInfo `json:"read" yaml:"read"`
	Summary MetricView   `json:"summary" yaml:"summary"`
	Lanes   []LaneView   `json:"lanes" yaml:"lanes"`
}

// IndexCountView is the count of one index sequence.
type IndexCountView struct {
	ID            int    `json:"id" yaml:"id"`
	Sequence      string `json:"sequence" yaml:"sequence"`
	SampleID      string `json:"sample_id" yaml:"sample_id"`
	SampleProject string `json:"sample_project,omitempty" yaml:"sample_project,omitempty"`
	ClusterCount  uint64 `json:"cluster_count" yaml:"cluster_count"`
	PercentMapped Number `json:"percent_mapped" yaml:"percent_mapped"`
}

// IndexLaneView is the demultiplexing summary of one lane.
type IndexLaneView struct {
	Lane             int              `json:"lane" yaml:"lane"`
	TotalReads       uint64           `json:"total_reads" yaml:"total_reads"`
	TotalPFReads     uint64           `json:"total_pf_reads" yaml:"total_pf_reads"`
	TotalMappedReads uint64           `json:"total_mapped_reads" yaml:"total_mapped_reads"`
	PercentMapped    Number           `json:"percent_mapped" yaml:"percent_mapped"`
	MappedReadsCV    Number           `json:"mapped_reads_cv" yaml:"mapped_reads_cv"`
	MinPercentMapped Number           `json:"min_percent_mapped" yaml:"min_percent_mapped"`
	MaxPercentMapped Number           `json:"max_percent_mapped" yaml:"max_percent_mapped"`
	Counts           []IndexCountView `json:"counts,omitempty" yaml:"counts,omitempty"`
}

// QScoreView holds the q-score percentiles of one lane.
type QScoreView struct {
	Lane  int   `json:"lane" yaml:"lane"`
	Calls int64 `json:"calls" yaml:"calls"`
	P50   int64 `json:"p50" yaml:"p50"`
	P90   int64 `json:"p90" yaml:"p90"`
}

// RunView is the exported form of a summary.RunSummary.
type RunView struct {
	LaneCount    int             `json:"lane_count" yaml:"lane_count"`
	SurfaceCount int             `json:"surface_count" yaml:"surface_count"`
	ChannelCount int             `json:"channel_count" yaml:"channel_count"`
	Total        MetricView      `json:"total" yaml:"total"`
	NonIndex     MetricView      `json:"non_index" yaml:"non_index"`
	CycleState   CycleStateView  `json:"cycle_state" yaml:"cycle_state"`
	Reads        []ReadView      `json:"reads" yaml:"reads"`
	Index        []IndexLaneView `json:"index,omitempty" yaml:"index,omitempty"`
	QScores      []QScoreView    `json:"qscores,omitempty" yaml:"qscores,omitempty"`
}

// NewRunView converts a summary to its exported form.
func NewRunView(s *summary.RunSummary) RunView {
	v := RunView{
		LaneCount:    s.LaneCount,
		SurfaceCount: s.SurfaceCount,
		ChannelCount: s.ChannelCount,
		Total:        metricView(s.Total),
		NonIndex:     metricView(s.NonIndex),
		CycleState:   cycleStateView(s.CycleState),
		Reads:        make([]ReadView, 0, len(s.Reads)),
	}
	for _, r := range s.Reads {
		rv := ReadView{Read: r.Read, Summary: metricView(r.Summary), Lanes: make([]LaneView, 0, len(r.Lanes))}
		for _, l := range r.Lanes {
			lv := LaneView{Lane: l.Lane, StatsView: statsView(l.StatSummary), CycleState: cycleStateView(l.CycleState)}
			for _, sf := range l.Surfaces {
				lv.Surfaces = append(lv.Surfaces, SurfaceView{Surface: sf.Surface, StatsView: statsView(sf.StatSummary)})
			}
			rv.Lanes = append(rv.Lanes, lv)
		}
		v.Reads = append(v.Reads, rv)
	}
	for _, ix := range s.Index {
		iv := IndexLaneView{
			Lane:             ix.Lane,
			TotalReads:       ix.TotalReads,
			TotalPFReads:     ix.TotalPFReads,
			TotalMappedReads: ix.TotalMappedReads,
			PercentMapped:    num(ix.PercentMapped),
			MappedReadsCV:    num(ix.MappedReadsCV),
			MinPercentMapped: num(ix.MinPercentMapped),
			MaxPercentMapped: num(ix.MaxPercentMapped),
		}
		for _, c := range ix.Counts {
			iv.Counts = append(iv.Counts, IndexCountView{
				ID:            c.ID,
				Sequence:      c.Sequence,
				SampleID:      c.SampleID,
				SampleProject: c.SampleProject,
				ClusterCount:  c.ClusterCount,
				PercentMapped: num(c.PercentMapped),
			})
		}
		v.Index = append(v.Index, iv)
	}
	for _, q := range s.QScores {
		v.QScores = append(v.QScores, QScoreView{Lane: q.Lane, Calls: q.Calls, P50: q.P50, P90: q.P90})
	}
	return v
}
