package summary

import (
	"math"

	"github.com/wesleyorama2/seqsum/internal/logic"
	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
)

// StatValue is the mean, population standard deviation and median of a
// sample. The zero state is {0, 0, NaN}; see NewStatValue.
type StatValue struct {
	Mean   float64
	StdDev float64
	Median float64
}

// NewStatValue returns a StatValue in its default state.
func NewStatValue() StatValue {
	return StatValue{Median: math.NaN()}
}

// Clear resets the value to its default state.
func (s *StatValue) Clear() {
	*s = NewStatValue()
}

// Thousands returns the value in _k units. NaN fields stay NaN.
func (s StatValue) Thousands() StatValue {
	return StatValue{
		Mean:   metrics.Thousands(s.Mean),
		StdDev: metrics.Thousands(s.StdDev),
		Median: metrics.Thousands(s.Median),
	}
}

// StatSummary holds the statistics reported for a lane or a surface.
type StatSummary struct {
	TileCount int

	Density          StatValue
	DensityPF        StatValue
	ClusterCount     StatValue
	ClusterCountPF   StatValue
	PercentPF        StatValue
	Phasing          StatValue
	Prephasing       StatValue
	PhasingSlope     StatValue
	PhasingOffset    StatValue
	PrephasingSlope  StatValue
	PrephasingOffset StatValue
	PercentAligned   StatValue
	ErrorRate        StatValue
	ErrorRate35      StatValue
	ErrorRate50      StatValue
	ErrorRate75      StatValue
	ErrorRate100     StatValue
	// FirstCycleIntensity is the intensity of the first cycle of the read.
	FirstCycleIntensity StatValue
	PercentOccupied     StatValue

	PercentGtQ30    float64
	YieldG          float64
	ProjectedYieldG float64
	Reads           float64
	ReadsPF         float64
}

func newStatSummary() StatSummary {
	v := NewStatValue()
	return StatSummary{
		Density:             v,
		DensityPF:           v,
		ClusterCount:        v,
		ClusterCountPF:      v,
		PercentPF:           v,
		Phasing:             v,
		Prephasing:          v,
		PhasingSlope:        v,
		PhasingOffset:       v,
		PrephasingSlope:     v,
		PrephasingOffset:    v,
		PercentAligned:      v,
		ErrorRate:           v,
		ErrorRate35:         v,
		ErrorRate50:         v,
		ErrorRate75:         v,
		ErrorRate100:        v,
		FirstCycleIntensity: v,
		PercentOccupied:     v,
		PercentGtQ30:        math.NaN(),
		Reads:               math.NaN(),
		ReadsPF:             math.NaN(),
	}
}

// MetricSummary holds the scalar totals of a read or of the whole run.
type MetricSummary struct {
	ErrorRate           float64
	PercentAligned      float64
	FirstCycleIntensity float64
	PercentGtQ30        float64
	YieldG              float64
	ProjectedYieldG     float64
	Reads               float64
	ReadsPF             float64
	ClusterCount        float64
	ClusterCountPF      float64
	PercentOccupied     float64
}

func newMetricSummary() MetricSummary {
	return MetricSummary{
		ErrorRate:           math.NaN(),
		FirstCycleIntensity: math.NaN(),
		PercentGtQ30:        math.NaN(),
		PercentOccupied:     math.NaN(),
	}
}

// CycleStateSummary records how far each processing stage has progressed.
type CycleStateSummary struct {
	ExtractedCycleRange run.CycleRange
	CalledCycleRange    run.CycleRange
	QScoredCycleRange   run.CycleRange
	ErrorCycleRange     run.CycleRange
}

func newCycleStateSummary() CycleStateSummary {
	return CycleStateSummary{
		ExtractedCycleRange: run.NewCycleRange(),
		CalledCycleRange:    run.NewCycleRange(),
		QScoredCycleRange:   run.NewCycleRange(),
		ErrorCycleRange:     run.NewCycleRange(),
	}
}

// SurfaceSummary is the summary of one surface of a lane.
type SurfaceSummary struct {
	Surface int
	StatSummary
}

// LaneSummary is the summary of one lane for one read.
type LaneSummary struct {
	Lane int
	StatSummary
	CycleState CycleStateSummary
	// Surfaces is populated only when the flow cell has more than one surface.
	Surfaces []SurfaceSummary
}

// ReadSummary is the summary of one read.
type ReadSummary struct {
	Read    run.ReadInfo
	Summary MetricSummary
	Lanes   []LaneSummary
}

// RunSummary is the root of the summary hierarchy: reads, then lanes, then
// surfaces.
type RunSummary struct {
	Reads        []ReadSummary
	LaneCount    int
	SurfaceCount int
	ChannelCount int

	Total      MetricSummary
	NonIndex   MetricSummary
	CycleState CycleStateSummary
	// Index holds one demultiplexing summary per lane, nil without index
	// metrics.
	Index []IndexLaneSummary
	// QScores holds the q-score percentiles of each lane with q-score data.
	QScores []logic.QScorePercentiles
}

// Initialize allocates the hierarchy for a run, discarding previous content.
func (s *RunSummary) Initialize(info run.Info) {
	s.LaneCount = info.LaneCount
	s.SurfaceCount = info.SurfaceCount
	s.ChannelCount = len(info.Channels)
	s.Total = newMetricSummary()
	s.NonIndex = newMetricSummary()
	s.CycleState = newCycleStateSummary()
	s.Index = nil
	s.QScores = nil
	s.Reads = make([]ReadSummary, len(info.Reads))
	for r, ri := range info.Reads {
		lanes := make([]LaneSummary, info.LaneCount)
		for l := range lanes {
			lanes[l] = LaneSummary{
				Lane:        l + 1,
				StatSummary: newStatSummary(),
				CycleState:  newCycleStateSummary(),
			}
			if info.SurfaceCount > 1 {
				lanes[l].Surfaces = make([]SurfaceSummary, info.SurfaceCount)
				for sf := range lanes[l].Surfaces {
					lanes[l].Surfaces[sf] = SurfaceSummary{Surface: sf + 1, StatSummary: newStatSummary()}
				}
			}
		}
		s.Reads[r] = ReadSummary{Read: ri, Summary: newMetricSummary(), Lanes: lanes}
	}
}

// Clear empties the hierarchy.
func (s *RunSummary) Clear() {
	*s = RunSummary{}
}

// Size returns the number of reads.
func (s *RunSummary) Size() int { return len(s.Reads) }

// Empty reports whether the hierarchy holds no reads.
func (s *RunSummary) Empty() bool { return len(s.Reads) == 0 }
