package summary

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/wesleyorama2/seqsum/internal/logic"
	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
)

// BuilderConfig controls a summarization pass.
type BuilderConfig struct {
	// SkipMedian leaves every median at NaN.
	SkipMedian bool `json:"skip_median" yaml:"skip_median"`
	// Trim drops lanes without tiles and orders the rest by lane number.
	Trim bool `json:"trim" yaml:"trim"`
}

// DefaultBuilderConfig returns the default configuration.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{}
}

// PassInfo describes one completed summarization pass.
type PassInfo struct {
	ID       uuid.UUID
	Started  time.Time
	Duration time.Duration
	// Derived counts the records computed for empty derived stores, by store.
	Derived map[string]int
}

// Builder turns the metric stores of a run into a RunSummary.
//
// A Builder holds no per-run state and may be shared between goroutines as
// long as each pass gets its own RunMetrics and RunSummary.
type Builder struct {
	config  BuilderConfig
	logger  log.Logger
	metrics *Metrics
}

// NewBuilder creates a Builder with the default configuration, no logging
// and no instrumentation.
func NewBuilder() *Builder {
	return NewBuilderWithConfig(DefaultBuilderConfig(), nil, nil)
}

// NewBuilderWithConfig creates a Builder. A nil logger discards output and
// nil metrics disable instrumentation.
func NewBuilderWithConfig(config BuilderConfig, logger log.Logger, m *Metrics) *Builder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Builder{config: config, logger: logger, metrics: m}
}

// Config returns the builder configuration.
func (b *Builder) Config() BuilderConfig {
	return b.config
}

// Summarize overwrites summary with the summary of m.
//
// Empty q-collapsed and dynamic phasing stores are computed from the q-score
// and phasing stores before any summarizer runs; populated ones are used as
// they are. Computing dynamic phasing may backfill tile phasing, so m is
// modified on the first pass. Later passes over the same metrics produce the
// same summary.
func (b *Builder) Summarize(m *metrics.RunMetrics, summary *RunSummary) (PassInfo, error) {
	pass := PassInfo{ID: uuid.New(), Started: time.Now(), Derived: map[string]int{}}
	logger := log.With(b.logger, "summary_id", pass.ID.String())
	if b.metrics != nil {
		b.metrics.Passes.Inc()
	}

	if m.Empty() {
		summary.Clear()
		level.Info(logger).Log("msg", "no metrics to summarize")
		pass.Duration = time.Since(pass.Started)
		return pass, nil
	}
	if err := m.Info.Validate(); err != nil {
		b.fail("init")
		return pass, fmt.Errorf("run info: %w", err)
	}

	summary.Initialize(m.Info)
	cycleToRead := run.BuildCycleReadMap(m.Info.Reads)
	method := m.Info.NamingMethod
	skip := b.config.SkipMedian

	steps := []struct {
		name string
		fn   func() error
	}{
		{"collapse_q", func() error {
			if !m.QCollapsed.Empty() {
				return nil
			}
			n, err := logic.CollapseQMetrics(m.Q, m.QBins, m.QCollapsed)
			pass.Derived["q_collapsed"] = n
			return err
		}},
		{"dynamic_phasing", func() error {
			if !m.DynamicPhasing.Empty() {
				return nil
			}
			n, err := logic.PopulateDynamicPhasing(m.Phasing, cycleToRead, m.DynamicPhasing, m.Tile)
			pass.Derived["dynamic_phasing"] = n
			return err
		}},
		{"tile", func() error { return SummarizeTileMetrics(m.Tile, method, summary, skip) }},
		{"extended_tile", func() error { return SummarizeExtendedTileMetrics(m.ExtendedTile, method, summary, skip) }},
		{"error", func() error { return SummarizeErrorMetrics(m.Error, cycleToRead, method, summary, skip) }},
		{"extraction", func() error {
			if m.Extraction.Empty() {
				return nil
			}
			channel, err := logic.IntensityChannel(m.Info.Channels)
			if err != nil {
				return err
			}
			return SummarizeExtractionMetrics(m.Extraction, cycleToRead, channel, method, summary, skip)
		}},
		{"quality", func() error { return SummarizeCollapsedQualityMetrics(m.QCollapsed, cycleToRead, method, summary) }},
		{"tile_count", func() error {
			SummarizeTileCount(m, summary)
			return nil
		}},
		{"cycle_state", func() error {
			if err := SummarizeCycleState(m.Tile, m.Extraction, cycleToRead, ExtractedStage, summary); err != nil {
				return err
			}
			if err := SummarizeCycleState(m.Tile, m.Q, cycleToRead, QScoredStage, summary); err != nil {
				return err
			}
			if err := SummarizeCycleState(m.Tile, m.CorrectedIntensity, cycleToRead, CalledStage, summary); err != nil {
				return err
			}
			return SummarizeCycleState(m.Tile, m.Error, cycleToRead, ErrorStage, summary)
		}},
		{"phasing", func() error { return SummarizePhasingMetrics(m.DynamicPhasing, method, summary, skip) }},
		{"index", func() error {
			index, err := SummarizeIndexMetrics(m.Index, m.Tile, summary.LaneCount)
			summary.Index = index
			return err
		}},
		{"qscore_distribution", func() error {
			dist, err := logic.QScoreDistribution(m.Q, m.QBins)
			summary.QScores = dist
			return err
		}},
		{"summary_run", func() error {
			if m.Tile.Empty() && m.SummaryRun != nil {
				applySummaryRun(*m.SummaryRun, summary)
			}
			return nil
		}},
	}

	for _, step := range steps {
		start := time.Now()
		err := step.fn()
		if b.metrics != nil {
			b.metrics.StepDuration.WithLabelValues(step.name).Observe(time.Since(start).Seconds())
		}
		if err != nil {
			b.fail(step.name)
			level.Error(logger).Log("msg", "summarization failed", "step", step.name, "err", err)
			return pass, fmt.Errorf("%s: %w", step.name, err)
		}
		level.Debug(logger).Log("msg", "step complete", "step", step.name, "duration", time.Since(start))
	}
	for store, n := range pass.Derived {
		if b.metrics != nil && n > 0 {
			b.metrics.DerivedRecords.WithLabelValues(store).Add(float64(n))
		}
	}

	if b.config.Trim {
		Trim(summary)
	}

	pass.Duration = time.Since(pass.Started)
	level.Info(logger).Log("msg", "summarization complete",
		"reads", summary.Size(),
		"lanes", summary.LaneCount,
		"duration", pass.Duration)
	return pass, nil
}

func (b *Builder) fail(step string) {
	if b.metrics != nil {
		b.metrics.Failures.WithLabelValues(step).Inc()
	}
}

// applySummaryRun fills the run-level cluster counts from instrument totals.
func applySummaryRun(rec metrics.SummaryRunRecord, summary *RunSummary) {
	set := func(ms *MetricSummary) {
		ms.Reads = rec.RawClusterCount
		ms.ReadsPF = rec.PFClusterCount
		ms.ClusterCount = rec.RawClusterCount
		ms.ClusterCountPF = rec.PFClusterCount
		ms.PercentOccupied = rec.PercentOccupied()
	}
	for r := range summary.Reads {
		set(&summary.Reads[r].Summary)
	}
	set(&summary.NonIndex)
	set(&summary.Total)
}

// Trim drops lanes that report no tiles and sorts the remaining lanes by
// lane number. LaneCount becomes the highest lane number kept.
func Trim(summary *RunSummary) {
	laneCount := 0
	for r := range summary.Reads {
		read := &summary.Reads[r]
		read.Lanes = slices.DeleteFunc(read.Lanes, func(l LaneSummary) bool { return l.TileCount == 0 })
		slices.SortStableFunc(read.Lanes, func(a, b LaneSummary) int { return a.Lane - b.Lane })
		for _, l := range read.Lanes {
			laneCount = max(laneCount, l.Lane)
		}
	}
	summary.LaneCount = laneCount
}
