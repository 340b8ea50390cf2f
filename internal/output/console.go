package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Thresholds for coloring quality columns.
const (
	goodQ30   = 80.0
	warnQ30   = 70.0
	goodErr   = 1.0
	warnErr   = 2.0
	missing   = "-"
	plusMinus = " ± "
)

// Report renders an envelope as a console table: a run overview, then one
// lane table per read.
type Report struct {
	w      io.Writer
	colors *ColorScheme
	err    error
}

// NewReport creates a report writing to w.
func NewReport(w io.Writer, colors *ColorScheme) *Report {
	return &Report{w: w, colors: colors}
}

func (r *Report) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// Write renders env.
func (r *Report) Write(env Envelope) error {
	s := env.Summary
	r.printf("%s %s\n", r.colors.Title.Sprint("Run summary"), env.SummaryID)
	if env.Source != "" {
		r.printf("%s %s\n", r.colors.Label.Sprint("Source:"), env.Source)
	}
	r.printf("%s %d reads, %d lanes, %d surfaces\n\n",
		r.colors.Label.Sprint("Layout:"), len(s.Reads), s.LaneCount, s.SurfaceCount)

	if len(s.Reads) == 0 {
		r.printf("%s\n", r.colors.Missing.Sprint("no metrics"))
		return r.err
	}

	r.overview(s)
	for _, rv := range s.Reads {
		r.laneTable(rv)
	}
	if len(s.Index) > 0 {
		r.indexTable(s.Index)
	}
	return r.err
}

var overviewColumns = []string{"Level", "Yield(G)", "Projected(G)", "Aligned(%)", "Error(%)", "Intensity C1", "%>=Q30"}

func (r *Report) overview(s RunView) {
	r.header(overviewColumns, 14)
	for _, rv := range s.Reads {
		label := fmt.Sprintf("Read %d", rv.Read.Number)
		if rv.Read.IsIndex {
			label += " (I)"
		}
		r.overviewRow(label, rv.Summary)
	}
	r.overviewRow("Non-indexed", s.NonIndex)
	r.overviewRow("Total", s.Total)
	r.printf("\n")
}

func (r *Report) overviewRow(label string, m MetricView) {
	cells := []string{
		r.colors.Label.Sprint(pad(label, 14)),
		r.cell(m.YieldG, "%.2f", 14, nil),
		r.cell(m.ProjectedYieldG, "%.2f", 14, nil),
		r.cell(m.PercentAligned, "%.2f", 14, nil),
		r.cell(m.ErrorRate, "%.2f", 14, r.errorColor),
		r.cell(m.FirstCycleIntensity, "%.0f", 14, nil),
		r.cell(m.PercentGtQ30, "%.2f", 14, r.q30Color),
	}
	r.printf("%s\n", strings.Join(cells, ""))
}

var laneColumns = []string{"Lane", "Tiles", "Density(K)", "Cluster PF(%)", "Phas/Prephas", "Reads(M)", "Reads PF(M)",
	"%>=Q30", "Yield(G)", "Aligned(%)", "Error(%)", "Intensity C1"}

func (r *Report) laneTable(rv ReadView) {
	title := fmt.Sprintf("Read %d", rv.Read.Number)
	if rv.Read.IsIndex {
		title += " (I)"
	}
	r.printf("%s\n", r.colors.Highlight.Sprint(title))
	r.header(laneColumns, 16)
	for _, lv := range rv.Lanes {
		r.laneRow(fmt.Sprint(lv.Lane), lv.StatsView)
		for _, sf := range lv.Surfaces {
			r.laneRow(fmt.Sprintf("%d.%d", lv.Lane, sf.Surface), sf.StatsView)
		}
	}
	r.printf("\n")
}

func (r *Report) laneRow(label string, s StatsView) {
	cells := []string{
		r.colors.Label.Sprint(pad(label, 16)),
		r.colors.Value.Sprint(pad(fmt.Sprint(s.TileCount), 16)),
		r.stat(s.DensityK, 16),
		r.stat(s.PercentPF, 16),
		r.pair(s.Phasing.Mean, s.Prephasing.Mean, 16),
		r.cell(scale(s.Reads, 1e-6), "%.2f", 16, nil),
		r.cell(scale(s.ReadsPF, 1e-6), "%.2f", 16, nil),
		r.cell(s.PercentGtQ30, "%.2f", 16, r.q30Color),
		r.cell(s.YieldG, "%.2f", 16, nil),
		r.stat(s.PercentAligned, 16),
		r.stat(s.ErrorRate, 16),
		r.stat(s.FirstCycleIntensity, 16),
	}
	r.printf("%s\n", strings.Join(cells, ""))
}

func (r *Report) indexTable(lanes []IndexLaneView) {
	r.printf("%s\n", r.colors.Highlight.Sprint("Index"))
	r.header([]string{"Lane", "Sample", "Index", "Clusters", "Identified(%)"}, 16)
	for _, l := range lanes {
		for _, c := range l.Counts {
			r.printf("%s%s%s%s%s\n",
				r.colors.Label.Sprint(pad(fmt.Sprint(l.Lane), 16)),
				r.colors.Value.Sprint(pad(c.SampleID, 16)),
				r.colors.Value.Sprint(pad(c.Sequence, 16)),
				r.colors.Value.Sprint(pad(fmt.Sprint(c.ClusterCount), 16)),
				r.cell(c.PercentMapped, "%.4f", 16, nil))
		}
		r.printf("%s%s%s\n",
			r.colors.Label.Sprint(pad(fmt.Sprint(l.Lane), 16)),
			r.colors.Label.Sprint(pad("total", 32)),
			r.cell(l.PercentMapped, "%.4f", 32, nil))
	}
	r.printf("\n")
}

func (r *Report) header(columns []string, width int) {
	var sb strings.Builder
	for _, c := range columns {
		sb.WriteString(pad(c, width))
	}
	r.printf("%s\n", r.colors.Header.Sprint(strings.TrimRight(sb.String(), " ")))
}

// cell formats a value padded to width, colored by pick when given.
func (r *Report) cell(v Number, format string, width int, pick func(float64) *color.Color) string {
	if v == nil {
		return r.colors.Missing.Sprint(pad(missing, width))
	}
	c := r.colors.Value
	if pick != nil {
		c = pick(*v)
	}
	return c.Sprint(pad(fmt.Sprintf(format, *v), width))
}

// stat formats a mean ± standard deviation.
func (r *Report) stat(v StatView, width int) string {
	if v.Mean == nil {
		return r.colors.Missing.Sprint(pad(missing, width))
	}
	text := fmt.Sprintf("%.2f", *v.Mean)
	if v.StdDev != nil {
		text += plusMinus + fmt.Sprintf("%.2f", *v.StdDev)
	}
	return r.colors.Value.Sprint(pad(text, width))
}

func (r *Report) pair(a, b Number, width int) string {
	format := func(v Number) string {
		if v == nil {
			return missing
		}
		return fmt.Sprintf("%.3f", *v)
	}
	return r.colors.Value.Sprint(pad(format(a)+" / "+format(b), width))
}

func (r *Report) q30Color(v float64) *color.Color {
	switch {
	case v >= goodQ30:
		return r.colors.Good
	case v >= warnQ30:
		return r.colors.Warn
	default:
		return r.colors.Bad
	}
}

func (r *Report) errorColor(v float64) *color.Color {
	switch {
	case v <= goodErr:
		return r.colors.Good
	case v <= warnErr:
		return r.colors.Warn
	default:
		return r.colors.Bad
	}
}

func scale(v Number, factor float64) Number {
	if v == nil {
		return nil
	}
	scaled := *v * factor
	return &scaled
}

// pad right-pads s to width runes, always leaving one space.
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-n)
}
