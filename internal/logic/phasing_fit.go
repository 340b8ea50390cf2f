package logic

import (
	"gonum.org/v1/gonum/stat"

	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// PhasingFitWindow is the number of cycles a read needs before phasing is
// fitted, and the number of samples used to backfill tile phasing.
const PhasingFitWindow = 25

// fitEpsilon is the smallest OLS denominator FitLine accepts.
const fitEpsilon = 0x1p-52

// FitLine fits y = slope*x + offset by ordinary least squares. ok is false
// when there are fewer than 2 samples or the x values do not spread.
func FitLine(x, y []float64) (slope, offset float64, ok bool) {
	n := len(x)
	if n < 2 || n != len(y) {
		return 0, 0, false
	}
	var sx, sxx float64
	for _, v := range x {
		sx += v
		sxx += v * v
	}
	if float64(n)*sxx-sx*sx <= fitEpsilon {
		return 0, 0, false
	}
	offset, slope = stat.LinearRegression(x, y, nil, false)
	return slope, offset, true
}

// phasingSeries collects the phasing weights of one tile over one read.
type phasingSeries struct {
	cycles     []float64
	phasing    []float64
	prephasing []float64
	maxCycle   int
}

func (s *phasingSeries) reset() {
	s.cycles = s.cycles[:0]
	s.phasing = s.phasing[:0]
	s.prephasing = s.prephasing[:0]
	s.maxCycle = 0
}

func (s *phasingSeries) fit(limit int) (phasing, prephasing [2]float64, ok bool) {
	n := len(s.cycles)
	if limit > 0 && limit < n {
		n = limit
	}
	ps, po, ok1 := FitLine(s.cycles[:n], s.phasing[:n])
	pps, ppo, ok2 := FitLine(s.cycles[:n], s.prephasing[:n])
	return [2]float64{ps, po}, [2]float64{pps, ppo}, ok1 && ok2
}

// PopulateDynamicPhasing fits the phasing weights of every tile over each
// read and inserts one dynamic phasing record per tile and read. Reads
// shorter than PhasingFitWindow cycles are not fitted.
//
// The fit over the first PhasingFitWindow cycles also backfills the percent
// phasing and prephasing of the matching tile record when it is unset. It
// returns the number of records inserted.
func PopulateDynamicPhasing(phasing *metrics.Store[metrics.PhasingRecord],
	cycleToRead run.CycleReadMap,
	dynamic *metrics.Store[metrics.DynamicPhasingRecord],
	tiles *metrics.Store[metrics.TileRecord]) (int, error) {
	if phasing.Empty() || phasing.MaxCycle() < PhasingFitWindow {
		return 0, nil
	}
	inserted := 0
	var series phasingSeries
	for _, lane := range phasing.Lanes() {
		for _, tile := range phasing.TileNumbersForLane(lane) {
			series.reset()
			for i, rc := range cycleToRead {
				cycle := i + 1
				if rc.Number == 0 {
					continue
				}
				if rec, err := phasing.GetMetric(lane, tile, cycle); err == nil {
					series.maxCycle = rc.CycleWithinRead
					series.cycles = append(series.cycles, float64(rc.CycleWithinRead))
					series.phasing = append(series.phasing, rec.PhasingWeight)
					series.prephasing = append(series.prephasing, rec.PrephasingWeight)
				}
				if !rc.IsLastCycle {
					continue
				}
				if series.maxCycle >= PhasingFitWindow {
					ok, err := fitRead(&series, lane, tile, rc.Number, dynamic, tiles)
					if err != nil {
						return inserted, err
					}
					if ok {
						inserted++
					}
				}
				series.reset()
			}
		}
	}
	return inserted, nil
}

func fitRead(series *phasingSeries,
	lane, tile, read int,
	dynamic *metrics.Store[metrics.DynamicPhasingRecord],
	tiles *metrics.Store[metrics.TileRecord]) (bool, error) {
	id, err := metricid.ForTile(lane, tile)
	if err != nil {
		return false, err
	}
	if idx, found := tiles.Find(id); found {
		if ph, pre, ok := series.fit(PhasingFitWindow); ok {
			tiles.At(idx).UpdatePhasingIfMissing(read, ph[0]*100, pre[0]*100)
		}
	}

	ph, pre, ok := series.fit(0)
	if !ok {
		return false, nil
	}
	rec := metrics.DynamicPhasingRecord{
		ReadKey:          metrics.AtRead(lane, tile, read),
		PhasingSlope:     ph[0],
		PhasingOffset:    ph[1],
		PrephasingSlope:  pre[0],
		PrephasingOffset: pre[1],
	}
	if err := dynamic.Insert(rec); err != nil {
		return false, err
	}
	return true, nil
}
