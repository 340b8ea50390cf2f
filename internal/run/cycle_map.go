package run

// ReadCycle places an absolute cycle within a read. A zero Number means the
// cycle belongs to no read.
type ReadCycle struct {
	Number          int
	CycleWithinRead int
	IsLastCycle     bool
}

// CycleReadMap maps absolute cycle-1 to its ReadCycle.
type CycleReadMap []ReadCycle

// BuildCycleReadMap maps every cycle of every read.
//
// The map is sized to the larger of the summed read lengths and the highest
// last cycle, so a gap between reads leaves sentinel entries rather than an
// out-of-range index.
func BuildCycleReadMap(reads []ReadInfo) CycleReadMap {
	size := 0
	for _, r := range reads {
		size += r.TotalCycles()
	}
	for _, r := range reads {
		if r.LastCycle > size {
			size = r.LastCycle
		}
	}
	m := make(CycleReadMap, size)
	for _, r := range reads {
		if r.FirstCycle < 1 || r.LastCycle < r.FirstCycle {
			continue
		}
		for cycle := r.FirstCycle; cycle <= r.LastCycle; cycle++ {
			m[cycle-1] = ReadCycle{Number: r.Number, CycleWithinRead: 1 + cycle - r.FirstCycle}
		}
		m[r.LastCycle-1].IsLastCycle = true
	}
	return m
}

// Lookup returns the ReadCycle of an absolute cycle. ok is false when the
// cycle lies outside the map.
func (m CycleReadMap) Lookup(cycle int) (ReadCycle, bool) {
	if cycle < 1 || cycle > len(m) {
		return ReadCycle{}, false
	}
	return m[cycle-1], true
}
