package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a run fixture validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects every problem found in a fixture.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateRun checks a fixture for problems that would make its metrics
// unusable: an inconsistent run description, records on lanes or reads the
// run does not have, and malformed q-score bins.
func ValidateRun(doc *RunDocument) ValidationErrors {
	var errors ValidationErrors

	if err := doc.Run.Validate(); err != nil {
		errors = append(errors, ValidationError{Path: "run", Message: err.Error()})
	}
	laneCount := doc.Run.LaneCount
	readCount := len(doc.Run.Reads)

	checkLane := func(path string, lane int) {
		if lane < 1 || lane > laneCount {
			errors = append(errors, ValidationError{
				Path:    path + ".lane",
				Message: fmt.Sprintf("lane %d outside 1..%d", lane, laneCount),
			})
		}
	}
	checkRead := func(path string, read int) {
		if read < 1 || read > readCount {
			errors = append(errors, ValidationError{
				Path:    path + ".read",
				Message: fmt.Sprintf("read %d outside 1..%d", read, readCount),
			})
		}
	}

	for i, b := range doc.QScoreBins {
		if b.Lower > b.Upper || b.Value < b.Lower || b.Value > b.Upper {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("qscore_bins[%d]", i),
				Message: fmt.Sprintf("value %d must lie in [%d, %d]", b.Value, b.Lower, b.Upper),
			})
		}
	}

	md := doc.Metrics
	for i, r := range md.Tile {
		path := fmt.Sprintf("metrics.tile[%d]", i)
		checkLane(path, r.Lane)
		for j, rr := range r.Reads {
			checkRead(fmt.Sprintf("%s.reads[%d]", path, j), rr.Read)
		}
	}
	for i, r := range md.Error {
		checkLane(fmt.Sprintf("metrics.error[%d]", i), r.Lane)
	}
	for i, r := range md.Extraction {
		path := fmt.Sprintf("metrics.extraction[%d]", i)
		checkLane(path, r.Lane)
		if n := len(doc.Run.Channels); n > 0 && len(r.MaxIntensities) > n {
			errors = append(errors, ValidationError{
				Path:    path + ".max_intensities",
				Message: fmt.Sprintf("%d intensities for %d channels", len(r.MaxIntensities), n),
			})
		}
	}
	for i, r := range md.Q {
		checkLane(fmt.Sprintf("metrics.q[%d]", i), r.Lane)
	}
	for i, r := range md.QCollapsed {
		path := fmt.Sprintf("metrics.q_collapsed[%d]", i)
		checkLane(path, r.Lane)
		if r.Q30 > r.Q20 || r.Q20 > r.Total {
			errors = append(errors, ValidationError{
				Path:    path,
				Message: "counts must satisfy q30 <= q20 <= total",
			})
		}
	}
	for i, r := range md.Phasing {
		checkLane(fmt.Sprintf("metrics.phasing[%d]", i), r.Lane)
	}
	for i, r := range md.DynamicPhasing {
		path := fmt.Sprintf("metrics.dynamic_phasing[%d]", i)
		checkLane(path, r.Lane)
		checkRead(path, r.Read)
	}
	for i, r := range md.CorrectedIntensity {
		checkLane(fmt.Sprintf("metrics.corrected_intensity[%d]", i), r.Lane)
	}
	for i, r := range md.Index {
		path := fmt.Sprintf("metrics.index[%d]", i)
		checkLane(path, r.Lane)
		checkRead(path, r.Read)
		for j, e := range r.Entries {
			if e.Sequence == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("%s.entries[%d].sequence", path, j),
					Message: "sequence cannot be empty",
				})
			}
		}
	}
	for i, r := range md.ExtendedTile {
		checkLane(fmt.Sprintf("metrics.extended_tile[%d]", i), r.Lane)
	}
	for i, r := range md.Image {
		checkLane(fmt.Sprintf("metrics.image[%d]", i), r.Lane)
	}

	return errors
}
