// Package logic derives metric stores and lookups that the summarizers
// depend on: collapsed q-scores, dynamic phasing fits and channel order.
package logic

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidChannel is returned when channel names cannot be resolved to the
// four-color {A, C, G, T} or two-color {Red, Green} order.
var ErrInvalidChannel = errors.New("invalid channel names")

// ExpectedOrder returns the canonical order of a set of channel names,
// lower-cased.
func ExpectedOrder(channels []string) ([]string, error) {
	expected := normalize(channels)
	slices.Sort(expected)
	switch norm := strings.Join(expected, ","); norm {
	case "a,c,g,t":
		return expected, nil
	case "green,red":
		expected[0], expected[1] = expected[1], expected[0]
		return expected, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, norm)
	}
}

// ExpectedToActual maps each canonical channel position to its position in
// the instrument-reported order.
func ExpectedToActual(channels []string) ([]int, error) {
	normed := normalize(channels)
	expected, err := ExpectedOrder(normed)
	if err != nil {
		return nil, err
	}
	mapping := make([]int, len(expected))
	for i, name := range expected {
		mapping[i] = slices.Index(normed, name)
	}
	return mapping, nil
}

// IntensityChannel returns the reported index of the channel used for
// first-cycle intensity: A on four-color runs, Red on two-color runs.
func IntensityChannel(channels []string) (int, error) {
	mapping, err := ExpectedToActual(channels)
	if err != nil {
		return 0, err
	}
	return mapping[0], nil
}

func normalize(channels []string) []string {
	out := make([]string, len(channels))
	for i, c := range channels {
		out[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return out
}
