package metricid

import (
	"fmt"
	"strings"
)

// NamingMethod is the tile naming convention of a flow cell.
type NamingMethod int

const (
	UnknownNaming NamingMethod = iota
	// FourDigit tiles are numbered SWRR: surface, swath, two-digit tile.
	FourDigit
	// FiveDigit tiles are numbered SSWRR with a section digit: surface, swath, section, tile.
	FiveDigit
	// Absolute tiles carry no layout information.
	Absolute
)

func (m NamingMethod) String() string {
	switch m {
	case FourDigit:
		return "FourDigit"
	case FiveDigit:
		return "FiveDigit"
	case Absolute:
		return "Absolute"
	default:
		return "Unknown"
	}
}

// ParseNamingMethod parses a naming method name, case-insensitively.
func ParseNamingMethod(s string) (NamingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fourdigit", "four_digit", "4digit":
		return FourDigit, nil
	case "fivedigit", "five_digit", "5digit":
		return FiveDigit, nil
	case "absolute":
		return Absolute, nil
	}
	return UnknownNaming, fmt.Errorf("unknown tile naming method: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m NamingMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *NamingMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseNamingMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// TileNumber returns the tile number within its swath.
func TileNumber(tile int, _ NamingMethod) int {
	return tile % 100
}

// Surface returns the 1-based surface of the tile, or 1 when the naming
// method carries no surface.
func Surface(tile int, method NamingMethod) int {
	switch method {
	case FiveDigit:
		return tile / 10000
	case FourDigit:
		return tile / 1000
	default:
		return 1
	}
}

// Swath returns the swath of the tile, or 1 when the naming method carries
// no swath.
func Swath(tile int, method NamingMethod) int {
	switch method {
	case FiveDigit:
		return (tile / 1000) % 10
	case FourDigit:
		return (tile / 100) % 10
	default:
		return 1
	}
}

// Section returns the section of a five-digit tile and 0 otherwise.
func Section(tile int, method NamingMethod) int {
	if method != FiveDigit {
		return 0
	}
	return (tile / 100) % 10
}
