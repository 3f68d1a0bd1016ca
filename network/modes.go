package network

import (
	"errors"
	"fmt"
	"strings"
)

//*******************************************
// mode set
//*******************************************

// ModeSet is a bitmask of travel modes allowed on a link.
type ModeSet byte

const (
	CAR  ModeSet = 1 << 0
	BIKE ModeSet = 1 << 1
	FOOT ModeSet = 1 << 2

	NO_MODES  ModeSet = 0
	ALL_MODES ModeSet = CAR | BIKE | FOOT
)

var ErrUnknownMode = errors.New("network: unknown mode")

// Contains reports whether every mode of other is allowed.
func (self ModeSet) Contains(other ModeSet) bool {
	return self&other == other
}

// Intersects reports whether at least one mode of other is allowed.
func (self ModeSet) Intersects(other ModeSet) bool {
	return self&other != 0
}

func (self ModeSet) String() string {
	if self == NO_MODES {
		return ""
	}
	parts := make([]string, 0, 3)
	if self&CAR != 0 {
		parts = append(parts, "car")
	}
	if self&BIKE != 0 {
		parts = append(parts, "bike")
	}
	if self&FOOT != 0 {
		parts = append(parts, "foot")
	}
	return strings.Join(parts, ";")
}

// ParseModes parses a ';' separated list like "car;bike".
func ParseModes(s string) (ModeSet, error) {
	modes := NO_MODES
	for _, part := range strings.Split(s, ";") {
		switch strings.TrimSpace(part) {
		case "car":
			modes |= CAR
		case "bike":
			modes |= BIKE
		case "foot":
			modes |= FOOT
		case "all":
			modes |= ALL_MODES
		case "":
		default:
			return NO_MODES, fmt.Errorf("%w: %q", ErrUnknownMode, part)
		}
	}
	return modes, nil
}
