package spatial

import (
	"fmt"
	"strings"
)

// Direction is one of the six axis-aligned relations between blocks.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
	Forward
	Backward
)

var directionNames = [...]string{"left", "right", "up", "down", "forward", "backward"}

// Directions returns all directions in their fixed sort order.
func Directions() []Direction {
	return []Direction{Left, Right, Up, Down, Forward, Backward}
}

// Inverse returns the opposite direction. No direction is its own inverse.
func (d Direction) Inverse() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	case Forward:
		return Backward
	default:
		return Forward
	}
}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool { return int(d) < len(directionNames) }

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
