package game

import (
	"fmt"
	"strings"
)

// Direction is one of the four compass directions a movement can take.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions lists every valid direction in display order.
var Directions = []Direction{North, South, East, West}

// ParseDirection matches s case-insensitively against the known directions.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Directions {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("direction %q: %w", s, ErrInvalidInput)
}

func (d Direction) String() string {
	return string(d)
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return fmt.Errorf("unknown direction %q", text)
	}
	*d = parsed
	return nil
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d), nil
}
