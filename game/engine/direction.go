package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Direction represents a cardinal heading
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns the headings in clockwise order
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// IsValid returns true if the direction is a cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Right returns the heading after a clockwise quarter turn
func (d Direction) Right() Direction {
	switch d {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	}
	return d
}

// Left returns the heading after a counter-clockwise quarter turn
func (d Direction) Left() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	}
	return d
}

// Opposite returns the reversed heading
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}

// Delta returns the x and y offsets of one step. North increases y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Letter returns the single-letter form used in mission files (N, E, S, W)
func (d Direction) Letter() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return "?"
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "Unknown"
}

// ParseDirection converts a heading letter into a Direction.
// Only the exact letters N, E, S and W are accepted.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "N":
		return North, nil
	case "E":
		return East, nil
	case "S":
		return South, nil
	case "W":
		return West, nil
	}
	return North, newMissionError(KindInvalidDirection, s, Position{})
}

// MarshalJSON encodes a direction as its letter
func (d Direction) MarshalJSON() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return json.Marshal(d.Letter())
}

// UnmarshalJSON accepts a heading letter or a full name ("north")
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "north":
		s = "N"
	case "east":
		s = "E"
	case "south":
		s = "S"
	case "west":
		s = "W"
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
