package engine

import "fmt"

const (
	MinPlanetSize       = 1
	DefaultPlanetName   = "mars"
	DefaultPlanetWidth  = 5
	DefaultPlanetHeight = 4
)

// Position represents x,y coordinates on a planet
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rover is the rover state: where it stands and where it faces.
// It is a value type; commands return a new Rover.
type Rover struct {
	Position Position  `json:"position"`
	Heading  Direction `json:"heading"`
}

// NewRover builds a rover from raw coordinates and a heading letter,
// checking the position against the planet bounds.
func NewRover(x, y int, heading string, planet *Planet) (Rover, error) {
	raw := fmt.Sprintf("%d %d %s", x, y, heading)
	pos := Position{X: x, Y: y}
	if planet != nil && !planet.Contains(pos) {
		return Rover{}, newMissionError(KindInvalidCoordinates, raw, pos)
	}
	d, err := ParseDirection(heading)
	if err != nil {
		return Rover{}, err
	}
	return Rover{Position: pos, Heading: d}, nil
}

// String renders the rover as "x y D"
func (r Rover) String() string {
	return fmt.Sprintf("%d %d %s", r.Position.X, r.Position.Y, r.Heading.Letter())
}

// RoverStart is the serialized start state of a rover in a planet config
type RoverStart struct {
	X       int    `json:"x" yaml:"x"`
	Y       int    `json:"y" yaml:"y"`
	Heading string `json:"heading" yaml:"heading"`
}

// Step records a single executed command within a mission
type Step struct {
	Idx     int       `json:"idx"`
	Command string    `json:"command"`
	From    Position  `json:"from"`
	To      Position  `json:"to"`
	Heading Direction `json:"heading"`
	Wrapped bool      `json:"wrapped,omitempty"`
	Blocked bool      `json:"blocked,omitempty"`
}

// MissionReport is the outcome of running one command string through a RoverEngine
type MissionReport struct {
	Commands   string    `json:"commands"`
	Start      Rover     `json:"start"`
	End        Rover     `json:"end"`
	Steps      []Step    `json:"steps"`
	Success    bool      `json:"success"`
	Collision  bool      `json:"collision,omitempty"`
	BlockedAt  *Position `json:"blocked_at,omitempty"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  int64     `json:"timestamp"`
	MissionNum int       `json:"mission_number"`
}
