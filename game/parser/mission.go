package parser

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
)

// Mission is a fully parsed mission document
type Mission struct {
	Planet    *engine.Planet
	Obstacles []engine.Position
	Rover     engine.Rover
	Commands  string
}

// Run executes the mission commands on the parsed planet
func (m *Mission) Run() (engine.Rover, error) {
	return engine.ExecuteCommands(m.Commands, m.Planet, m.Rover)
}

// Config converts the mission into a named planet configuration
func (m *Mission) Config(name string) *engine.PlanetConfig {
	return &engine.PlanetConfig{
		Name:      name,
		Width:     m.Planet.Width,
		Height:    m.Planet.Height,
		Obstacles: append([]engine.Position(nil), m.Obstacles...),
		Rover: engine.RoverStart{
			X:       m.Rover.Position.X,
			Y:       m.Rover.Position.Y,
			Heading: m.Rover.Heading.Letter(),
		},
	}
}

// ParseMission reads a mission document:
//
//	Planet: 5 4
//	Obstacles: 2 0, 0 3, 3 2
//	Rover: 0 0 N
//	Commands: RFF
//
// Keys are case-insensitive, '#' starts a comment, Obstacles may repeat and
// Commands may be omitted. The command string is kept verbatim; it is
// validated when the mission runs.
func ParseMission(text string) (*Mission, error) {
	var planetRaw, roverRaw, commands string
	var obstacleRaws []string
	havePlanet, haveRover := false, false

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected 'Key: value', got %q", lineNo, line)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "planet":
			planetRaw, havePlanet = strings.TrimSpace(value), true
		case "obstacles", "obstacle":
			obstacleRaws = append(obstacleRaws, value)
		case "rover":
			roverRaw, haveRover = strings.TrimSpace(value), true
		case "commands", "command":
			commands = strings.TrimSpace(value)
		default:
			return nil, fmt.Errorf("line %d: unknown section %q", lineNo, strings.TrimSpace(key))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !havePlanet {
		return nil, engine.NewMissionError(engine.KindInvalidDimensions, "")
	}
	w, h, err := ParseDimensions(planetRaw)
	if err != nil {
		return nil, err
	}

	obstacles := []engine.Position{}
	for _, raw := range obstacleRaws {
		ps, err := ParseObstacles(raw, w, h)
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, ps...)
	}

	planet, err := engine.NewPlanet(w, h, obstacles)
	if err != nil {
		return nil, err
	}

	if !haveRover {
		return nil, engine.NewMissionError(engine.KindInvalidCoordinates, "")
	}
	rover, err := ParseRover(roverRaw, planet)
	if err != nil {
		return nil, err
	}

	return &Mission{
		Planet:    planet,
		Obstacles: obstacles,
		Rover:     rover,
		Commands:  commands,
	}, nil
}

// ParseMissionFile reads and parses a mission document from disk
func ParseMissionFile(path string) (*Mission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, engine.NewFileError(path, err)
	}
	return ParseMission(string(data))
}
