// Package parser turns human-readable planet, rover and mission text into
// engine values. Every failure is an *engine.MissionError carrying the raw
// input that could not be used.
package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
)

var valueLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `-?\d+\b`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Word", Pattern: `[^\s,]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type dimensions struct {
	Width  int `parser:"@Int"`
	Height int `parser:"@Int"`
}

type coordinates struct {
	X int `parser:"@Int"`
	Y int `parser:"@Int"`
}

type obstacleList struct {
	Points []*coordinates `parser:"(@@ (Comma? @@)*)?"`
}

type roverLine struct {
	X       int    `parser:"@Int"`
	Y       int    `parser:"@Int"`
	Heading string `parser:"@(Word | Int)"`
}

var (
	dimensionsParser  = build[dimensions]()
	coordinatesParser = build[coordinates]()
	obstaclesParser   = build[obstacleList]()
	roverParser       = build[roverLine]()
)

func build[G any]() *participle.Parser[G] {
	return participle.MustBuild[G](
		participle.Lexer(valueLexer),
		participle.Elide("Whitespace"),
	)
}

// ParseDimensions parses "w h". Both values must be at least 1.
func ParseDimensions(raw string) (int, int, error) {
	d, err := dimensionsParser.ParseString("planet", strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, engine.NewMissionError(engine.KindInvalidDimensions, raw)
	}
	if d.Width < engine.MinPlanetSize || d.Height < engine.MinPlanetSize {
		return 0, 0, engine.NewMissionError(engine.KindInvalidDimensions, raw)
	}
	return d.Width, d.Height, nil
}

// ParseCoordinates parses "x y" and checks it against [0,w) x [0,h)
func ParseCoordinates(raw string, width, height int) (engine.Position, error) {
	c, err := coordinatesParser.ParseString("coordinates", strings.TrimSpace(raw))
	if err != nil {
		return engine.Position{}, engine.NewMissionError(engine.KindInvalidCoordinates, raw)
	}
	pos := engine.Position{X: c.X, Y: c.Y}
	if !inBounds(pos, width, height) {
		return engine.Position{}, engine.NewMissionError(engine.KindInvalidCoordinates, raw)
	}
	return pos, nil
}

// ParseObstacles parses a list of "x y" pairs separated by commas or spaces
func ParseObstacles(raw string, width, height int) ([]engine.Position, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []engine.Position{}, nil
	}
	list, err := obstaclesParser.ParseString("obstacles", trimmed)
	if err != nil {
		return nil, engine.NewMissionError(engine.KindInvalidCoordinates, raw)
	}
	out := make([]engine.Position, 0, len(list.Points))
	for _, c := range list.Points {
		pos := engine.Position{X: c.X, Y: c.Y}
		if !inBounds(pos, width, height) {
			return nil, engine.NewMissionError(engine.KindInvalidCoordinates, raw)
		}
		out = append(out, pos)
	}
	return out, nil
}

// ParseRover parses "x y D" where D is one of N, E, S, W
func ParseRover(raw string, planet *engine.Planet) (engine.Rover, error) {
	r, err := roverParser.ParseString("rover", strings.TrimSpace(raw))
	if err != nil {
		return engine.Rover{}, engine.NewMissionError(engine.KindInvalidCoordinates, raw)
	}
	pos := engine.Position{X: r.X, Y: r.Y}
	if planet != nil && !planet.Contains(pos) {
		return engine.Rover{}, engine.NewMissionError(engine.KindInvalidCoordinates, raw)
	}
	heading, err := engine.ParseDirection(r.Heading)
	if err != nil {
		return engine.Rover{}, engine.NewMissionError(engine.KindInvalidDirection, raw)
	}
	return engine.Rover{Position: pos, Heading: heading}, nil
}

func inBounds(pos engine.Position, width, height int) bool {
	return pos.X >= 0 && pos.X < width && pos.Y >= 0 && pos.Y < height
}
