package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
)

// FormatRover renders a rover as "x y D"
func FormatRover(r engine.Rover) string {
	return r.String()
}

// FormatError renders a mission failure as a one-line diagnostic
func FormatError(err error) string {
	var me *engine.MissionError
	if !errors.As(err, &me) {
		return err.Error()
	}
	switch me.Kind {
	case engine.KindHitObstacle:
		return fmt.Sprintf("O:%d:%d", me.Position.X, me.Position.Y)
	case engine.KindInvalidCoordinates:
		return fmt.Sprintf("Invalid coordinates: %s", me.Input)
	case engine.KindInvalidDimensions:
		return fmt.Sprintf("Invalid planet dimensions: %s", me.Input)
	case engine.KindInvalidDirection:
		return fmt.Sprintf("Invalid direction: %s", me.Input)
	case engine.KindInvalidCommand:
		return fmt.Sprintf("Invalid command: %s", me.Input)
	case engine.KindFileError:
		return fmt.Sprintf("Cannot read %s", me.Input)
	}
	return me.Error()
}

// FormatResult renders the outcome of a mission the way mission files
// expect it: the final rover, or the diagnostic for the failure.
func FormatResult(rover engine.Rover, err error) string {
	if err == nil {
		return FormatRover(rover)
	}
	return FormatError(err)
}

// FormatMission renders a mission back into document form
func FormatMission(m *Mission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Planet: %d %d\n", m.Planet.Width, m.Planet.Height)
	if len(m.Obstacles) > 0 {
		parts := make([]string, 0, len(m.Obstacles))
		for _, o := range m.Obstacles {
			parts = append(parts, fmt.Sprintf("%d %d", o.X, o.Y))
		}
		fmt.Fprintf(&b, "Obstacles: %s\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, "Rover: %s\n", FormatRover(m.Rover))
	if m.Commands != "" {
		fmt.Fprintf(&b, "Commands: %s\n", m.Commands)
	}
	return b.String()
}
