// Package engine provides the core mission logic for the Mars Rover simulator.
//
// The engine package implements:
//   - Toroidal grid geometry (movement wraps around every edge)
//   - Obstacle lookup
//   - The rover state machine (turns, forward and backward moves, collisions)
//   - The command sequencer that validates and folds a command string
//   - Planet configuration validation
//
// Core Types:
//
// Planet is an immutable grid with obstacles, shared read-only by every
// mission that runs on it. Rover is a (Position, Direction) value; every
// command returns a new Rover instead of mutating the old one. Failures are
// reported as *MissionError values that match the Err* sentinels with
// errors.Is.
//
// Usage:
//
//	planet, err := engine.NewPlanet(5, 4, []engine.Position{{X: 2, Y: 0}})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rover := engine.Rover{Position: engine.Position{X: 0, Y: 0}, Heading: engine.North}
//	final, err := engine.ExecuteCommands("RFF", planet, rover)
//	if errors.Is(err, engine.ErrHitObstacle) {
//		// err carries the last safe position
//	}
//
// Sessions:
//
// RoverEngine wraps a planet configuration with a current rover and a mission
// history so that a server session can run successive command strings, undo
// them, reset, and replay.
package engine
