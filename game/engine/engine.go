package engine

import (
	"errors"
	"fmt"
	"time"
)

// Engine provides the main interface for session-level rover operations
type Engine interface {
	// Rover state
	GetRover() Rover
	GetStart() Rover
	GetPlanet() *Planet
	GetConfig() *PlanetConfig

	// Missions
	Run(commands string) (*MissionReport, error)
	Undo() (Rover, bool)
	Reset() Rover
	Replay() (Rover, error)

	// History
	GetHistory() []MissionReport
	GetLastMission() *MissionReport
	GetMissionCount() int
}

// RoverEngine implements the Engine interface.
// It is not safe for concurrent use; the session layer serializes access.
type RoverEngine struct {
	config  *PlanetConfig
	planet  *Planet
	start   Rover
	rover   Rover
	history []MissionReport
	total   int
}

// NewEngine creates a new rover engine with the provided configuration
func NewEngine(config *PlanetConfig) (*RoverEngine, error) {
	planet, start, err := BuildMission(config)
	if err != nil {
		return nil, err
	}
	return &RoverEngine{
		config:  config,
		planet:  planet,
		start:   start,
		rover:   start,
		history: []MissionReport{},
	}, nil
}

// NewEngineWithDefaults creates a rover engine on the built-in planet
func NewEngineWithDefaults() *RoverEngine {
	e, err := NewEngine(DefaultPlanetConfig())
	if err != nil {
		panic(fmt.Sprintf("default planet is invalid: %v", err))
	}
	return e
}

// GetRover returns the current rover
func (e *RoverEngine) GetRover() Rover {
	return e.rover
}

// GetStart returns the landing rover
func (e *RoverEngine) GetStart() Rover {
	return e.start
}

// GetPlanet returns the shared, read-only planet
func (e *RoverEngine) GetPlanet() *Planet {
	return e.planet
}

// GetConfig returns the planet configuration
func (e *RoverEngine) GetConfig() *PlanetConfig {
	return e.config
}

// Run executes one mission from the current rover.
//
// An invalid command string changes nothing and is returned as the error.
// A collision is not an error of Run: the last safe rover is committed and
// the report carries Collision and BlockedAt.
func (e *RoverEngine) Run(commands string) (*MissionReport, error) {
	start := e.rover
	end, steps, err := Trace(commands, e.planet, start)

	report := MissionReport{
		Commands:  commands,
		Start:     start,
		End:       end,
		Steps:     steps,
		Success:   err == nil,
		Timestamp: time.Now().Unix(),
	}

	if err != nil {
		report.ErrorKind = string(KindOf(err))
		report.Error = err.Error()
		if !errors.Is(err, ErrHitObstacle) {
			return &report, err
		}
		report.Collision = true
		if n := len(steps); n > 0 {
			blocked := steps[n-1].To
			report.BlockedAt = &blocked
		}
	}

	e.total++
	report.MissionNum = e.total
	e.rover = end
	e.history = append(e.history, report)
	return &report, nil
}

// Undo reverts the last mission of the current segment
func (e *RoverEngine) Undo() (Rover, bool) {
	n := len(e.history)
	if n == 0 {
		return e.rover, false
	}
	last := e.history[n-1]
	e.history = e.history[:n-1]
	e.rover = last.Start
	return e.rover, true
}

// Reset puts the rover back on its landing site. The cumulative mission
// counter is preserved; the current segment history is cleared.
func (e *RoverEngine) Reset() Rover {
	e.rover = e.start
	e.history = []MissionReport{}
	return e.rover
}

// Replay re-runs every recorded mission from the landing rover and checks
// that it ends where the engine currently is.
func (e *RoverEngine) Replay() (Rover, error) {
	rover := e.start
	for _, m := range e.history {
		end, err := ExecuteCommands(m.Commands, e.planet, rover)
		if err != nil && !errors.Is(err, ErrHitObstacle) {
			return rover, fmt.Errorf("replay mission %d: %w", m.MissionNum, err)
		}
		if end != m.End {
			return end, fmt.Errorf("replay mission %d: ended at %s, recorded %s", m.MissionNum, end, m.End)
		}
		rover = end
	}
	if rover != e.rover {
		return rover, fmt.Errorf("replay ended at %s, rover is at %s", rover, e.rover)
	}
	return rover, nil
}

// GetHistory returns the missions of the current segment
func (e *RoverEngine) GetHistory() []MissionReport {
	return e.history
}

// GetLastMission returns the last mission, or nil if there is none
func (e *RoverEngine) GetLastMission() *MissionReport {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// GetMissionCount returns the number of missions run since creation, including reset segments
func (e *RoverEngine) GetMissionCount() int {
	return e.total
}
