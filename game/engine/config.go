package engine

import (
	"fmt"
	"strings"
)

// PlanetConfig describes a planet and the rover landing site, as loaded from
// JSON, YAML or mission files.
type PlanetConfig struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Width       int        `json:"width" yaml:"width"`
	Height      int        `json:"height" yaml:"height"`
	Obstacles   []Position `json:"obstacles" yaml:"obstacles"`
	Rover       RoverStart `json:"rover" yaml:"rover"`
}

// ValidatePlanetConfig validates a planet configuration for correctness.
// Failures wrap the matching *MissionError so callers can classify them.
func ValidatePlanetConfig(config *PlanetConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if strings.TrimSpace(config.Name) == "" {
		return fmt.Errorf("config validation: name is required")
	}

	planet, err := NewPlanet(config.Width, config.Height, config.Obstacles)
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	start, err := NewRover(config.Rover.X, config.Rover.Y, config.Rover.Heading, planet)
	if err != nil {
		return fmt.Errorf("config validation: rover: %w", err)
	}
	if planet.IsBlocked(start.Position) {
		return fmt.Errorf("config validation: rover starts on an obstacle at (%d, %d)", start.Position.X, start.Position.Y)
	}

	return nil
}

// BuildMission turns a validated config into the shared planet and the start rover
func BuildMission(config *PlanetConfig) (*Planet, Rover, error) {
	if err := ValidatePlanetConfig(config); err != nil {
		return nil, Rover{}, err
	}
	planet, err := NewPlanet(config.Width, config.Height, config.Obstacles)
	if err != nil {
		return nil, Rover{}, err
	}
	start, err := NewRover(config.Rover.X, config.Rover.Y, config.Rover.Heading, planet)
	if err != nil {
		return nil, Rover{}, err
	}
	return planet, start, nil
}

// DefaultPlanetConfig returns the built-in 5x4 planet with three obstacles
func DefaultPlanetConfig() *PlanetConfig {
	return &PlanetConfig{
		Name:        DefaultPlanetName,
		Description: "Default 5x4 planet with three obstacles",
		Width:       DefaultPlanetWidth,
		Height:      DefaultPlanetHeight,
		Obstacles: []Position{
			{X: 2, Y: 0},
			{X: 0, Y: 3},
			{X: 3, Y: 2},
		},
		Rover: RoverStart{X: 0, Y: 0, Heading: "N"},
	}
}

// WithRover returns a copy of the config with a different rover start
func (c *PlanetConfig) WithRover(start RoverStart) *PlanetConfig {
	clone := *c
	clone.Obstacles = append([]Position(nil), c.Obstacles...)
	clone.Rover = start
	return &clone
}
