package service

import (
	"fmt"
	"time"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
)

// Per-request work limits. The engine itself accepts any planet size and
// any command length.
const (
	MaxPlanetSize    = 1000
	MaxCommandLength = 10000
	PlanTimeout      = 5 * time.Second
)

func checkCommandLength(commands string) error {
	if len(commands) > MaxCommandLength {
		return fmt.Errorf("%w: %d commands exceeds the limit of %d", ErrInvalidRequest, len(commands), MaxCommandLength)
	}
	return nil
}

func checkPlanetSize(planet *engine.Planet) error {
	if planet.Width > MaxPlanetSize || planet.Height > MaxPlanetSize {
		return fmt.Errorf("%w: planet %dx%d exceeds the limit of %d", ErrInvalidRequest, planet.Width, planet.Height, MaxPlanetSize)
	}
	return nil
}
