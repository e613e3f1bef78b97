package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlanetConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *PlanetConfig)
		wantErr error
		errText string
	}{
		{"default is valid", func(c *PlanetConfig) {}, nil, ""},
		{"missing name", func(c *PlanetConfig) { c.Name = " " }, nil, "name is required"},
		{"zero width", func(c *PlanetConfig) { c.Width = 0 }, ErrInvalidDimensions, ""},
		{"obstacle outside", func(c *PlanetConfig) { c.Obstacles = append(c.Obstacles, Position{9, 9}) }, ErrInvalidCoordinates, ""},
		{"rover outside", func(c *PlanetConfig) { c.Rover.Y = 4 }, ErrInvalidCoordinates, ""},
		{"bad heading", func(c *PlanetConfig) { c.Rover.Heading = "up" }, ErrInvalidDirection, ""},
		{"rover on obstacle", func(c *PlanetConfig) { c.Rover = RoverStart{X: 2, Y: 0, Heading: "N"} }, nil, "starts on an obstacle"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultPlanetConfig()
			test.mutate(config)
			err := ValidatePlanetConfig(config)
			switch {
			case test.wantErr != nil:
				assert.ErrorIs(t, err, test.wantErr)
			case test.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}

	assert.Error(t, ValidatePlanetConfig(nil))
}

func TestBuildMission(t *testing.T) {
	planet, start, err := BuildMission(DefaultPlanetConfig())
	require.NoError(t, err)
	assert.Equal(t, 5, planet.Width)
	assert.Equal(t, 4, planet.Height)
	assert.Equal(t, 3, planet.Obstacles.Len())
	assert.Equal(t, Rover{Position: Position{0, 0}, Heading: North}, start)
}

func TestWithRover_DoesNotAlias(t *testing.T) {
	base := DefaultPlanetConfig()
	moved := base.WithRover(RoverStart{X: 4, Y: 3, Heading: "S"})
	moved.Obstacles[0] = Position{1, 1}

	assert.Equal(t, RoverStart{X: 0, Y: 0, Heading: "N"}, base.Rover)
	assert.Equal(t, Position{2, 0}, base.Obstacles[0])
}
