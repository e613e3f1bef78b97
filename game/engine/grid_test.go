package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPlanet(t *testing.T, w, h int, obstacles ...Position) *Planet {
	t.Helper()
	p, err := NewPlanet(w, h, obstacles)
	require.NoError(t, err)
	return p
}

func TestNext_Wraparound(t *testing.T) {
	planet := mustPlanet(t, 5, 4)

	tests := []struct {
		name     string
		from     Position
		heading  Direction
		expected Position
	}{
		{"north inside", Position{0, 0}, North, Position{0, 1}},
		{"north wraps to zero", Position{2, 3}, North, Position{2, 0}},
		{"south wraps to top", Position{2, 0}, South, Position{2, 3}},
		{"east wraps to zero", Position{4, 1}, East, Position{0, 1}},
		{"west wraps to right edge", Position{0, 1}, West, Position{4, 1}},
		{"west inside", Position{3, 2}, West, Position{2, 2}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, planet.Next(test.from, test.heading))
		})
	}
}

func TestNext_SingleCellAxis(t *testing.T) {
	planet := mustPlanet(t, 1, 3)

	assert.Equal(t, Position{0, 1}, planet.Next(Position{0, 1}, East))
	assert.Equal(t, Position{0, 1}, planet.Next(Position{0, 1}, West))
	assert.Equal(t, Position{0, 2}, planet.Next(Position{0, 1}, North))

	tiny := mustPlanet(t, 1, 1)
	for _, d := range AllDirections() {
		assert.Equal(t, Position{0, 0}, tiny.Next(Position{0, 0}, d), d.String())
	}
}

func TestPrevNext_Idempotence(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 4}, {5, 4}, {7, 3}}
	for _, size := range sizes {
		planet := mustPlanet(t, size[0], size[1])
		for x := 0; x < planet.Width; x++ {
			for y := 0; y < planet.Height; y++ {
				p := Position{x, y}
				for _, d := range AllDirections() {
					next := planet.Next(p, d)
					require.True(t, planet.Contains(next), "next %v out of bounds", next)
					assert.Equal(t, p, planet.Prev(next, d), "planet %dx%d pos %v heading %s", size[0], size[1], p, d)
				}
			}
		}
	}
}

func TestNewPlanet_Validation(t *testing.T) {
	_, err := NewPlanet(0, 4, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewPlanet(5, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	wide, err := NewPlanet(1001, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, Position{0, 0}, wide.Next(Position{1000, 0}, East))

	_, err = NewPlanet(5, 4, []Position{{5, 0}})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = NewPlanet(5, 4, []Position{{-1, 0}})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	planet, err := NewPlanet(5, 4, []Position{{2, 0}, {2, 0}})
	require.NoError(t, err)
	assert.Equal(t, 1, planet.Obstacles.Len())
	assert.True(t, planet.IsBlocked(Position{2, 0}))
	assert.False(t, planet.IsBlocked(Position{0, 2}))
}

func TestObstacleSet_Positions(t *testing.T) {
	set := NewObstacleSet(Position{3, 2}, Position{0, 3}, Position{2, 0})
	assert.Equal(t, []Position{{2, 0}, {3, 2}, {0, 3}}, set.Positions())

	var empty ObstacleSet
	assert.False(t, empty.IsBlocked(Position{0, 0}))
	assert.Equal(t, 0, empty.Len())
}

func TestUtils(t *testing.T) {
	planet := mustPlanet(t, 5, 4, Position{2, 0}, Position{0, 3}, Position{3, 2})

	assert.Equal(t, 2, ToroidalDistance(planet, Position{0, 0}, Position{4, 3}))
	assert.Equal(t, 17, CountFreeCells(planet))
	assert.Len(t, ReachableCells(planet, Position{0, 0}), 17)
	assert.Empty(t, ReachableCells(planet, Position{2, 0}))

	rover := Rover{Position: Position{0, 0}, Heading: East}
	assert.Equal(t, []string{
		"#....",
		"...#.",
		".....",
		"E.#..",
	}, Render(planet, &rover))
}
