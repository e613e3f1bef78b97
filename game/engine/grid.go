package engine

import "fmt"

// Planet is a toroidal grid of Width x Height cells with obstacles.
// It is never modified after NewPlanet returns.
type Planet struct {
	Width     int
	Height    int
	Obstacles ObstacleSet
}

// NewPlanet validates the dimensions and obstacle coordinates and builds a planet
func NewPlanet(width, height int, obstacles []Position) (*Planet, error) {
	if width < MinPlanetSize || height < MinPlanetSize {
		return nil, newMissionError(KindInvalidDimensions, fmt.Sprintf("%d %d", width, height), Position{})
	}
	p := &Planet{Width: width, Height: height}
	for _, o := range obstacles {
		if !p.Contains(o) {
			return nil, newMissionError(KindInvalidCoordinates, fmt.Sprintf("%d %d", o.X, o.Y), o)
		}
	}
	p.Obstacles = NewObstacleSet(obstacles...)
	return p, nil
}

// Contains reports whether pos lies within [0,Width) x [0,Height)
func (p *Planet) Contains(pos Position) bool {
	return pos.X >= 0 && pos.X < p.Width && pos.Y >= 0 && pos.Y < p.Height
}

// IsBlocked reports whether pos holds an obstacle
func (p *Planet) IsBlocked(pos Position) bool {
	return p.Obstacles.IsBlocked(pos)
}

// Next returns the position one step from pos in heading, wrapping at every edge
func (p *Planet) Next(pos Position, heading Direction) Position {
	dx, dy := heading.Delta()
	return Position{
		X: wrap(pos.X, dx, p.Width),
		Y: wrap(pos.Y, dy, p.Height),
	}
}

// Prev returns the position one step behind pos, i.e. Next in the opposite heading
func (p *Planet) Prev(pos Position, heading Direction) Position {
	return p.Next(pos, heading.Opposite())
}

// wrap moves v by delta (-1, 0 or +1) inside [0,size).
func wrap(v, delta, size int) int {
	switch {
	case delta < 0:
		if v == 0 {
			return size - 1
		}
		return v - 1
	case delta > 0:
		if v >= size-1 {
			return 0
		}
		return v + 1
	}
	return v
}

// wrapped reports whether the step from -> to crossed a planet edge
func (p *Planet) wrapped(from, to Position, heading Direction) bool {
	dx, dy := heading.Delta()
	return (dx != 0 && to.X-from.X != dx) || (dy != 0 && to.Y-from.Y != dy)
}
