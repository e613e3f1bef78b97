package engine

import "sort"

// ObstacleSet is a set of blocked coordinates
type ObstacleSet struct {
	blocked map[Position]struct{}
}

// NewObstacleSet builds a set from a list of positions; repeated entries collapse.
func NewObstacleSet(positions ...Position) ObstacleSet {
	set := ObstacleSet{blocked: make(map[Position]struct{}, len(positions))}
	for _, p := range positions {
		set.blocked[p] = struct{}{}
	}
	return set
}

// IsBlocked reports whether pos holds an obstacle
func (s ObstacleSet) IsBlocked(pos Position) bool {
	_, ok := s.blocked[pos]
	return ok
}

// Len returns the number of distinct obstacles
func (s ObstacleSet) Len() int {
	return len(s.blocked)
}

// Positions returns the obstacles ordered by y, then x
func (s ObstacleSet) Positions() []Position {
	out := make([]Position, 0, len(s.blocked))
	for p := range s.blocked {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
