// Package planner finds command strings that drive a rover to a target cell.
//
// The search runs breadth-first over (position, heading) states and expands
// each state with engine.Execute, so a planned route never crosses an
// obstacle and always wraps the same way a real mission would. Before that
// search starts, a cheaper flood fill over positions proves the target is
// reachable at all.
package planner

import (
	"context"
	"errors"
	"strings"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
)

var (
	ErrTargetBlocked = errors.New("target cell is an obstacle")
	ErrOutOfBounds   = errors.New("target is outside the planet")
	ErrUnreachable   = errors.New("target is unreachable from the rover")
)

// ctx is polled once per checkEvery expanded nodes
const checkEvery = 4096

// expansion order; fixed so equal-length routes are chosen deterministically
var commandOrder = []engine.Command{
	engine.MoveForward,
	engine.MoveBackward,
	engine.TurnLeft,
	engine.TurnRight,
}

// Plan returns the shortest command string that moves from onto target.
// The final heading is whatever the route ends with. It returns ctx.Err()
// if ctx is done before the search finishes.
func Plan(ctx context.Context, planet *engine.Planet, from engine.Rover, target engine.Position) (string, error) {
	if !planet.Contains(target) {
		return "", ErrOutOfBounds
	}
	if planet.IsBlocked(target) {
		return "", ErrTargetBlocked
	}
	if from.Position == target {
		return "", nil
	}

	ok, err := connected(ctx, planet, from.Position, target)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnreachable
	}
	return search(ctx, planet, from, target)
}

// connected floods outward from a and b in lockstep. It stops as soon as the
// floods meet or one of them runs out of cells, so its cost is bounded by
// the smaller of the two regions.
func connected(ctx context.Context, planet *engine.Planet, a, b engine.Position) (bool, error) {
	owner := make([]uint8, planet.Width*planet.Height) // 0 unseen, 1 a's side, 2 b's side
	cell := func(p engine.Position) int { return p.Y*planet.Width + p.X }

	queues := [2][]engine.Position{{a}, {b}}
	var heads [2]int
	owner[cell(a)], owner[cell(b)] = 1, 2

	for n := 0; ; n++ {
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}
		for side := 0; side < 2; side++ {
			if heads[side] == len(queues[side]) {
				return false, nil
			}
			cur := queues[side][heads[side]]
			heads[side]++

			mine := uint8(side + 1)
			for _, d := range engine.AllDirections() {
				next := planet.Next(cur, d)
				if planet.IsBlocked(next) {
					continue
				}
				switch owner[cell(next)] {
				case 0:
					owner[cell(next)] = mine
					queues[side] = append(queues[side], next)
				case mine:
				default:
					return true, nil
				}
			}
		}
	}
}

// search is a breadth-first search over rover states. A state is indexed
// as (y*Width+x)*4 + heading.
func search(ctx context.Context, planet *engine.Planet, from engine.Rover, target engine.Position) (string, error) {
	numStates := planet.Width * planet.Height * 4
	parent := make([]int, numStates)
	for i := range parent {
		parent[i] = -2 // unseen
	}
	via := make([]engine.Command, numStates)

	index := func(r engine.Rover) int {
		return (r.Position.Y*planet.Width+r.Position.X)*4 + int(r.Heading)
	}
	rover := func(i int) engine.Rover {
		cell := i / 4
		return engine.Rover{
			Position: engine.Position{X: cell % planet.Width, Y: cell / planet.Width},
			Heading:  engine.Direction(i % 4),
		}
	}

	start := index(from)
	parent[start] = -1
	queue := []int{start}

	for head := 0; head < len(queue); head++ {
		if head%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
		current := rover(queue[head])
		for _, cmd := range commandOrder {
			next, err := engine.Execute(cmd, planet, current)
			if err != nil {
				continue
			}
			i := index(next)
			if parent[i] != -2 {
				continue
			}
			parent[i] = queue[head]
			via[i] = cmd
			queue = append(queue, i)
			if next.Position == target {
				return path(parent, via, i), nil
			}
		}
	}
	return "", ErrUnreachable
}

func path(parent []int, via []engine.Command, i int) string {
	var cmds []string
	for ; parent[i] >= 0; i = parent[i] {
		cmds = append(cmds, via[i].Letter())
	}
	var b strings.Builder
	for j := len(cmds) - 1; j >= 0; j-- {
		b.WriteString(cmds[j])
	}
	return b.String()
}
