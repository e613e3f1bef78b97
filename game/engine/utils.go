package engine

// ToroidalDistance is the Manhattan distance between two positions when
// every edge wraps around
func ToroidalDistance(planet *Planet, from, to Position) int {
	return axisDistance(from.X, to.X, planet.Width) + axisDistance(from.Y, to.Y, planet.Height)
}

func axisDistance(a, b, size int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if size-d < d {
		return size - d
	}
	return d
}

// CountFreeCells counts the cells without an obstacle
func CountFreeCells(planet *Planet) int {
	return planet.Width*planet.Height - planet.Obstacles.Len()
}

// ReachableCells returns every free cell reachable from start by moving
// forward and backward along any heading
func ReachableCells(planet *Planet, start Position) map[Position]bool {
	seen := map[Position]bool{}
	if planet.IsBlocked(start) || !planet.Contains(start) {
		return seen
	}
	queue := []Position{start}
	seen[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range AllDirections() {
			next := planet.Next(cur, d)
			if seen[next] || planet.IsBlocked(next) {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return seen
}

// Render draws the planet with north at the top. Obstacles are '#', free
// cells '.', and the rover is its heading letter.
func Render(planet *Planet, rover *Rover) []string {
	rows := make([]string, 0, planet.Height)
	for y := planet.Height - 1; y >= 0; y-- {
		row := make([]byte, planet.Width)
		for x := 0; x < planet.Width; x++ {
			pos := Position{X: x, Y: y}
			switch {
			case rover != nil && rover.Position == pos:
				row[x] = rover.Heading.Letter()[0]
			case planet.IsBlocked(pos):
				row[x] = '#'
			default:
				row[x] = '.'
			}
		}
		rows = append(rows, string(row))
	}
	return rows
}
