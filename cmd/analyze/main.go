// Command analyze prints quick, human-readable statistics about the planet
// files in a directory (configs by default, or the first argument): size,
// obstacle density, free cells, and which free cells the rover can reach from
// its landing site once the edges wrap around.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/soisy/Mars-Rover-Kata/game/config"
	"github.com/soisy/Mars-Rover-Kata/game/engine"
)

// PlanetStats summarizes one planet
type PlanetStats struct {
	Name      string
	Width     int
	Height    int
	Obstacles int
	Density   float64 // obstacles / cells
	Free      int
	Reachable int
	Isolated  []engine.Position
	Landing   engine.Rover
	// FarthestDistance is the largest toroidal distance from the landing
	// site to any reachable cell
	FarthestDistance int
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*"))
	if err != nil {
		fmt.Printf("Error listing planets: %v\n", err)
		os.Exit(1)
	}

	for _, file := range files {
		switch filepath.Ext(file) {
		case ".json", ".yaml", ".yml", ".planet":
		default:
			continue
		}
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeConfig(os.Stdout, file)
	}
}

func analyzeConfig(w io.Writer, path string) {
	planetConfig, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error loading planet: %v\n", err)
		return
	}

	stats, err := analyzePlanet(planetConfig)
	if err != nil {
		fmt.Fprintf(w, "Error building planet: %v\n", err)
		return
	}
	printStats(w, stats)
}

// analyzePlanet computes the statistics for a planet configuration
func analyzePlanet(planetConfig *engine.PlanetConfig) (PlanetStats, error) {
	planet, rover, err := engine.BuildMission(planetConfig)
	if err != nil {
		return PlanetStats{}, err
	}

	cells := planet.Width * planet.Height
	stats := PlanetStats{
		Name:      planetConfig.Name,
		Width:     planet.Width,
		Height:    planet.Height,
		Obstacles: planet.Obstacles.Len(),
		Density:   float64(planet.Obstacles.Len()) / float64(cells),
		Free:      engine.CountFreeCells(planet),
		Landing:   rover,
	}

	reachable := engine.ReachableCells(planet, rover.Position)
	stats.Reachable = len(reachable)

	// row-major scan keeps the isolated list in a stable order
	for y := 0; y < planet.Height; y++ {
		for x := 0; x < planet.Width; x++ {
			pos := engine.Position{X: x, Y: y}
			if planet.IsBlocked(pos) {
				continue
			}
			if !reachable[pos] {
				stats.Isolated = append(stats.Isolated, pos)
				continue
			}
			if d := engine.ToroidalDistance(planet, rover.Position, pos); d > stats.FarthestDistance {
				stats.FarthestDistance = d
			}
		}
	}

	return stats, nil
}

func printStats(w io.Writer, stats PlanetStats) {
	fmt.Fprintf(w, "Name: %s\n", stats.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", stats.Width, stats.Height)
	fmt.Fprintf(w, "Obstacles: %d (density %.1f%%)\n", stats.Obstacles, stats.Density*100)
	fmt.Fprintf(w, "Landing Site: (%d, %d) facing %s\n",
		stats.Landing.Position.X, stats.Landing.Position.Y, stats.Landing.Heading.Letter())
	fmt.Fprintf(w, "Free Cells: %d\n", stats.Free)
	fmt.Fprintf(w, "Reachable Cells: %d (farthest %d moves)\n", stats.Reachable, stats.FarthestDistance)

	if len(stats.Isolated) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d free cells are unreachable from the landing site!\n", len(stats.Isolated))
		for i, p := range stats.Isolated {
			if i < 5 { // Show first 5 isolated cells
				fmt.Fprintf(w, "   Isolated: (%d, %d)\n", p.X, p.Y)
			}
		}
		if len(stats.Isolated) > 5 {
			fmt.Fprintf(w, "   ... and %d more\n", len(stats.Isolated)-5)
		}
	} else {
		fmt.Fprintf(w, "✅ Every free cell is reachable from the landing site\n")
	}
}
