// Command validate checks every planet definition in a directory
// (../configs by default, or the first argument). For each file it checks:
//   - the file parses as JSON, YAML or the .planet mission format
//   - JSON and YAML documents match the planet schema
//   - dimensions, obstacle coordinates and the landing site are in bounds
//   - the rover does not land on an obstacle
//   - how much of the planet the rover can reach from its landing site
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/soisy/Mars-Rover-Kata/game/config"
	"github.com/soisy/Mars-Rover-Kata/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

var planetExtensions = map[string]bool{
	".json":   true,
	".yaml":   true,
	".yml":    true,
	".planet": true,
}

// validateConfig loads and validates a single planet file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	planetConfig, err := config.LoadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	planet, rover, err := engine.BuildMission(planetConfig)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", planetConfig.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", planet.Width, planet.Height))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Obstacles: %d", planet.Obstacles.Len()))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Landing site: %d %d %s",
		rover.Position.X, rover.Position.Y, rover.Heading.Letter()))
	result.Errors = append(result.Errors, validateReachability(planet, rover.Position)...)

	return result
}

// validateReachability reports how many free cells the rover can reach from
// its landing site. Isolated cells are allowed but reported.
func validateReachability(planet *engine.Planet, start engine.Position) []string {
	free := engine.CountFreeCells(planet)
	reachable := len(engine.ReachableCells(planet, start))

	var messages []string
	if reachable == free {
		messages = append(messages, fmt.Sprintf("✓ Reachability: all %d free cells reachable", free))
		return messages
	}

	messages = append(messages, fmt.Sprintf("✓ Reachability: %d/%d free cells reachable", reachable, free))
	if reachable == 1 {
		messages = append(messages, "⚠ Rover is boxed in and can only turn")
	} else {
		messages = append(messages, fmt.Sprintf("⚠ %d free cells are isolated from the landing site", free-reachable))
	}
	return messages
}

// findPlanetFiles lists the planet definitions in dir, sorted by name
func findPlanetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if planetExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// main validates each planet file, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := findPlanetFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding planet files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All planets are valid!")
	} else {
		fmt.Println("❌ Some planets have errors")
		os.Exit(1)
	}
}
