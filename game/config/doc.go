// Package config loads planet definitions from a directory.
//
// Three file formats are understood:
//   - name.json: a PlanetConfig document
//   - name.yaml / name.yml: the same document in YAML
//   - name.planet: a mission document (Planet/Obstacles/Rover lines)
//
// JSON and YAML documents are checked against an embedded JSON Schema before
// they are decoded, then every format goes through
// engine.ValidatePlanetConfig. Files that fail either step are reported by
// LoadConfig and skipped by ListConfigs.
//
// A JSON planet:
//
//	{
//	  "name": "mars",
//	  "width": 5,
//	  "height": 4,
//	  "obstacles": [{"x": 2, "y": 0}, {"x": 0, "y": 3}, {"x": 3, "y": 2}],
//	  "rover": {"x": 0, "y": 0, "heading": "N"}
//	}
//
// The default planet is "mars" when present, otherwise the first valid
// configuration by ID, otherwise the built-in 5x4 planet.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	planet, err := manager.LoadConfig("dunes")
//	configs, err := manager.ListConfigs()
package config
