package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
	"github.com/soisy/Mars-Rover-Kata/game/parser"
	"github.com/soisy/Mars-Rover-Kata/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
)

// extensions in lookup order when a name has none
var extensions = []string{".json", ".yaml", ".yml", ".planet"}

// Manager handles planet configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.PlanetConfig
	configs       map[string]*engine.PlanetConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.PlanetConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a configuration by name. The name may carry an extension;
// without one the json, yaml, yml and planet files are tried in that order.
func (m *Manager) LoadConfig(name string) (*engine.PlanetConfig, error) {
	key := configID(name)

	m.mu.RLock()
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	config, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	m.configs[key] = config
	return config, nil
}

// resolve finds the file backing a config name
func (m *Manager) resolve(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) || name == "" {
		return "", ErrConfigNotFound
	}
	if isConfigFile(name) {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			return "", ErrConfigNotFound
		}
		return path, nil
	}
	for _, ext := range extensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// LoadFile reads, schema-checks and validates one planet file. The
// format follows the extension: .planet files use the mission text format,
// .yaml and .yml are YAML and anything else is JSON.
func LoadFile(path string) (*engine.PlanetConfig, error) {
	var config *engine.PlanetConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".planet":
		mission, err := parser.ParseMissionFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		config = mission.Config(configID(path))
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var canonical []byte
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
			canonical, err = decodeYAML(data)
		} else {
			canonical, err = decodeJSON(data)
		}
		if err != nil {
			return nil, err
		}
		config = &engine.PlanetConfig{}
		if err := json.Unmarshal(canonical, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if config.Name == "" {
		config.Name = configID(path)
	}
	if config.Obstacles == nil {
		config.Obstacles = []engine.Position{}
	}

	if err := engine.ValidatePlanetConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return config, nil
}

// ListConfigs returns information about all valid configurations, sorted by ID
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := map[string]bool{}

	for _, entry := range entries {
		if entry.IsDir() || !isConfigFile(entry.Name()) {
			continue
		}

		id := configID(entry.Name())
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip invalid configs
			continue
		}
		seen[id] = true

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Width:       config.Width,
			Height:      config.Height,
			Obstacles:   len(config.Obstacles),
			Format:      formatOf(entry.Name()),
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.PlanetConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached configuration and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.PlanetConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig picks mars if present, then the first valid
// configuration, then the built-in planet
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(engine.DefaultPlanetName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefault(engine.DefaultPlanetConfig())
			return nil
		}

		config, err = m.LoadConfig(configs[0].Filename)
		if err != nil {
			m.setDefault(engine.DefaultPlanetConfig())
			return nil
		}
	}

	m.setDefault(config)
	return nil
}

func (m *Manager) setDefault(config *engine.PlanetConfig) {
	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// SaveConfig validates a configuration and writes it as JSON
func (m *Manager) SaveConfig(name string, config *engine.PlanetConfig) error {
	if err := engine.ValidatePlanetConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id := configID(name)
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: bad config name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, id+".json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = config
	m.mu.Unlock()

	return nil
}

// configID strips the directory and a known extension from a file name
func configID(name string) string {
	base := filepath.Base(name)
	if isConfigFile(base) {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

func isConfigFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range extensions {
		if ext == known {
			return true
		}
	}
	return false
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".planet":
		return "planet"
	}
	return "json"
}
