package service

import (
	"time"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
)

// SessionInfo provides information about a rover session
type SessionInfo struct {
	ID             string               `json:"id"`
	ConfigName     string               `json:"config_name"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	Rover          engine.Rover         `json:"rover"`
	StartRover     engine.Rover         `json:"start_rover"`
	MissionCount   int                  `json:"mission_count"`
	PlanetConfig   *engine.PlanetConfig `json:"planet_config"`
}

// RoverState is a snapshot of one rover on its planet
type RoverState struct {
	SessionID    string            `json:"session_id"`
	Rover        engine.Rover      `json:"rover"`
	StartRover   engine.Rover      `json:"start_rover"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	Obstacles    []engine.Position `json:"obstacles"`
	MissionCount int               `json:"mission_count"`
	Map          []string          `json:"map"`
}

// ExecuteResult contains the outcome of one mission.
// A collision is a normal outcome: Success is false, Collision is true and
// Rover is the last safe rover.
type ExecuteResult struct {
	Success       bool             `json:"success"`
	Commands      string           `json:"commands"`
	Rover         engine.Rover     `json:"rover"`
	StartRover    engine.Rover     `json:"start_rover"`
	Steps         []engine.Step    `json:"steps"`
	Collision     bool             `json:"collision,omitempty"`
	BlockedAt     *engine.Position `json:"blocked_at,omitempty"`
	ErrorKind     string           `json:"error_kind,omitempty"`
	Error         string           `json:"error,omitempty"`
	Message       string           `json:"message"`
	Output        string           `json:"output"`
	MissionNumber int              `json:"mission_number"`
	Events        []MissionEvent   `json:"events"`
}

// MissionEvent represents something that happened while a mission ran
type MissionEvent struct {
	Type      string          `json:"type"` // "reset", "mission", "wrap", "collision", "undo"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position"`
}

// HistoryOptions configures mission history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated mission history
type HistoryResponse struct {
	Missions      []engine.MissionReport `json:"missions"`
	TotalMissions int                    `json:"total_missions"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
	TotalPages    int                    `json:"total_pages"`
	HasNext       bool                   `json:"has_next"`
	HasPrevious   bool                   `json:"has_previous"`
}

// ConfigInfo provides information about a planet configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // identifier to use for session creation
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Obstacles   int    `json:"obstacles"`
	Format      string `json:"format"` // "json", "yaml" or "planet"
}

// SimulateRequest describes a stateless one-shot mission. Either Mission
// holds a complete mission document, or the planet is given inline (or by
// ConfigName) together with a rover and a command string.
type SimulateRequest struct {
	Mission    string             `json:"mission,omitempty"`
	ConfigName string             `json:"config_name,omitempty"`
	Width      int                `json:"width,omitempty"`
	Height     int                `json:"height,omitempty"`
	Obstacles  []engine.Position  `json:"obstacles,omitempty"`
	Rover      *engine.RoverStart `json:"rover,omitempty"`
	Commands   string             `json:"commands"`
}

// SimulateResult is the outcome of a stateless mission
type SimulateResult struct {
	Success   bool             `json:"success"`
	Rover     engine.Rover     `json:"rover"`
	Steps     []engine.Step    `json:"steps"`
	Collision bool             `json:"collision,omitempty"`
	BlockedAt *engine.Position `json:"blocked_at,omitempty"`
	ErrorKind string           `json:"error_kind,omitempty"`
	Error     string           `json:"error,omitempty"`
	Output    string           `json:"output"`
}

// RoutePlan is a command string that drives a session rover to a target
type RoutePlan struct {
	SessionID string          `json:"session_id"`
	From      engine.Rover    `json:"from"`
	Target    engine.Position `json:"target"`
	Commands  string          `json:"commands"`
	Length    int             `json:"length"`
	End       engine.Rover    `json:"end"`
}

// VerifyResult reports whether replaying a session's recorded missions from
// the landing site reproduces the rover's current state
type VerifyResult struct {
	SessionID   string                `json:"session_id"`
	Consistent  bool                  `json:"consistent"`
	Rover       engine.Rover          `json:"rover"`
	Replayed    engine.Rover          `json:"replayed"`
	Missions    int                   `json:"missions"`
	LastMission *engine.MissionReport `json:"last_mission,omitempty"`
	Error       string                `json:"error,omitempty"`
}
