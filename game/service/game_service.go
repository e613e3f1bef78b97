package service

import (
	"context"
	"errors"
	"time"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidRequest  = errors.New("invalid request")
)

// MissionService defines all rover-related operations
type MissionService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, start *engine.RoverStart) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Missions
	Execute(ctx context.Context, sessionID, commands string, reset bool) (*ExecuteResult, error)
	Undo(ctx context.Context, sessionID string) (*RoverState, error)
	Reset(ctx context.Context, sessionID string) (*RoverState, error)
	Simulate(ctx context.Context, req SimulateRequest) (*SimulateResult, error)
	PlanRoute(ctx context.Context, sessionID string, target engine.Position) (*RoutePlan, error)
	VerifySession(ctx context.Context, sessionID string) (*VerifyResult, error)

	// Rover State
	GetRoverState(ctx context.Context, sessionID string) (*RoverState, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.PlanetConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.PlanetConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.PlanetConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.PlanetConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles planet configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.PlanetConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.PlanetConfig
	SaveConfig(name string, config *engine.PlanetConfig) error
}

// Session represents an active rover session. Each session owns exactly one
// rover; only the planet configuration may be shared.
type Session struct {
	ID             string
	Engine         *engine.RoverEngine
	Config         *engine.PlanetConfig
	ConfigID       string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
