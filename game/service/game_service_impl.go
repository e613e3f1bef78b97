package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
	"github.com/soisy/Mars-Rover-Kata/game/parser"
	"github.com/soisy/Mars-Rover-Kata/game/planner"
)

var ErrNothingToUndo = errors.New("no mission to undo")

// missionServiceImpl implements the MissionService interface
type missionServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewMissionService creates a new mission service instance
func NewMissionService(sessions SessionManager, configs ConfigManager) MissionService {
	return &missionServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given planet name, used for consistent API responses
func (s *missionServiceImpl) getConfigID(planetName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == planetName {
				return cfg.ConfigID
			}
		}
	}
	if planetName == "" {
		return engine.DefaultPlanetName
	}
	return planetName
}

func (s *missionServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	configID := sess.ConfigID
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Rover:          sess.Engine.GetRover(),
		StartRover:     sess.Engine.GetStart(),
		MissionCount:   sess.Engine.GetMissionCount(),
		PlanetConfig:   sess.Config,
	}
}

func roverState(sess *Session) *RoverState {
	planet := sess.Engine.GetPlanet()
	rover := sess.Engine.GetRover()
	return &RoverState{
		SessionID:    sess.ID,
		Rover:        rover,
		StartRover:   sess.Engine.GetStart(),
		Width:        planet.Width,
		Height:       planet.Height,
		Obstacles:    planet.Obstacles.Positions(),
		MissionCount: sess.Engine.GetMissionCount(),
		Map:          engine.Render(planet, &rover),
	}
}

// loadSession fetches a session and marks it accessed. Callers hold s.mu.
func (s *missionServiceImpl) loadSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// CreateSession creates a new rover session. A non-nil start overrides the
// landing site of the planet configuration.
func (s *missionServiceImpl) CreateSession(ctx context.Context, configName string, start *engine.RoverStart) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.PlanetConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/planets to list available planets", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	if start != nil {
		config = config.WithRover(*start)
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sess.ConfigID = configName
	if sess.ConfigID == "" {
		sess.ConfigID = s.getConfigID(config.Name)
	}

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *missionServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions, oldest first
func (s *missionServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *missionServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	return nil
}

// Execute runs one mission on the session rover.
//
// An invalid command string is returned as the error and leaves the rover
// (and a requested reset) untouched. A collision is reported in the result.
func (s *missionServiceImpl) Execute(ctx context.Context, sessionID, commands string, reset bool) (*ExecuteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := engine.ParseCommands(commands); err != nil {
		return nil, err
	}
	if err := checkCommandLength(commands); err != nil {
		return nil, err
	}

	events := []MissionEvent{}
	if reset {
		rover := sess.Engine.Reset()
		events = append(events, MissionEvent{
			Type:      "reset",
			Message:   "Rover returned to its landing site",
			Timestamp: time.Now(),
			Position:  rover.Position,
		})
	}

	report, err := sess.Engine.Run(commands)
	if err != nil {
		return nil, err
	}

	result := &ExecuteResult{
		Success:       report.Success,
		Commands:      report.Commands,
		Rover:         report.End,
		StartRover:    report.Start,
		Steps:         report.Steps,
		Collision:     report.Collision,
		BlockedAt:     report.BlockedAt,
		ErrorKind:     report.ErrorKind,
		Error:         report.Error,
		MissionNumber: report.MissionNum,
	}
	if result.Steps == nil {
		result.Steps = []engine.Step{}
	}

	result.Events = append(events, missionEvents(report)...)

	if report.Collision {
		result.Output = parser.FormatError(engine.HitObstacle(report.End.Position))
		result.Message = fmt.Sprintf("Obstacle ahead; rover stopped at %s", report.End)
	} else {
		result.Output = parser.FormatRover(report.End)
		result.Message = fmt.Sprintf("Rover at %s", report.End)
	}

	return result, nil
}

// missionEvents derives the events of a mission from its report
func missionEvents(report *engine.MissionReport) []MissionEvent {
	now := time.Now()
	events := []MissionEvent{}
	for _, step := range report.Steps {
		if step.Wrapped && !step.Blocked {
			events = append(events, MissionEvent{
				Type:      "wrap",
				Message:   fmt.Sprintf("Wrapped around the planet from %s to %s", step.From, step.To),
				Timestamp: now,
				Position:  step.To,
			})
		}
	}
	if report.Collision && report.BlockedAt != nil {
		events = append(events, MissionEvent{
			Type:      "collision",
			Message:   fmt.Sprintf("Obstacle at %s", *report.BlockedAt),
			Timestamp: now,
			Position:  *report.BlockedAt,
		})
	}
	events = append(events, MissionEvent{
		Type:      "mission",
		Message:   fmt.Sprintf("Mission %d: %q ended at %s", report.MissionNum, report.Commands, report.End),
		Timestamp: now,
		Position:  report.End.Position,
	})
	return events
}

// Undo reverts the last mission of a session
func (s *missionServiceImpl) Undo(ctx context.Context, sessionID string) (*RoverState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := sess.Engine.Undo(); !ok {
		return nil, ErrNothingToUndo
	}
	return roverState(sess), nil
}

// Reset puts the session rover back on its landing site
func (s *missionServiceImpl) Reset(ctx context.Context, sessionID string) (*RoverState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Engine.Reset()
	return roverState(sess), nil
}

// GetRoverState returns the current rover and a rendered map
func (s *missionServiceImpl) GetRoverState(ctx context.Context, sessionID string) (*RoverState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	return roverState(sess), nil
}

// GetHistory returns paginated mission history
func (s *missionServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	missions := []engine.MissionReport{}
	if start < total {
		if opts.Order == "desc" {
			for i := total - 1 - start; i >= total-end; i-- {
				missions = append(missions, history[i])
			}
		} else {
			missions = append(missions, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Missions:      missions,
		TotalMissions: total,
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalPages:    totalPages,
		HasNext:       opts.Page < totalPages,
		HasPrevious:   opts.Page > 1,
	}, nil
}

// Simulate runs a mission without a session. Nothing is stored.
func (s *missionServiceImpl) Simulate(ctx context.Context, req SimulateRequest) (*SimulateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	planet, rover, commands, err := s.simulationInput(req)
	if err != nil {
		return nil, err
	}
	if err := checkPlanetSize(planet); err != nil {
		return nil, err
	}
	if err := checkCommandLength(commands); err != nil {
		return nil, err
	}

	end, steps, err := engine.Trace(commands, planet, rover)
	if err != nil && !errors.Is(err, engine.ErrHitObstacle) {
		return nil, err
	}
	if steps == nil {
		steps = []engine.Step{}
	}

	result := &SimulateResult{
		Success: err == nil,
		Rover:   end,
		Steps:   steps,
		Output:  parser.FormatResult(end, err),
	}
	if err != nil {
		result.Collision = true
		result.ErrorKind = string(engine.KindOf(err))
		result.Error = err.Error()
		if n := len(steps); n > 0 {
			blocked := steps[n-1].To
			result.BlockedAt = &blocked
		}
	}
	return result, nil
}

func (s *missionServiceImpl) simulationInput(req SimulateRequest) (*engine.Planet, engine.Rover, string, error) {
	if req.Mission != "" {
		m, err := parser.ParseMission(req.Mission)
		if err != nil {
			return nil, engine.Rover{}, "", err
		}
		commands := m.Commands
		if req.Commands != "" {
			commands = req.Commands
		}
		return m.Planet, m.Rover, commands, nil
	}

	var config *engine.PlanetConfig
	switch {
	case req.ConfigName != "":
		loaded, err := s.configs.LoadConfig(req.ConfigName)
		if err != nil {
			return nil, engine.Rover{}, "", fmt.Errorf("config %s: %w", req.ConfigName, err)
		}
		config = loaded
	case req.Width != 0 || req.Height != 0:
		config = &engine.PlanetConfig{
			Name:      "simulation",
			Width:     req.Width,
			Height:    req.Height,
			Obstacles: req.Obstacles,
		}
		if req.Rover == nil {
			return nil, engine.Rover{}, "", fmt.Errorf("%w: rover is required with an inline planet", ErrInvalidRequest)
		}
	default:
		config = s.configs.GetDefault()
	}
	if req.Rover != nil {
		config = config.WithRover(*req.Rover)
	}

	planet, rover, err := engine.BuildMission(config)
	if err != nil {
		return nil, engine.Rover{}, "", err
	}
	return planet, rover, req.Commands, nil
}

// PlanRoute finds the shortest command string that drives the session rover
// to target. The rover is not moved. The search runs outside the service
// lock on a snapshot of the planet and rover, bounded by PlanTimeout.
func (s *missionServiceImpl) PlanRoute(ctx context.Context, sessionID string, target engine.Position) (*RoutePlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	sess, err := s.loadSession(sessionID)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	planet := sess.Engine.GetPlanet()
	from := sess.Engine.GetRover()
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, PlanTimeout)
	defer cancel()

	commands, err := planner.Plan(ctx, planet, from, target)
	if err != nil {
		return nil, fmt.Errorf("plan route to %s: %w", target, err)
	}
	end, err := engine.ExecuteCommands(commands, planet, from)
	if err != nil {
		return nil, fmt.Errorf("plan route to %s: %w", target, err)
	}

	return &RoutePlan{
		SessionID: sess.ID,
		From:      from,
		Target:    target,
		Commands:  commands,
		Length:    len(commands),
		End:       end,
	}, nil
}

// VerifySession replays the current history segment and compares the
// result with the live rover. An inconsistent session is reported in the
// result, not as an error.
func (s *missionServiceImpl) VerifySession(ctx context.Context, sessionID string) (*VerifyResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		SessionID:   sess.ID,
		Rover:       sess.Engine.GetRover(),
		Missions:    len(sess.Engine.GetHistory()),
		LastMission: sess.Engine.GetLastMission(),
	}
	replayed, err := sess.Engine.Replay()
	result.Replayed = replayed
	result.Consistent = err == nil
	if err != nil {
		result.Error = err.Error()
	}
	return result, nil
}

// ListConfigs returns available planet configurations
func (s *missionServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific planet configuration
func (s *missionServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.PlanetConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a planet configuration to disk
func (s *missionServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.PlanetConfig) error {
	return s.configs.SaveConfig(configName, config)
}
