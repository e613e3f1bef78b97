package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soisy/Mars-Rover-Kata/game/config"
	"github.com/soisy/Mars-Rover-Kata/game/engine"
	"github.com/soisy/Mars-Rover-Kata/game/service"
	"github.com/soisy/Mars-Rover-Kata/game/session"
	"github.com/soisy/Mars-Rover-Kata/transport/websocket"
)

const testPlanets = `{
  "name": "mars",
  "width": 5,
  "height": 4,
  "obstacles": [{"x": 2, "y": 0}, {"x": 0, "y": 3}, {"x": 3, "y": 2}],
  "rover": {"x": 0, "y": 0, "heading": "N"}
}`

// newTestServer wires the real service stack over a temp planet directory
func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mars.json"), []byte(testPlanets), 0644); err != nil {
		t.Fatalf("Failed to write planet file: %v", err)
	}

	configs, err := config.NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	svc := service.NewMissionService(session.NewManager(), configs)
	return NewServer(svc, websocket.NewHub())
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	rr := doRequest(t, s, "POST", "/api/sessions", map[string]string{"config_id": "mars"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var info service.SessionInfo
	decode(t, rr, &info)
	return info.ID
}

func TestCreateSession(t *testing.T) {
	s := newTestServer(t)

	t.Run("default planet", func(t *testing.T) {
		rr := doRequest(t, s, "POST", "/api/sessions", nil)
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
		}
		var info service.SessionInfo
		decode(t, rr, &info)
		if info.ID == "" {
			t.Error("Expected a session ID")
		}
		if info.Rover.Heading != engine.North || info.Rover.Position != (engine.Position{}) {
			t.Errorf("Unexpected landing rover: %+v", info.Rover)
		}
	})

	t.Run("custom landing site", func(t *testing.T) {
		rr := doRequest(t, s, "POST", "/api/sessions", map[string]interface{}{
			"config_id": "mars",
			"rover":     map[string]interface{}{"x": 4, "y": 3, "heading": "W"},
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
		}
		var info service.SessionInfo
		decode(t, rr, &info)
		if info.Rover.Position != (engine.Position{X: 4, Y: 3}) || info.Rover.Heading != engine.West {
			t.Errorf("Unexpected landing rover: %+v", info.Rover)
		}
	})

	t.Run("unknown planet", func(t *testing.T) {
		rr := doRequest(t, s, "POST", "/api/sessions", map[string]string{"config_id": "venus"})
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rr.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/sessions", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()
		s.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rr.Code)
		}
	})
}

func TestExecuteCommands(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	tests := []struct {
		name       string
		commands   string
		reset      bool
		wantStatus int
		wantOutput string
		wantKind   string
	}{
		{"wrap around the south edge", "LFRB", false, http.StatusOK, "4 3 N", ""},
		{"collision reports last safe cell", "RFF", true, http.StatusOK, "O:1:0", ""},
		{"invalid command is rejected", "FFX", false, http.StatusUnprocessableEntity, "", string(engine.KindInvalidCommand)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, s, "POST", "/api/sessions/"+id+"/commands", map[string]interface{}{
				"commands": tt.commands,
				"reset":    tt.reset,
			})
			if rr.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}

			if tt.wantKind != "" {
				var body map[string]string
				decode(t, rr, &body)
				if body["kind"] != tt.wantKind {
					t.Errorf("Expected kind %q, got %q", tt.wantKind, body["kind"])
				}
				return
			}

			var result service.ExecuteResult
			decode(t, rr, &result)
			if result.Output != tt.wantOutput {
				t.Errorf("Expected output %q, got %q", tt.wantOutput, result.Output)
			}
		})
	}

	// the rejected mission must not have moved the rover
	rr := doRequest(t, s, "GET", "/api/sessions/"+id+"/rover", nil)
	var state service.RoverState
	decode(t, rr, &state)
	if state.Rover.Position != (engine.Position{X: 1, Y: 0}) || state.Rover.Heading != engine.East {
		t.Errorf("Expected rover at 1 0 E, got %+v", state.Rover)
	}
}

func TestExecuteUnknownSession(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, "POST", "/api/sessions/nope/commands", map[string]string{"commands": "F"})
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestUndoAndReset(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	rr := doRequest(t, s, "POST", "/api/sessions/"+id+"/undo", nil)
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status 409 with nothing to undo, got %d", rr.Code)
	}

	doRequest(t, s, "POST", "/api/sessions/"+id+"/commands", map[string]string{"commands": "FF"})
	doRequest(t, s, "POST", "/api/sessions/"+id+"/commands", map[string]string{"commands": "R"})

	rr = doRequest(t, s, "POST", "/api/sessions/"+id+"/undo", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var state service.RoverState
	decode(t, rr, &state)
	if state.Rover.Position != (engine.Position{X: 0, Y: 2}) || state.Rover.Heading != engine.North {
		t.Errorf("Expected 0 2 N after undo, got %+v", state.Rover)
	}

	rr = doRequest(t, s, "POST", "/api/sessions/"+id+"/reset", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var resp struct {
		State service.RoverState `json:"state"`
	}
	decode(t, rr, &resp)
	if resp.State.Rover != resp.State.StartRover {
		t.Errorf("Expected rover back at landing site, got %+v", resp.State.Rover)
	}
}

func TestGetHistory(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	for _, cmds := range []string{"F", "R", "F"} {
		doRequest(t, s, "POST", "/api/sessions/"+id+"/commands", map[string]string{"commands": cmds})
	}

	rr := doRequest(t, s, "GET", "/api/sessions/"+id+"/history?limit=2&order=asc", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var history service.HistoryResponse
	decode(t, rr, &history)

	if history.TotalMissions != 3 {
		t.Errorf("Expected 3 missions, got %d", history.TotalMissions)
	}
	if len(history.Missions) != 2 || !history.HasNext {
		t.Fatalf("Expected a first page of 2 with more to come, got %+v", history)
	}
	if history.Missions[0].Commands != "F" || history.Missions[1].Commands != "R" {
		t.Errorf("Unexpected mission order: %q, %q", history.Missions[0].Commands, history.Missions[1].Commands)
	}
}

func TestPlanRoute(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	rr := doRequest(t, s, "POST", "/api/sessions/"+id+"/plan", map[string]int{"x": 0, "y": 2})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var plan service.RoutePlan
	decode(t, rr, &plan)
	if plan.Commands != "FF" {
		t.Errorf("Expected route FF, got %q", plan.Commands)
	}

	rr = doRequest(t, s, "POST", "/api/sessions/"+id+"/plan", map[string]int{"x": 2, "y": 0})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422 for a blocked target, got %d", rr.Code)
	}
	var body map[string]string
	decode(t, rr, &body)
	if body["kind"] != "target_blocked" {
		t.Errorf("Expected kind target_blocked, got %q", body["kind"])
	}
}

func TestSimulate(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, "POST", "/api/simulate", map[string]string{
		"mission": "Planet: 5 4\nObstacles: 2 0, 0 3, 3 2\nRover: 0 0 N\nCommands: RFF\n",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var result service.SimulateResult
	decode(t, rr, &result)
	if result.Output != "O:1:0" || !result.Collision {
		t.Errorf("Expected collision output O:1:0, got %+v", result)
	}

	rr = doRequest(t, s, "POST", "/api/simulate", map[string]interface{}{
		"width":    5,
		"height":   4,
		"commands": "F",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for inline planet without rover, got %d", rr.Code)
	}

	rr = doRequest(t, s, "POST", "/api/simulate", map[string]string{
		"commands": strings.Repeat("L", service.MaxCommandLength+1),
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 over the command limit, got %d", rr.Code)
	}
}

func TestVerifySession(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	for _, cmds := range []string{"FF", "RFF"} {
		doRequest(t, s, "POST", "/api/sessions/"+id+"/commands", map[string]string{"commands": cmds})
	}

	rr := doRequest(t, s, "GET", "/api/sessions/"+id+"/verify", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var result service.VerifyResult
	decode(t, rr, &result)
	if !result.Consistent || result.Missions != 2 {
		t.Errorf("Expected a consistent replay of 2 missions, got %+v", result)
	}
	if result.Rover.String() != "2 2 E" || result.Replayed != result.Rover {
		t.Errorf("Unexpected rover after replay: %+v", result)
	}

	rr = doRequest(t, s, "GET", "/api/sessions/nope/verify", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestListAndDeleteSessions(t *testing.T) {
	s := newTestServer(t)
	first := createSession(t, s)
	createSession(t, s)
	createSession(t, s)

	rr := doRequest(t, s, "GET", "/api/sessions?limit=2&sort=created&order=asc", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var list struct {
		Count    int                    `json:"count"`
		Total    int                    `json:"total"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	decode(t, rr, &list)
	if list.Count != 2 || list.Total != 3 {
		t.Errorf("Expected 2 of 3 sessions, got %d of %d", list.Count, list.Total)
	}

	rr = doRequest(t, s, "DELETE", "/api/sessions/"+first, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	rr = doRequest(t, s, "GET", "/api/sessions/"+first, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected deleted session to be gone, got %d", rr.Code)
	}
}

func TestPlanets(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, "POST", "/api/planets", map[string]interface{}{
		"name":   "tiny",
		"width":  2,
		"height": 2,
		"rover":  map[string]interface{}{"x": 1, "y": 1, "heading": "S"},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, s, "GET", "/api/planets/tiny", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var planet engine.PlanetConfig
	decode(t, rr, &planet)
	if planet.Width != 2 || planet.Rover.Heading != "S" {
		t.Errorf("Unexpected planet: %+v", planet)
	}

	rr = doRequest(t, s, "POST", "/api/planets", map[string]interface{}{
		"name":   "broken",
		"width":  0,
		"height": 2,
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid planet, got %d", rr.Code)
	}

	rr = doRequest(t, s, "GET", "/api/planets", nil)
	var infos []service.ConfigInfo
	decode(t, rr, &infos)
	if len(infos) != 2 {
		t.Errorf("Expected 2 planets, got %d", len(infos))
	}

	rr = doRequest(t, s, "GET", "/api/planets/venus", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, "GET", "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, "GET", "/ws", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without session, got %d", rr.Code)
	}

	rr = doRequest(t, s, "GET", "/ws?session=missing", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown session, got %d", rr.Code)
	}
}

// failingService returns a fixed error from every session lookup
type failingService struct {
	service.MissionService
	err error
}

func (f *failingService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	return nil, f.err
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrSessionNotFound, http.StatusNotFound},
		{service.ErrConfigNotFound, http.StatusNotFound},
		{service.ErrNothingToUndo, http.StatusConflict},
		{service.ErrInvalidRequest, http.StatusBadRequest},
		{engine.HitObstacle(engine.Position{X: 1}), http.StatusUnprocessableEntity},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := NewServer(&failingService{err: tt.err}, nil)
			rr := doRequest(t, s, "GET", "/api/sessions/abc", nil)
			if rr.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rr.Code)
			}
		})
	}
}
