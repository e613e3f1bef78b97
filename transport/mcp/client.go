package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/soisy/Mars-Rover-Kata/game/engine"
	"github.com/soisy/Mars-Rover-Kata/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Mars Rover",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Mars Rover - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Drive a rover across a rectangular planet whose edges wrap around. Commands
are F (forward), B (backward), L (turn left) and R (turn right). A rover that
would drive into an obstacle stops on its last safe cell and reports O:x:y.

AVAILABLE TOOLS:
- create_session: Land a new rover, optionally on a named planet
- list_sessions / get_session: Inspect sessions
- rover_state: Current rover and map
- execute_commands: Run a command string such as "FFRFF" - requires intent explanation
- undo: Revert the last mission
- reset_rover: Put the rover back on its landing site
- mission_history: Past missions
- plan_route: Shortest command string to a target cell
- simulate: Run a mission without a session
- list_planets: Available planets
- rover_instructions: Full rules`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new rover session with optional planet and landing site",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the planet to use (optional)",
				},
				"x": map[string]interface{}{
					"type":        "number",
					"description": "Landing x coordinate (optional, needs y and heading)",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Landing y coordinate (optional)",
				},
				"heading": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"N", "E", "S", "W"},
					"description": "Landing heading (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active rover sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Rover operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_state",
		Description: "Get the current rover position, heading and a map of the planet",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRoverState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "execute_commands",
		Description: "Run a command string made of F, B, L and R. The whole string is rejected if any letter is unknown.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"commands": map[string]interface{}{
					"type":        "string",
					"description": "Commands such as FFRFF",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Explain where you expect the rover to end up and why",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Return to the landing site before running (optional)",
				},
			},
			Required: []string{"session_id", "commands", "intent"},
		},
	}, c.handleExecute)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Revert the rover to where it was before the last mission",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_rover",
		Description: "Put the rover back on its landing site",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "mission_history",
		Description: "View past missions with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "number",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Missions per page (default 20, max 100)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest or newest first (default desc)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMissionHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plan_route",
		Description: "Find the shortest command string that drives the rover to a target cell. The rover does not move unless execute is true.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x": map[string]interface{}{
					"type":        "number",
					"description": "Target x coordinate",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Target y coordinate",
				},
				"execute": map[string]interface{}{
					"type":        "boolean",
					"description": "Run the route after planning it (optional)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handlePlanRoute)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulate",
		Description: "Run a mission without a session, either from a mission document or a named planet",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mission": map[string]interface{}{
					"type":        "string",
					"description": "Mission document with Planet, Obstacles, Rover and Commands lines",
				},
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Planet to simulate on when no mission document is given",
				},
				"commands": map[string]interface{}{
					"type":        "string",
					"description": "Commands to run, overrides the mission document",
				},
			},
		},
	}, c.handleSimulate)

	// Planets
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_planets",
		Description: "List available planet configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPlanets)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_instructions",
		Description: "Get the complete rules for driving the rover",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleRoverInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			if kind := errResp["kind"]; kind != "" {
				return fmt.Errorf("%s [%s]", msg, kind)
			}
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body := map[string]interface{}{}
	if configName := request.GetString("config_name", ""); configName != "" {
		body["config_name"] = configName
	}
	if heading := request.GetString("heading", ""); heading != "" {
		x, xok := args["x"].(float64)
		y, yok := args["y"].(float64)
		if !xok || !yok {
			return mcp.NewToolResultError("x and y are required with heading"), nil
		}
		body["rover"] = engine.RoverStart{X: int(x), Y: int(y), Heading: heading}
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Planet: %s, Rover: %s, Missions: %d, Created: %s)\n",
			s.ID, s.ConfigName, formatRover(s.Rover), s.MissionCount, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleRoverState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var state service.RoverState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/rover"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoverState(&state)), nil
}

func (c *Client) handleExecute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	commands := request.GetString("commands", "")
	reset := request.GetBool("reset", false)

	// intent is for the caller's own reasoning
	_ = request.GetString("intent", "")

	body := map[string]interface{}{
		"commands": commands,
		"reset":    reset,
	}

	var result service.ExecuteResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/commands"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatExecuteResult(&result)), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var state service.RoverState
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/undo"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Last mission undone\n\n" + formatRoverState(&state)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var response struct {
		Message string              `json:"message"`
		State   *service.RoverState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := response.Message
	if response.State != nil {
		result += "\n\n" + formatRoverState(response.State)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMissionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := request.GetString("order", ""); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handlePlanRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	target := engine.Position{
		X: request.GetInt("x", 0),
		Y: request.GetInt("y", 0),
	}

	var plan service.RoutePlan
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/plan"), target, &plan); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatRoutePlan(&plan)
	if !request.GetBool("execute", false) || plan.Commands == "" {
		return mcp.NewToolResultText(result), nil
	}

	var executed service.ExecuteResult
	body := map[string]interface{}{"commands": plan.Commands}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/commands"), body, &executed); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s\nExecution failed: %v", result, err)), nil
	}

	return mcp.NewToolResultText(result + "\n" + formatExecuteResult(&executed)), nil
}

func (c *Client) handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := service.SimulateRequest{
		Mission:    request.GetString("mission", ""),
		ConfigName: request.GetString("config_name", ""),
		Commands:   request.GetString("commands", ""),
	}

	var result service.SimulateResult
	if err := c.apiCall(ctx, "POST", "/api/simulate", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Output: %s\nSteps: %d\n", result.Output, len(result.Steps))
	if result.Collision && result.BlockedAt != nil {
		text += fmt.Sprintf("Obstacle at (%d,%d)\n", result.BlockedAt.X, result.BlockedAt.Y)
	}
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleListPlanets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/planets", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Planets:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n", config.ConfigID, config.Format)
		if config.Description != "" {
			result += fmt.Sprintf("  %s\n", config.Description)
		}
		result += fmt.Sprintf("  Grid: %dx%d, Obstacles: %d\n\n", config.Width, config.Height, config.Obstacles)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRoverInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(roverInstructions), nil
}

const roverInstructions = `Mars Rover - Complete Instructions

THE PLANET:
A grid of width x height cells. x runs west to east from 0 to width-1,
y runs south to north from 0 to height-1. The edges wrap: driving north
from the top row lands on row 0, driving west from column 0 lands on the
last column.

COMMANDS:
• F - move one cell in the heading direction
• B - move one cell against the heading direction
• L - turn 90 degrees left, the rover stays on its cell
• R - turn 90 degrees right, the rover stays on its cell

HEADINGS:
N is y+1, E is x+1, S is y-1, W is x-1.

OBSTACLES:
A rover never enters an obstacle cell. The mission stops on the last safe
cell and the result reads O:x:y with that cell. Later commands are not run.

RESULTS:
• "x y H" - the final position and heading, e.g. "4 3 N"
• "O:x:y" - stopped by an obstacle

MAP LEGEND:
• N E S W - the rover and its heading
• # - obstacle
• . - free cell
Row 0 is printed last so north is up.

TIPS:
• Use rover_state before a mission to read the map.
• Use plan_route to find the shortest path to a cell.
• An unknown letter rejects the whole command string and the rover does not move.
• undo reverts one mission, reset_rover returns to the landing site.`

// Formatting helpers

func formatRover(r engine.Rover) string {
	return fmt.Sprintf("%d %d %s", r.Position.X, r.Position.Y, r.Heading.Letter())
}

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nPlanet: %s\nRover: %s\nLanding site: %s\nMissions: %d\n",
		session.ID, session.ConfigName, formatRover(session.Rover), formatRover(session.StartRover), session.MissionCount)
	if p := session.PlanetConfig; p != nil {
		result += fmt.Sprintf("Grid: %dx%d, Obstacles: %d\n", p.Width, p.Height, len(p.Obstacles))
	}
	return result
}

func formatRoverState(state *service.RoverState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rover: %s\n", formatRover(state.Rover))
	fmt.Fprintf(&b, "Grid: %dx%d, Obstacles: %d, Missions: %d\n", state.Width, state.Height, len(state.Obstacles), state.MissionCount)
	if len(state.Map) > 0 {
		b.WriteString("\nMap (north up):\n")
		for _, row := range state.Map {
			b.WriteString(row)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func formatExecuteResult(result *service.ExecuteResult) string {
	var b strings.Builder
	if result.Collision {
		b.WriteString("✗ Mission stopped by an obstacle\n")
	} else {
		b.WriteString("✓ Mission complete\n")
	}
	fmt.Fprintf(&b, "Output: %s\n", result.Output)
	fmt.Fprintf(&b, "Commands: %s (%d steps)\n", result.Commands, len(result.Steps))
	fmt.Fprintf(&b, "Start: %s\n", formatRover(result.StartRover))
	fmt.Fprintf(&b, "End: %s\n", formatRover(result.Rover))
	if result.BlockedAt != nil {
		fmt.Fprintf(&b, "Obstacle at: (%d,%d)\n", result.BlockedAt.X, result.BlockedAt.Y)
	}
	for _, ev := range result.Events {
		if ev.Type == "wrap" || ev.Type == "reset" {
			fmt.Fprintf(&b, "• %s\n", ev.Message)
		}
	}
	return b.String()
}

func formatRoutePlan(plan *service.RoutePlan) string {
	if plan.Commands == "" {
		return fmt.Sprintf("Rover is already at (%d,%d)\n", plan.Target.X, plan.Target.Y)
	}
	return fmt.Sprintf("Route to (%d,%d): %s (%d commands)\nExpected end: %s\n",
		plan.Target.X, plan.Target.Y, plan.Commands, plan.Length, formatRover(plan.End))
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Mission History (Page %d/%d, Total: %d)\n\n",
		history.Page, history.TotalPages, history.TotalMissions)

	for _, m := range history.Missions {
		status := "ok"
		if m.Collision {
			status = "collision"
		}
		result += fmt.Sprintf("#%d %s: %s -> %s (%s)\n",
			m.MissionNum, m.Commands, formatRover(m.Start), formatRover(m.End), status)
	}

	if history.HasNext {
		result += "\nMore missions on the next page"
	}
	return result
}
