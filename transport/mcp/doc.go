// Package mcp exposes the rover REST API as Model Context Protocol tools.
//
// The Client is a thin proxy: every tool call becomes one or two HTTP
// requests against a running API server, and the JSON response is rendered
// as text for the agent.
//
// Tools:
//   - create_session, list_sessions, get_session
//   - rover_state: position, heading and a map with north up
//   - execute_commands: run an F/B/L/R string, with an intent note
//   - undo, reset_rover
//   - mission_history: paged past missions
//   - plan_route: shortest command string to a cell, optionally executed
//   - simulate: run a mission document without a session
//   - list_planets, rover_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
