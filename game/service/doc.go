// Package service provides the business logic layer for rover missions.
//
// The service package implements:
//   - Multi-session rover management
//   - Mission execution with collision reporting
//   - Undo, reset and paginated mission history
//   - Stateless simulation and route planning
//
// Core Interfaces:
//
// MissionService is the main service interface used by every transport.
// SessionManager stores sessions and ConfigManager loads planet definitions;
// both are satisfied by the session and config packages.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the engine. Each session owns its own RoverEngine. Calls are
// serialized by the service so a rover never runs two missions at once.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	svc := service.NewMissionService(sessionMgr, configMgr)
//
//	info, err := svc.CreateSession(ctx, "mars", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := svc.Execute(ctx, info.ID, "LFRB", false)
//
// Errors:
//
// Invalid command strings are returned as *engine.MissionError and leave the
// rover untouched. A collision is not an error: the result reports it and
// the rover stays on the last safe cell.
package service
