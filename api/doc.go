// Package api provides the HTTP REST API for driving rovers.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session, optionally on a named planet and landing site
//   - GET /api/sessions - List sessions (sort=created|accessed, order=asc|desc, limit=N)
//   - GET /api/sessions/{id} - Get one session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Rover:
//   - GET /api/sessions/{id}/rover - Current rover and a rendered map
//   - POST /api/sessions/{id}/commands - Run a command string
//   - POST /api/sessions/{id}/undo - Revert the last mission
//   - POST /api/sessions/{id}/reset - Put the rover back on its landing site
//   - GET /api/sessions/{id}/history - Paged mission history
//   - POST /api/sessions/{id}/plan - Shortest command string to a target cell
//   - GET /api/sessions/{id}/verify - Replay recorded missions and compare with the live rover
//   - POST /api/simulate - Run a mission without a session
//
// Planets:
//   - GET /api/planets - List planet files
//   - POST /api/planets - Save a planet
//   - GET /api/planets/{name} - Get one planet
//
// GET /api/health reports liveness and GET /ws?session={id} upgrades to a
// WebSocket carrying rover updates for one session.
//
// A mission body looks like:
//
//	{"commands": "FFRFF", "reset": false}
//
// Hitting an obstacle is a normal outcome: the response is 200 with
// "collision": true, the rover stopped on its last safe cell and an output
// such as "O:1:0". A command string with an unknown letter is rejected as a
// whole with 422 and the rover does not move.
//
// Errors are returned as JSON:
//
//	{"error": "invalid command: \"FFX\"", "kind": "invalid_command"}
//
// Status codes: 404 for unknown sessions or planets, 400 for malformed
// bodies and invalid planets, 409 when there is nothing to undo, 422 for
// rejected missions and unroutable targets.
package api
