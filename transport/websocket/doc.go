// Package websocket pushes live rover updates to browsers and other watchers.
//
// Architecture:
//
// A central Hub tracks the connections watching each session. Every client
// connection gets a read goroutine, which only keeps the pong deadline
// alive, and a write goroutine that drains the client's send buffer.
//
// Message Protocol:
//
// Outgoing messages are JSON:
//
//	{"session_id": "a1b2c3d4", "event": "rover_update", "rover": {"position": {"x": 1, "y": 0}, "heading": "E"}}
//	{"session_id": "a1b2c3d4", "event": "mission", "data": { ...mission result... }}
//
// Session IDs are matched case-insensitively. Clients that cannot keep up
// with their send buffer are disconnected.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(sessionID, rover)
package websocket
