// Package session provides in-memory session management for rover missions.
//
// Each session owns one RoverEngine built from a planet configuration. The
// planet itself is immutable and may be shared, but rover state never is: a
// mission in one session cannot move another session's rover.
//
// Session Identifiers:
//
// Generated IDs are the first 8 hex characters of a random UUID. Lookups
// are case-insensitive, so "A1B2C3D4" and "a1b2c3d4" name the same session.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
//	// drop sessions idle for more than an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
