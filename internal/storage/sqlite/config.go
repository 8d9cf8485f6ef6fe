package sqlite

import "time"

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.:
	//   "file:app.db?cache=shared"
	//   ":memory:"
	DSN string

	// PingTimeout bounds the initial connectivity check. Zero means 5s.
	PingTimeout time.Duration

	// DisableForeignKeys leaves PRAGMA foreign_keys at the driver default
	// instead of turning enforcement on.
	DisableForeignKeys bool
}

func (c Config) pingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return 5 * time.Second
	}
	return c.PingTimeout
}
