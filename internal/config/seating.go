package config

import "time"

// SeatingConfig tunes the placement engine and the session store that
// holds arrangements between edits.
//
//   SEATING_LOOKAHEAD – queued candidates scanned to avoid a left-neighbor clash (default 10)
//   SEATING_RESTARTS  – full placement passes per generation, best kept (default 1)
//   SEATING_SEED      – fixed seed for every generation; 0 draws a fresh seed per run
//   SESSION_TTL       – how long an idle session survives in Redis (default 12h)
//   SESSION_PREFIX    – Redis key namespace for sessions (default "seating")
type SeatingConfig struct {
	LookAhead     int
	Restarts      int
	Seed          int64
	SessionTTL    time.Duration
	SessionPrefix string
}

// LoadSeatingConfig reads SeatingConfig from the environment, clamping
// values that would make the engine misbehave.
func LoadSeatingConfig() SeatingConfig {
	c := SeatingConfig{
		LookAhead:     envInt("SEATING_LOOKAHEAD", 10),
		Restarts:      envInt("SEATING_RESTARTS", 1),
		Seed:          envInt64("SEATING_SEED", 0),
		SessionTTL:    envDur("SESSION_TTL", 12*time.Hour),
		SessionPrefix: envStr("SESSION_PREFIX", "seating"),
	}
	if c.LookAhead < 0 { c.LookAhead = 0 }
	if c.Restarts < 1 { c.Restarts = 1 }
	if c.SessionTTL <= 0 { c.SessionTTL = 12 * time.Hour }
	return c
}
