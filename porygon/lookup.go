package porygon

import (
	"context"
	"time"
)

// Record is one resolved quiz subject, usually straight from PokeAPI.
type Record struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Sprite string `json:"sprite"`
}

// Lookup resolves a pokedex number into a display record.
type Lookup interface {
	Resolve(ctx context.Context, id int) (Record, error)
}

// ScoreEntry is the finalized stats line for a player whose run just ended.
// Streak carries the best streak of the run, not the (always zero) final one.
type ScoreEntry struct {
	PlayerName     string
	Score          int
	Streak         int
	TotalQuestions int
	Timestamp      time.Time
}

// Sink is a write-only destination for finished runs (the leaderboard).
type Sink interface {
	Append(ctx context.Context, entry ScoreEntry) error
}

// Store mirrors the full session somewhere durable after every mutation.
// Writes are best-effort, a failed save never interrupts play.
type Store interface {
	Save(session *Session) error
}
