// Package leaderboard persists finished runs to a local SQLite database.
package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sagewynn/whosthat/porygon"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	player_name TEXT NOT NULL,
	score INTEGER NOT NULL,
	streak INTEGER NOT NULL,
	total_questions INTEGER NOT NULL,
	submitted_at_unix INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(score DESC, submitted_at_unix ASC);
`

type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the score database at path.
func Open(path string) (*Store, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// single-user app, one connection keeps writes serialized
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append records one finished run. Implements porygon.Sink.
func (s *Store) Append(ctx context.Context, entry porygon.ScoreEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (player_name, score, streak, total_questions, submitted_at_unix)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.PlayerName, entry.Score, entry.Streak, entry.TotalQuestions, entry.Timestamp.UTC().Unix())
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}

	return nil
}

// Top returns the best runs, highest score first, earlier submissions breaking ties.
func (s *Store) Top(ctx context.Context, limit int) ([]porygon.ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_name, score, streak, total_questions, submitted_at_unix
		 FROM scores
		 ORDER BY score DESC, submitted_at_unix ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	entries := make([]porygon.ScoreEntry, 0, limit)
	for rows.Next() {
		var entry porygon.ScoreEntry
		var submittedAt int64

		if err := rows.Scan(&entry.PlayerName, &entry.Score, &entry.Streak, &entry.TotalQuestions, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}

		entry.Timestamp = time.Unix(submittedAt, 0).UTC()
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
