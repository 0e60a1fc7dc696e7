// Package sessionfs mirrors the active quiz session to a JSON file so a
// restart can pick up a game mid-run. The mirror is best-effort and never
// authoritative; anything malformed on disk is thrown away.
package sessionfs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/sagewynn/whosthat/porygon"
)

const sessionFileName = "session.json"

type Store struct {
	FilePath string
}

func New(filePath string) Store {
	return Store{FilePath: filePath}
}

// DefaultPath places the mirror next to the rest of the app's files.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, sessionFileName)
}

// Save implements porygon.Store.
func (s Store) Save(session *porygon.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.FilePath), 0750); err != nil {
		return err
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return os.WriteFile(s.FilePath, sessionJson, 0644)
}

// Load returns the mirrored session, or nil when there is nothing usable on
// disk. A missing or corrupt file is not an error, the caller just starts fresh.
func (s Store) Load() *porygon.Session {
	sessionBytes, err := os.ReadFile(s.FilePath)
	if err != nil {
		return nil
	}

	session := porygon.Session{}
	if err := json.Unmarshal(sessionBytes, &session); err != nil {
		log.Warn().Err(err).Str("path", s.FilePath).Msg("discarding malformed session mirror")
		return nil
	}

	// sanity check against hand-edited files
	if len(session.Players) < 1 || len(session.Players) > 2 || session.MaxID < 1 {
		return nil
	}

	return &session
}

// Clear removes the mirror, used when the player abandons a game.
func (s Store) Clear() error {
	err := os.Remove(s.FilePath)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
