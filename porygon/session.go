package porygon

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Mode int

const (
	ModeSolo Mode = iota
	ModeDuel
)

func (m Mode) PlayerCount() int {
	if m == ModeDuel {
		return 2
	}
	return 1
}

func (m Mode) String() string {
	if m == ModeDuel {
		return "duel"
	}
	return "solo"
}

const (
	// DefaultMaxID covers the original 151 Kanto pokemon.
	DefaultMaxID = 151

	MaxNameLength = 24
)

var (
	ErrEmptyName   = errors.New("player name is empty")
	ErrNameTooLong = errors.New("player name is too long")
	ErrPlayerCount = errors.New("wrong number of player names for this mode")

	ErrSessionOver   = errors.New("session is already over")
	ErrStaleQuestion = errors.New("question was built for an older run")
)

// PlayerStats tracks one player's run. A single wrong answer finishes a player.
type PlayerStats struct {
	Name           string `json:"name"`
	Score          int    `json:"score"`
	Streak         int    `json:"streak"`
	BestStreak     int    `json:"bestStreak"`
	TotalQuestions int    `json:"totalQuestions"`
	Finished       bool   `json:"finished"`
}

// Session is the complete state of one play-through. All mutations go through
// NewSession, Commit, SubmitAnswer and Reset; callers never write fields directly.
// The exported fields exist so the whole session can be mirrored to disk as JSON.
type Session struct {
	ID           uuid.UUID     `json:"id"`
	Mode         Mode          `json:"mode"`
	Players      []PlayerStats `json:"players"`
	ActivePlayer int           `json:"activePlayer"`
	UsedIDs      []int         `json:"usedIds"`
	Current      *Question     `json:"current"`
	Answered     bool          `json:"answered"`
	Selected     string        `json:"selected"`
	LastCorrect  bool          `json:"lastCorrect"`
	MaxID        int           `json:"maxId"`

	generation int
	lookup     Lookup
	store      Store
}

func NewSession(mode Mode, names ...string) (*Session, error) {
	cleaned, err := validateNames(mode, names)
	if err != nil {
		return nil, err
	}

	players := make([]PlayerStats, len(cleaned))
	for i, name := range cleaned {
		players[i] = PlayerStats{Name: name}
	}

	return &Session{
		ID:      uuid.New(),
		Mode:    mode,
		Players: players,
		MaxID:   DefaultMaxID,
	}, nil
}

// Attach wires in the session's collaborators. Restored sessions come out of
// JSON with these unset, so this runs both after NewSession and after a load.
func (s *Session) Attach(lookup Lookup, store Store) {
	s.lookup = lookup
	s.store = store
}

// Over reports whether every player is finished.
func (s *Session) Over() bool {
	for _, p := range s.Players {
		if !p.Finished {
			return false
		}
	}
	return true
}

// Active returns the player expected to answer the current question.
func (s *Session) Active() *PlayerStats {
	return &s.Players[s.ActivePlayer]
}

// SubmitAnswer scores choice against the current question and advances the
// session. Stale or invalid calls (no question, already answered, game over,
// unknown choice) are silently ignored since they only come from UI races.
// When the answer ends a player's run, their final stats line is returned so
// the caller can forward it to a Sink; otherwise nil.
func (s *Session) SubmitAnswer(choice string) *ScoreEntry {
	if s.Current == nil || s.Answered || s.Over() {
		return nil
	}
	if !slices.Contains(s.Current.Choices, choice) {
		return nil
	}

	player := s.Active()
	correct := choice == s.Current.SubjectName

	player.TotalQuestions++
	if correct {
		player.Score++
		player.Streak++
		player.BestStreak = max(player.BestStreak, player.Streak)
	} else {
		player.Streak = 0
		player.Finished = true
	}

	var entry *ScoreEntry
	if !correct {
		if player.Name != "" {
			entry = &ScoreEntry{
				PlayerName:     player.Name,
				Score:          player.Score,
				Streak:         player.BestStreak,
				TotalQuestions: player.TotalQuestions,
				Timestamp:      time.Now(),
			}
		}

		// One strike ends the acting player. In a duel the turn passes over,
		// unless the other player already busted out.
		if s.Mode == ModeDuel {
			other := 1 - s.ActivePlayer
			if !s.Players[other].Finished {
				s.ActivePlayer = other
			}
		}
	}

	s.Answered = true
	s.Selected = choice
	s.LastCorrect = correct

	log.Debug().
		Stringer("session", s.ID).
		Str("player", player.Name).
		Bool("correct", correct).
		Int("score", player.Score).
		Msg("answer submitted")

	s.commit()
	return entry
}

// SetPlayerNames re-validates and installs names after a Reset.
func (s *Session) SetPlayerNames(names ...string) error {
	cleaned, err := validateNames(s.Mode, names)
	if err != nil {
		return err
	}

	for i, name := range cleaned {
		s.Players[i].Name = name
	}

	s.commit()
	return nil
}

// Reset clears every counter and flag back to a fresh session, keeping the
// mode. Names are cleared too and must be re-entered. Bumping the generation
// makes any in-flight question fetch land as stale.
func (s *Session) Reset() {
	for i := range s.Players {
		s.Players[i] = PlayerStats{}
	}
	s.ActivePlayer = 0
	s.UsedIDs = nil
	s.Current = nil
	s.Answered = false
	s.Selected = ""
	s.LastCorrect = false
	s.generation++

	s.commit()
}

func (s *Session) commit() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s); err != nil {
		log.Err(err).Stringer("session", s.ID).Msg("failed to mirror session")
	}
}

func validateNames(mode Mode, names []string) ([]string, error) {
	if len(names) != mode.PlayerCount() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrPlayerCount, len(names), mode.PlayerCount())
	}

	cleaned := make([]string, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, ErrEmptyName
		}
		if utf8.RuneCountInString(name) > MaxNameLength {
			return nil, fmt.Errorf("%w: %q", ErrNameTooLong, name)
		}
		cleaned[i] = name
	}

	return cleaned, nil
}
