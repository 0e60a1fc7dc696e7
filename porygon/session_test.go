package porygon

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

type lookupFunc func(ctx context.Context, id int) (Record, error)

func (f lookupFunc) Resolve(ctx context.Context, id int) (Record, error) {
	return f(ctx, id)
}

func goodLookup() lookupFunc {
	return func(_ context.Context, id int) (Record, error) {
		return Record{ID: id, Name: fmt.Sprintf("Pokemon %d", id), Sprite: fmt.Sprintf("sprites/%d.png", id)}, nil
	}
}

type memStore struct {
	saves int
	last  []byte
}

func (m *memStore) Save(session *Session) error {
	bytes, err := json.Marshal(session)
	if err != nil {
		return err
	}

	m.saves++
	m.last = bytes
	return nil
}

func newTestSession(t *testing.T, mode Mode, names ...string) *Session {
	t.Helper()

	session, err := NewSession(mode, names...)
	if err != nil {
		t.Fatalf("could not create session: %s", err)
	}

	session.Attach(goodLookup(), &memStore{})
	return session
}

func nextRound(t *testing.T, session *Session) *Question {
	t.Helper()

	question, err := session.NextQuestion(context.Background())
	if err != nil {
		t.Fatalf("could not build question: %s", err)
	}
	if err := session.Commit(question); err != nil {
		t.Fatalf("could not commit question: %s", err)
	}

	return question
}

func wrongChoice(t *testing.T, question *Question) string {
	t.Helper()

	for _, choice := range question.Choices {
		if choice != question.SubjectName {
			return choice
		}
	}

	t.Fatal("question has no wrong choice")
	return ""
}

func TestNameValidation(t *testing.T) {
	cases := []struct {
		mode    Mode
		names   []string
		wantErr bool
	}{
		{ModeSolo, []string{"Ash"}, false},
		{ModeSolo, []string{"  Misty  "}, false},
		{ModeSolo, []string{""}, true},
		{ModeSolo, []string{"   "}, true},
		{ModeSolo, []string{strings.Repeat("a", 25)}, true},
		{ModeSolo, []string{"Ash", "Gary"}, true},
		{ModeDuel, []string{"Ash", "Gary"}, false},
		{ModeDuel, []string{"Ash"}, true},
	}

	for i, c := range cases {
		session, err := NewSession(c.mode, c.names...)
		if c.wantErr && err == nil {
			t.Errorf("case %d: expected validation error for %v", i, c.names)
		}
		if !c.wantErr && err != nil {
			t.Errorf("case %d: unexpected error: %s", i, err)
		}
		if err == nil && session.Players[0].Name != strings.TrimSpace(c.names[0]) {
			t.Errorf("case %d: name not trimmed: %q", i, session.Players[0].Name)
		}
	}
}

func TestCorrectAnswer(t *testing.T) {
	session := newTestSession(t, ModeSolo, "Ash")
	question := nextRound(t, session)

	entry := session.SubmitAnswer(question.SubjectName)
	if entry != nil {
		t.Errorf("correct answer should not produce a score entry")
	}

	player := session.Players[0]
	if player.Score != 1 || player.Streak != 1 || player.BestStreak != 1 || player.TotalQuestions != 1 {
		t.Fatalf("unexpected stats after correct answer: %+v", player)
	}
	if player.Finished || session.Over() {
		t.Fatal("correct answer should not end the run")
	}
	if !session.Answered || !session.LastCorrect || session.Selected != question.SubjectName {
		t.Fatalf("round flags not set: answered=%t lastCorrect=%t selected=%q", session.Answered, session.LastCorrect, session.Selected)
	}
}

func TestWrongAnswerEndsSoloRun(t *testing.T) {
	session := newTestSession(t, ModeSolo, "Ash")

	// one right answer first so the entry carries real numbers
	question := nextRound(t, session)
	session.SubmitAnswer(question.SubjectName)

	question = nextRound(t, session)
	entry := session.SubmitAnswer(wrongChoice(t, question))

	player := session.Players[0]
	if player.Streak != 0 {
		t.Errorf("streak should reset on a wrong answer, got %d", player.Streak)
	}
	if !player.Finished || !session.Over() {
		t.Fatal("one wrong answer should end a solo session")
	}
	if player.TotalQuestions != 2 || player.Score != 1 {
		t.Fatalf("unexpected stats: %+v", player)
	}

	if entry == nil {
		t.Fatal("a busted run should produce a score entry")
	}
	if entry.PlayerName != "Ash" || entry.Score != 1 || entry.Streak != 1 || entry.TotalQuestions != 2 {
		t.Fatalf("unexpected score entry: %+v", entry)
	}
}

func TestSubmitAnswerIdempotent(t *testing.T) {
	session := newTestSession(t, ModeSolo, "Ash")
	question := nextRound(t, session)

	session.SubmitAnswer(question.SubjectName)
	before := *session
	beforePlayers := append([]PlayerStats(nil), session.Players...)

	if entry := session.SubmitAnswer(question.SubjectName); entry != nil {
		t.Error("second submission should be a no-op")
	}

	if !reflect.DeepEqual(beforePlayers, session.Players) {
		t.Errorf("player stats changed on duplicate submission: %+v vs %+v", beforePlayers, session.Players)
	}
	if before.Answered != session.Answered || before.Selected != session.Selected || before.LastCorrect != session.LastCorrect {
		t.Error("round flags changed on duplicate submission")
	}
}

func TestSubmitAnswerUnknownChoice(t *testing.T) {
	session := newTestSession(t, ModeSolo, "Ash")
	nextRound(t, session)

	if entry := session.SubmitAnswer("Bogusmon"); entry != nil {
		t.Error("unknown choice should be ignored")
	}
	if session.Answered || session.Players[0].TotalQuestions != 0 {
		t.Error("unknown choice should not change state")
	}
}

func TestSubmitAnswerWithoutQuestion(t *testing.T) {
	session := newTestSession(t, ModeSolo, "Ash")

	if entry := session.SubmitAnswer("Pokemon 1"); entry != nil {
		t.Error("submission without a question should be ignored")
	}
}

func TestSubmitAnswerIgnoredWhenOver(t *testing.T) {
	session := newTestSession(t, ModeSolo, "Ash")
	question := nextRound(t, session)

	// a restored mirror can come back finished with the round flags clear
	session.Players[0].Finished = true
	session.Answered = false

	if entry := session.SubmitAnswer(question.SubjectName); entry != nil {
		t.Error("submission on a finished session should be ignored")
	}
	if session.Answered || session.Players[0].TotalQuestions != 0 {
		t.Error("finished session should not change state")
	}
}

func TestDuelCorrectKeepsTurn(t *testing.T) {
	session := newTestSession(t, ModeDuel, "Ash", "Gary")

	for range 3 {
		question := nextRound(t, session)
		session.SubmitAnswer(question.SubjectName)

		if session.ActivePlayer != 0 {
			t.Fatal("correct answer should keep the same player active")
		}
	}

	if session.Players[0].Streak != 3 || session.Players[0].BestStreak != 3 {
		t.Fatalf("unexpected streak: %+v", session.Players[0])
	}
}

func TestDuelWrongPassesTurn(t *testing.T) {
	session := newTestSession(t, ModeDuel, "Ash", "Gary")

	question := nextRound(t, session)
	entry := session.SubmitAnswer(wrongChoice(t, question))

	if entry == nil || entry.PlayerName != "Ash" {
		t.Fatalf("busted player should produce their own entry, got %+v", entry)
	}
	if session.ActivePlayer != 1 {
		t.Fatal("wrong answer should hand the turn to the other player")
	}
	if !session.Players[0].Finished || session.Players[1].Finished {
		t.Fatal("only the acting player should be finished")
	}
	if session.Over() {
		t.Fatal("duel is not over while a player remains")
	}
}

func TestDuelOverWhenBothFinished(t *testing.T) {
	session := newTestSession(t, ModeDuel, "Ash", "Gary")

	question := nextRound(t, session)
	session.SubmitAnswer(wrongChoice(t, question))

	question = nextRound(t, session)
	session.SubmitAnswer(wrongChoice(t, question))

	if !session.Over() {
		t.Fatal("duel should be over once both players are finished")
	}
	// nobody left to hand the turn to
	if session.ActivePlayer != 1 {
		t.Errorf("turn should stay with the last player, got %d", session.ActivePlayer)
	}

	if _, err := session.NextQuestion(context.Background()); err != ErrSessionOver {
		t.Errorf("expected ErrSessionOver, got %v", err)
	}
}

func TestPoolWithoutReplacement(t *testing.T) {
	session := newTestSession(t, ModeSolo, "Ash")
	session.MaxID = 6

	seen := make(map[int]bool)
	for range session.MaxID {
		question := nextRound(t, session)
		if seen[question.SubjectID] {
			t.Fatalf("subject id %d repeated before the pool was exhausted", question.SubjectID)
		}
		seen[question.SubjectID] = true

		// keep the run alive
		session.SubmitAnswer(question.SubjectName)
	}

	if len(seen) != session.MaxID {
		t.Fatalf("expected every id to be used once, got %d of %d", len(seen), session.MaxID)
	}

	// the pool is empty now, the next draw wraps around
	question := nextRound(t, session)
	if question.SubjectID < 1 || question.SubjectID > session.MaxID {
		t.Fatalf("subject id %d out of range after wraparound", question.SubjectID)
	}
	if len(session.UsedIDs) != 1 {
		t.Fatalf("used ids should reset on wraparound, got %v", session.UsedIDs)
	}
}

func TestResetKeepsModeClearsEverythingElse(t *testing.T) {
	store := &memStore{}
	session := newTestSession(t, ModeDuel, "Ash", "Gary")
	session.Attach(goodLookup(), store)

	question := nextRound(t, session)
	session.SubmitAnswer(question.SubjectName)

	session.Reset()

	if session.Mode != ModeDuel || len(session.Players) != 2 {
		t.Fatal("reset should preserve the selected mode")
	}
	for i, player := range session.Players {
		if player != (PlayerStats{}) {
			t.Errorf("player %d not cleared: %+v", i, player)
		}
	}
	if session.Current != nil || session.Answered || session.UsedIDs != nil || session.ActivePlayer != 0 {
		t.Fatal("reset should clear the round state")
	}

	if err := session.SetPlayerNames("May", "Brock"); err != nil {
		t.Fatalf("could not set names after reset: %s", err)
	}
	if session.Players[1].Name != "Brock" {
		t.Errorf("name not applied: %+v", session.Players)
	}
	if err := session.SetPlayerNames("May"); err == nil {
		t.Error("expected a player count error")
	}
}

func TestEveryMutationPersists(t *testing.T) {
	store := &memStore{}
	session := newTestSession(t, ModeSolo, "Ash")
	session.Attach(goodLookup(), store)

	question := nextRound(t, session)
	if store.saves != 1 {
		t.Errorf("commit should persist, got %d saves", store.saves)
	}

	session.SubmitAnswer(question.SubjectName)
	if store.saves != 2 {
		t.Errorf("submit should persist, got %d saves", store.saves)
	}

	session.Reset()
	if store.saves != 3 {
		t.Errorf("reset should persist, got %d saves", store.saves)
	}

	restored := Session{}
	if err := json.Unmarshal(store.last, &restored); err != nil {
		t.Fatalf("mirrored session does not round-trip: %s", err)
	}
	if restored.Mode != ModeSolo || len(restored.Players) != 1 {
		t.Fatalf("unexpected restored session: %+v", restored)
	}
}

func TestSoloScenario(t *testing.T) {
	session := newTestSession(t, ModeSolo, "Ash")

	question := nextRound(t, session)
	if question.SubjectID < 1 || question.SubjectID > DefaultMaxID {
		t.Fatalf("subject id %d out of range", question.SubjectID)
	}

	session.SubmitAnswer(question.SubjectName)
	player := session.Players[0]
	if player.Score != 1 || player.Streak != 1 || player.TotalQuestions != 1 || session.Over() {
		t.Fatalf("unexpected state after correct answer: %+v", player)
	}

	question = nextRound(t, session)
	session.SubmitAnswer(wrongChoice(t, question))

	player = session.Players[0]
	if player.Streak != 0 || player.TotalQuestions != 2 || !player.Finished || !session.Over() {
		t.Fatalf("unexpected state after wrong answer: %+v", player)
	}
}
