package porygon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	choiceCount = 4

	// PlaceholderName stands in for a record the lookup could not resolve.
	PlaceholderName = "MissingNo."
)

// retryDelay sits between the two attempts of a failed batch fetch.
// It is a var so tests don't have to wait a real second.
var retryDelay = time.Second

var (
	// ErrQuestionUnavailable means the answer pokemon itself could not be
	// resolved (or has no sprite). Recoverable, the caller should offer a retry.
	ErrQuestionUnavailable = errors.New("answer pokemon is unavailable")

	// ErrFetchFailed means the batch fetch failed even after the automatic retry.
	ErrFetchFailed = errors.New("could not fetch pokemon data")
)

// Question is one round: a subject pokemon and four shuffled name choices,
// exactly one of which is the subject's.
type Question struct {
	SubjectID   int      `json:"subjectId"`
	SubjectName string   `json:"subjectName"`
	Sprite      string   `json:"sprite"`
	Choices     []string `json:"choices"`

	// set while the question is in flight, meaningless after Commit
	generation int
	wrapped    bool
}

// NextQuestion samples a fresh subject and resolves it plus three distractors.
// It mutates nothing; the result must go through Commit to take effect, which
// is what lets a reset discard a fetch that was still in the air.
// A full batch failure is retried once after a short delay.
func (s *Session) NextQuestion(ctx context.Context) (*Question, error) {
	if s.Over() {
		return nil, ErrSessionOver
	}

	question, err := s.buildQuestion(ctx)
	if err != nil && errors.Is(err, ErrFetchFailed) {
		log.Warn().Err(err).Stringer("session", s.ID).Msg("batch fetch failed, retrying once")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}

		question, err = s.buildQuestion(ctx)
	}
	if err != nil {
		return nil, err
	}

	return question, nil
}

// Commit installs a fetched question as the current round. Questions built
// before the latest Reset are rejected with ErrStaleQuestion and change nothing.
func (s *Session) Commit(question *Question) error {
	if question.generation != s.generation {
		return ErrStaleQuestion
	}
	if s.Over() {
		return ErrSessionOver
	}

	if question.wrapped {
		s.UsedIDs = nil
	}
	s.UsedIDs = append(s.UsedIDs, question.SubjectID)

	s.Current = question
	s.Answered = false
	s.Selected = ""
	s.LastCorrect = false

	s.commit()
	return nil
}

func (s *Session) buildQuestion(ctx context.Context) (*Question, error) {
	correct, distractors, wrapped, err := s.sampleIDs()
	if err != nil {
		return nil, err
	}

	records, err := s.resolveAll(ctx, append([]int{correct}, distractors...))
	if err != nil {
		return nil, err
	}

	subject := records[0]
	if subject.Name == PlaceholderName || subject.Sprite == "" {
		return nil, fmt.Errorf("%w: id %d", ErrQuestionUnavailable, correct)
	}

	choices := lo.Map(records, func(record Record, _ int) string {
		return record.Name
	})
	internalRng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return &Question{
		SubjectID:   subject.ID,
		SubjectName: subject.Name,
		Sprite:      subject.Sprite,
		Choices:     choices,
		generation:  s.generation,
		wrapped:     wrapped,
	}, nil
}

// sampleIDs draws the answer id from the ids not yet asked this session,
// wrapping back to the full range once it runs dry. Distractors come from the
// whole range and only have to be distinct within this question.
func (s *Session) sampleIDs() (correct int, distractors []int, wrapped bool, err error) {
	if s.MaxID < choiceCount {
		return 0, nil, false, fmt.Errorf("id range [1, %d] cannot fill %d choices", s.MaxID, choiceCount)
	}

	used := make(map[int]struct{}, len(s.UsedIDs))
	for _, id := range s.UsedIDs {
		used[id] = struct{}{}
	}

	pool := lo.Filter(lo.RangeFrom(1, s.MaxID), func(id int, _ int) bool {
		_, taken := used[id]
		return !taken
	})
	if len(pool) == 0 {
		pool = lo.RangeFrom(1, s.MaxID)
		wrapped = true
	}

	correct = pool[internalRng.IntN(len(pool))]

	distractors = make([]int, 0, choiceCount-1)
	for len(distractors) < choiceCount-1 {
		id := internalRng.IntN(s.MaxID) + 1
		if id == correct || lo.Contains(distractors, id) {
			continue
		}
		distractors = append(distractors, id)
	}

	return correct, distractors, wrapped, nil
}

// resolveAll fetches every id concurrently and joins before returning, in the
// order given. A single failed id degrades to a placeholder record so one bad
// fetch can't sink the round; more than one failure is treated as a transient
// batch failure.
func (s *Session) resolveAll(ctx context.Context, ids []int) ([]Record, error) {
	records := make([]Record, len(ids))
	failures := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records[i], failures[i] = s.lookup.Resolve(ctx, id)
		}()
	}
	wg.Wait()

	failed := 0
	for i, ferr := range failures {
		if ferr == nil {
			continue
		}

		failed++
		log.Warn().Err(ferr).Int("id", ids[i]).Msg("lookup failed")
		records[i] = Record{ID: ids[i], Name: PlaceholderName}
	}
	if failed > 1 {
		return nil, fmt.Errorf("%w: %d of %d lookups failed", ErrFetchFailed, failed, len(ids))
	}

	return records, nil
}
