package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"quizmatch-service/internal/domain"
)

// QuizService drives quiz attempts: start, per-answer transitions, and the
// submission workflow that persists the final score and fans out match rows.
type QuizService struct {
	questions QuestionRepository
	profiles  ProfileStore
	matcher   *MatchService
	attempts  AttemptStore
	setID     string
}

func NewQuizService(questions QuestionRepository, profiles ProfileStore, matcher *MatchService, attempts AttemptStore) *QuizService {
	return &QuizService{
		questions: questions,
		profiles:  profiles,
		matcher:   matcher,
		attempts:  attempts,
		setID:     domain.DefaultQuestionSetID,
	}
}

// QuizResult is the outcome of an answer or submission step.
type QuizResult struct {
	Attempt        AttemptSnapshot `json:"attempt"`
	Profile        *domain.Profile `json:"profile,omitempty"`
	MatchesCreated int             `json:"matchesCreated"`
	MatchFailures  int             `json:"matchFailures"`
}

// Questions returns the question set the quiz runs against.
func (s *QuizService) Questions(ctx context.Context) ([]domain.Question, error) {
	set, err := s.questions.GetQuestionSet(ctx, s.setID)
	if err != nil {
		return nil, err
	}
	return set.Questions, nil
}

// Start begins a fresh attempt for the user, replacing any in-flight one.
func (s *QuizService) Start(ctx context.Context, userID string) (AttemptSnapshot, error) {
	set, err := s.questions.GetQuestionSet(ctx, s.setID)
	if err != nil {
		return AttemptSnapshot{}, err
	}
	if len(set.Questions) == 0 {
		return AttemptSnapshot{}, domain.ErrQuestionsNotFound
	}
	attempt := NewAttempt(userID, set.Questions)
	s.attempts.Put(userID, attempt)
	return attempt.Snapshot(), nil
}

// Answer records the selected option for the user's current question. When
// the final question is answered the attempt transitions to submitting and
// the submission workflow runs before returning.
func (s *QuizService) Answer(ctx context.Context, userID string, option int) (QuizResult, error) {
	attempt, ok := s.attempts.Get(userID)
	if !ok {
		return QuizResult{}, domain.ErrAttemptNotFound
	}

	snap, submitting, err := attempt.Answer(option)
	if err != nil {
		return QuizResult{Attempt: snap}, err
	}
	if !submitting {
		return QuizResult{Attempt: snap}, nil
	}
	return s.submit(ctx, userID, attempt)
}

// Resubmit retries the submission workflow for an attempt that previously
// failed to persist. There is no automatic retry; this is the manual path.
func (s *QuizService) Resubmit(ctx context.Context, userID string) (QuizResult, error) {
	attempt, ok := s.attempts.Get(userID)
	if !ok {
		return QuizResult{}, domain.ErrAttemptNotFound
	}
	snap, err := attempt.BeginSubmit()
	if err != nil {
		return QuizResult{Attempt: snap}, err
	}
	return s.submit(ctx, userID, attempt)
}

// submit persists the final score (full overwrite) and then fans out match
// rows. Score persistence failure fails the attempt. Match creation failures
// are logged and reported in the result but never fail the attempt or roll
// back the score: the two steps are independent and non-transactional.
func (s *QuizService) submit(ctx context.Context, userID string, attempt *Attempt) (QuizResult, error) {
	snap := attempt.Snapshot()

	profile, err := s.profiles.UpdateScore(ctx, userID, snap.Score)
	if err != nil {
		snap = attempt.Fail()
		log.Printf("persist score for %s failed: %v", userID, err)
		return QuizResult{Attempt: snap}, fmt.Errorf("persist score: %w", err)
	}

	created, failures := 0, 0
	candidates, err := s.matcher.CreateMatches(ctx, userID)
	if err != nil {
		var partial *domain.PartialWriteError
		if errors.As(err, &partial) {
			created = partial.Total - partial.Failed
			failures = partial.Failed
		}
		log.Printf("match creation for %s: %v", userID, err)
	} else {
		created = len(candidates)
	}

	snap = attempt.Complete()
	s.attempts.Delete(userID)
	return QuizResult{
		Attempt:        snap,
		Profile:        &profile,
		MatchesCreated: created,
		MatchFailures:  failures,
	}, nil
}
