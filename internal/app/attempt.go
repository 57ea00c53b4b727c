package app

import (
	"sync"
	"time"

	"quizmatch-service/internal/domain"
)

// AttemptState tracks a quiz attempt through its lifecycle.
type AttemptState string

const (
	StateInProgress AttemptState = "in_progress"
	StateSubmitting AttemptState = "submitting"
	StateCompleted  AttemptState = "completed"
	StateFailed     AttemptState = "failed"
)

// Attempt is one traversal of the question set by one user. It lives only in
// process memory; a restart loses in-flight attempts.
type Attempt struct {
	mu        sync.Mutex
	userID    string
	questions []domain.Question
	state     AttemptState
	current   int
	score     int
	answers   []int
	startedAt time.Time
	now       func() time.Time
}

// AttemptSnapshot is a point-in-time view of an attempt, safe to hand to
// transport layers.
type AttemptSnapshot struct {
	UserID    string       `json:"userId"`
	State     AttemptState `json:"state"`
	Current   int          `json:"currentQuestion"`
	Total     int          `json:"totalQuestions"`
	Score     int          `json:"score"`
	Answers   []int        `json:"answers"`
	StartedAt time.Time    `json:"startedAt"`
}

// NewAttempt starts an attempt at the first question with a zero score.
func NewAttempt(userID string, questions []domain.Question) *Attempt {
	return newAttemptWithClock(userID, questions, time.Now)
}

// newAttemptWithClock allows deterministic timestamps in tests.
func newAttemptWithClock(userID string, questions []domain.Question, now func() time.Time) *Attempt {
	return &Attempt{
		userID:    userID,
		questions: questions,
		state:     StateInProgress,
		answers:   make([]int, 0, len(questions)),
		startedAt: now(),
		now:       now,
	}
}

// Answer records the selected option for the current question. It returns
// true when the final question was just answered and the attempt moved to
// the submitting state; the caller then drives score persistence.
func (a *Attempt) Answer(option int) (AttemptSnapshot, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateInProgress {
		return a.snapshotLocked(), false, domain.ErrAttemptComplete
	}

	a.answers = append(a.answers, option)
	q := a.questions[a.current]
	if option >= 0 && option < len(q.Options) && option == q.CorrectOption {
		a.score++
	}

	if a.current == len(a.questions)-1 {
		a.state = StateSubmitting
		return a.snapshotLocked(), true, nil
	}
	a.current++
	return a.snapshotLocked(), false, nil
}

// BeginSubmit moves a failed attempt back to submitting so the caller can
// retry persistence. There is no automatic retry.
func (a *Attempt) BeginSubmit() (AttemptSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case StateFailed:
		a.state = StateSubmitting
		return a.snapshotLocked(), nil
	case StateSubmitting:
		return a.snapshotLocked(), nil
	default:
		return a.snapshotLocked(), domain.ErrAttemptComplete
	}
}

// Complete marks the attempt terminal after a successful submission.
func (a *Attempt) Complete() AttemptSnapshot {
	return a.setState(StateCompleted)
}

// Fail marks the attempt terminal-until-resubmitted after a persistence error.
func (a *Attempt) Fail() AttemptSnapshot {
	return a.setState(StateFailed)
}

func (a *Attempt) setState(s AttemptState) AttemptSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = s
	return a.snapshotLocked()
}

// Snapshot returns the current view of the attempt.
func (a *Attempt) Snapshot() AttemptSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Attempt) snapshotLocked() AttemptSnapshot {
	answers := make([]int, len(a.answers))
	copy(answers, a.answers)
	return AttemptSnapshot{
		UserID:    a.userID,
		State:     a.state,
		Current:   a.current,
		Total:     len(a.questions),
		Score:     a.score,
		Answers:   answers,
		StartedAt: a.startedAt,
	}
}
