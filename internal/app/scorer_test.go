package app_test

import (
	"testing"

	"quizmatch-service/internal/app"
	"quizmatch-service/internal/domain"
)

func TestScoreCanonicalSet(t *testing.T) {
	questions := domain.DefaultQuestions().Questions

	// positions 0, 2, 3 hit the correct option; 1 and 4 do not
	got := app.Score(questions, []int{0, 1, 0, 0, 2})
	if got != 3 {
		t.Fatalf("expected score 3, got %d", got)
	}
}

func TestScoreEmptyAnswers(t *testing.T) {
	questions := domain.DefaultQuestions().Questions
	if got := app.Score(questions, nil); got != 0 {
		t.Fatalf("expected 0 for no answers, got %d", got)
	}
}

func TestScoreBoundedByQuestionCount(t *testing.T) {
	questions := domain.DefaultQuestions().Questions
	answers := []int{0, 0, 0, 0, 0, 0, 0, 0}
	if got := app.Score(questions, answers); got != len(questions) {
		t.Fatalf("expected score capped at %d, got %d", len(questions), got)
	}
}

func TestScoreOutOfRangeAnswersAreIncorrect(t *testing.T) {
	questions := []domain.Question{
		{ID: 1, Options: []string{"a", "b"}, CorrectOption: 1},
		{ID: 2, Options: []string{"a", "b"}, CorrectOption: 0},
		{ID: 3, Options: []string{"a", "b"}, CorrectOption: 0},
	}
	// 7 and -1 are out of range; missing third answer counts as incorrect
	if got := app.Score(questions, []int{7, -1}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestScoreIsGeneralOverCorrectOption(t *testing.T) {
	// the default data happens to put every correct answer at index 0;
	// the scorer must not assume that
	questions := []domain.Question{
		{ID: 1, Options: []string{"a", "b", "c"}, CorrectOption: 2},
		{ID: 2, Options: []string{"a", "b", "c"}, CorrectOption: 1},
	}
	if got := app.Score(questions, []int{2, 1}); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := app.Score(questions, []int{0, 0}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
