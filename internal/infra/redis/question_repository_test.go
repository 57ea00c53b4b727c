package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"quizmatch-service/internal/domain"
	"quizmatch-service/internal/infra/memory"
)

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		QuestionLoader: memory.NewStaticQuestionLoader(domain.DefaultQuestions()),
	}
	repo := NewQuestionRepository(client, loader, time.Minute)

	set, err := repo.GetQuestionSet(context.Background(), domain.DefaultQuestionSetID)
	if err != nil {
		t.Fatalf("get questions: %v", err)
	}
	if len(set.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(set.Questions))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("questions:" + domain.DefaultQuestionSetID) {
		t.Fatalf("expected cache key to be set")
	}

	// Second call should hit cache, loader not incremented.
	again, err := repo.GetQuestionSet(context.Background(), domain.DefaultQuestionSetID)
	if err != nil {
		t.Fatalf("get questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(again.Questions) != len(set.Questions) {
		t.Fatalf("cached set differs: %d vs %d questions", len(again.Questions), len(set.Questions))
	}
}

type countingLoader struct {
	memory.QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestionSet(ctx context.Context, setID string) (domain.QuestionSet, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestionSet(ctx, setID)
}
