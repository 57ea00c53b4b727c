package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quizmatch-service/internal/app"
	"quizmatch-service/internal/domain"
	"quizmatch-service/internal/infra/memory"
)

type fixture struct {
	server   *httptest.Server
	profiles *memory.ProfileStore
	matches  *memory.MatchStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	profiles := memory.NewProfileStore()
	matches := memory.NewMatchStore(profiles)
	sessions := memory.NewSessionStore(time.Hour)
	questions := memory.NewQuestionRepository(
		memory.NewStaticQuestionLoader(domain.DefaultQuestions()), time.Minute)

	auth := app.NewAuthService(profiles, sessions, "test-secret", time.Hour)
	matcher := app.NewMatchService(profiles, matches)
	quiz := app.NewQuizService(questions, profiles, matcher, memory.NewAttemptStore())

	server := httptest.NewServer(NewRouter(auth, quiz, matcher, profiles))
	t.Cleanup(server.Close)
	return &fixture{server: server, profiles: profiles, matches: matches}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, f.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func (f *fixture) register(t *testing.T, name, email string) (string, domain.Profile) {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "correct-horse",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	var session struct {
		Token string         `json:"token"`
		User  domain.Profile `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session.Token, session.User
}

func TestOptionsPreflightReturns204(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodOptions, "/users/some-id", "", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Fatalf("expected empty body, got %q", body)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive origin header, got %q", got)
	}
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	_, user := f.register(t, "Alice", "alice@example.com")

	resp := f.do(t, http.MethodGet, "/users/"+user.ID, "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != user.ID || got.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header on GET, got %q", got)
	}
}

func TestGetUserUnknownIDReturns400(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/users/missing", "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error field, got %v", body)
	}
}

func TestPatchUserScore(t *testing.T) {
	f := newFixture(t)
	_, user := f.register(t, "Alice", "alice@example.com")

	resp := f.do(t, http.MethodPatch, "/users/"+user.ID, "", map[string]int{"score": 4})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), `"score":4`) {
		t.Fatalf("expected body with score 4, got %s", raw)
	}

	resp = f.do(t, http.MethodPatch, "/users/missing", "", map[string]int{"score": 4})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown id, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["error"] == "" {
		t.Fatalf("expected error field, got %v err=%v", body, err)
	}
}

func TestPatchUserRejectsEmptyAndMalformed(t *testing.T) {
	f := newFixture(t)
	_, user := f.register(t, "Alice", "alice@example.com")

	resp := f.do(t, http.MethodPatch, "/users/"+user.ID, "", map[string]string{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPatch, f.server.URL+"/users/"+user.ID, strings.NewReader("{not json"))
	raw, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw.Body.Close()
	if raw.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", raw.StatusCode)
	}
}

func TestAuthMeRequiresSession(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/auth/me", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	token, user := f.register(t, "Alice", "alice@example.com")
	resp = f.do(t, http.MethodGet, "/auth/me", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil || got.ID != user.ID {
		t.Fatalf("unexpected me response: %+v err=%v", got, err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	token, _ := f.register(t, "Alice", "alice@example.com")

	resp := f.do(t, http.MethodPost, "/auth/logout", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = f.do(t, http.MethodGet, "/auth/me", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestQuestionsHideCorrectOption(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/quiz/questions", "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "correctOption") {
		t.Fatalf("questions payload leaks the correct option: %s", raw)
	}
	var views []questionView
	if err := json.Unmarshal(raw, &views); err != nil || len(views) != 5 {
		t.Fatalf("expected 5 questions, got %d err=%v", len(views), err)
	}
}

func TestQuizFlowEndToEnd(t *testing.T) {
	f := newFixture(t)
	token, _ := f.register(t, "Me", "me@example.com")
	_, other := f.register(t, "Other", "other@example.com")

	resp := f.do(t, http.MethodPost, "/quiz/attempts", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start attempt: expected 201, got %d", resp.StatusCode)
	}

	var result app.QuizResult
	for _, option := range []int{0, 1, 0, 0, 2} {
		resp = f.do(t, http.MethodPost, "/quiz/attempts/answers", token, map[string]int{"option": option})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("answer: expected 200, got %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("decode result: %v", err)
		}
		resp.Body.Close()
	}

	if result.Attempt.State != app.StateCompleted {
		t.Fatalf("expected completed attempt, got %s", result.Attempt.State)
	}
	if result.Profile == nil || result.Profile.Score != 3 {
		t.Fatalf("expected persisted score 3, got %+v", result.Profile)
	}
	if result.MatchesCreated != 1 {
		t.Fatalf("expected 1 match created, got %d", result.MatchesCreated)
	}

	resp = f.do(t, http.MethodGet, "/matches", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list matches: expected 200, got %d", resp.StatusCode)
	}
	var pending []domain.PendingMatch
	if err := json.NewDecoder(resp.Body).Decode(&pending); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	resp.Body.Close()
	if len(pending) != 1 || pending[0].MatchedUser.ID != other.ID {
		t.Fatalf("unexpected pending matches: %+v", pending)
	}

	connectPath := fmt.Sprintf("/matches/%s/connect", other.ID)
	resp = f.do(t, http.MethodPost, connectPath, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("connect: expected 204, got %d", resp.StatusCode)
	}

	// connect is idempotent at the boundary too
	resp = f.do(t, http.MethodPost, connectPath, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("second connect: expected 204, got %d", resp.StatusCode)
	}

	resp = f.do(t, http.MethodGet, "/matches", token, nil)
	defer resp.Body.Close()
	pending = nil
	if err := json.NewDecoder(resp.Body).Decode(&pending); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending matches after connect, got %+v", pending)
	}
}

func TestQuizEndpointsRequireAuth(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/quiz/attempts", "/quiz/attempts/answers", "/quiz/attempts/submit"} {
		resp := f.do(t, http.MethodPost, path, "", nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, resp.StatusCode)
		}
	}
	resp := f.do(t, http.MethodGet, "/matches", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("matches: expected 401, got %d", resp.StatusCode)
	}
}
