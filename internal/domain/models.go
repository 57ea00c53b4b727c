package domain

import "time"

// Profile is a user's durable record. Score is overwritten (not accumulated)
// each time the user completes a quiz attempt.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Question models a single multiple-choice question. CorrectOption indexes
// into Options. The set is fixed at deploy time and identical for all users.
type Question struct {
	ID            int      `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
}

// QuestionSet is a named, ordered collection of questions.
type QuestionSet struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// MatchStatus is the lifecycle state of a match row.
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchConnected MatchStatus = "connected"
)

// Match is a directional candidate pairing created pending by the match
// selector and flipped to connected by the connect action. Rows are never
// deleted.
type Match struct {
	UserID        string      `json:"userId"`
	MatchedUserID string      `json:"matchedUserId"`
	Status        MatchStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// PendingMatch pairs a match row with the matched user's profile for display.
type PendingMatch struct {
	MatchedUser Profile   `json:"matchedUser"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProfilePatch carries the optional fields a PATCH may overwrite. Nil fields
// are left untouched.
type ProfilePatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Score *int    `json:"score"`
}

// Empty reports whether the patch carries no fields.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Score == nil
}
