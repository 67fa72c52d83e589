package conversation

import (
	"context"
	"time"
)

// Session is the per-call conversational state, keyed by the telephony
// provider's call identifier. history[0] is always the system prompt.
type Session struct {
	CallID        string        `json:"call_id"`
	History       []ChatMessage `json:"history"`
	Language      Language      `json:"language"`
	LastActivity  time.Time     `json:"last_activity"`
	ExpectMessage bool          `json:"expect_message"`
}

// SessionStore gives handlers exclusive access to one call's session.
// A missing or stale session (idle past the store's timeout) is replaced with
// a fresh system-prompt-seeded one before fn runs; every access refreshes
// LastActivity. The read-modify-write is atomic per call identifier, so
// duplicate webhook deliveries for the same call serialize.
type SessionStore interface {
	WithSession(ctx context.Context, callID string, fn func(s *Session) error) error
	Close() error
}

func newSession(callID, systemPrompt string, now time.Time) *Session {
	return &Session{
		CallID:        callID,
		History:       []ChatMessage{{Role: ChatRoleSystem, Content: systemPrompt}},
		Language:      LangEnglish,
		LastActivity:  now,
		ExpectMessage: false,
	}
}
