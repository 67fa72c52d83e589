package conversation

import (
	"fmt"
	"testing"
)

func buildHistory(n int) []ChatMessage {
	history := []ChatMessage{{Role: ChatRoleSystem, Content: "system prompt"}}
	for i := 1; i < n; i++ {
		role := ChatRoleUser
		if i%2 == 0 {
			role = ChatRoleAssistant
		}
		history = append(history, ChatMessage{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}
	return history
}

func TestTrimHistoryUnderLimit(t *testing.T) {
	history := buildHistory(MaxMessages)
	trimmed := TrimHistory(history)
	if len(trimmed) != MaxMessages {
		t.Fatalf("expected untouched history, got %d messages", len(trimmed))
	}
}

func TestTrimHistoryOverLimit(t *testing.T) {
	history := buildHistory(30)
	trimmed := TrimHistory(history)
	if len(trimmed) != MaxMessages {
		t.Fatalf("expected %d messages, got %d", MaxMessages, len(trimmed))
	}
	if trimmed[0].Role != ChatRoleSystem || trimmed[0].Content != "system prompt" {
		t.Fatalf("expected pinned system prompt, got %#v", trimmed[0])
	}
	// Tail must be the last MaxMessages-1 entries of the input, in order.
	tail := history[len(history)-(MaxMessages-1):]
	for i, msg := range tail {
		if trimmed[i+1] != msg {
			t.Fatalf("tail mismatch at %d: got %#v want %#v", i, trimmed[i+1], msg)
		}
	}
}

func TestTrimHistoryRepeatedAppends(t *testing.T) {
	history := []ChatMessage{{Role: ChatRoleSystem, Content: "system prompt"}}
	for i := 0; i < 50; i++ {
		history = TrimHistory(append(history, ChatMessage{Role: ChatRoleUser, Content: fmt.Sprintf("u%d", i)}))
		history = TrimHistory(append(history, ChatMessage{Role: ChatRoleAssistant, Content: fmt.Sprintf("a%d", i)}))
	}
	if len(history) != MaxMessages {
		t.Fatalf("expected bounded history, got %d", len(history))
	}
	if history[0].Role != ChatRoleSystem {
		t.Fatalf("system prompt lost after repeated appends")
	}
	if got := history[len(history)-1].Content; got != "a49" {
		t.Fatalf("expected newest turn retained, got %q", got)
	}
}
