package conversation

// MaxMessages bounds conversation history length, counting the pinned system
// prompt.
const MaxMessages = 12

// TrimHistory keeps the system prompt plus the most recent turns whenever the
// history outgrows MaxMessages. Oldest conversational context goes first.
func TrimHistory(history []ChatMessage) []ChatMessage {
	if len(history) <= MaxMessages {
		return history
	}
	trimmed := make([]ChatMessage, 0, MaxMessages)
	trimmed = append(trimmed, history[0])
	trimmed = append(trimmed, history[len(history)-(MaxMessages-1):]...)
	return trimmed
}
