package conversation

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single role-tagged turn in a conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Language is the caller's detected language for the current turn.
type Language string

const (
	LangEnglish Language = "en"
	LangSpanish Language = "es"
)
