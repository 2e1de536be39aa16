package entity

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a transcript. Order of a slice of messages is
// display order and causal order.
type ChatMessage struct {
	Role    Role
	Content string
}

// ChatThread is the dev backend's stored transcript for one session.
type ChatThread struct {
	SessionID     string
	DocumentTitle string
	UserID        string
	History       []ChatMessage
}

// StreamChunk is one piece of a streamed model reply. The last chunk has
// IsEnd set; Error is non-empty when the reply failed midway.
type StreamChunk struct {
	Text  string
	IsEnd bool
	Error string
}
