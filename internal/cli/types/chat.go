package types

// ChatMessage represents a chat message
type ChatMessage struct {
	Role    string `json:"role"`    // user, assistant
	Content string `json:"content"` // Message content
}

// ChatHistoryResponse is the body of GET /chat/history/{sessionId}.
// History may be absent.
type ChatHistoryResponse struct {
	History []ChatMessage `json:"history,omitempty"`
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the body of a successful POST /chat
type ChatResponse struct {
	Response string `json:"response"`
}
