package dto

// ChatMessage is one transcript turn on the wire
type ChatMessage struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
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

// ChatHistoryResponse is the body of GET /chat/history/:session_id
type ChatHistoryResponse struct {
	SessionID     string        `json:"session_id"`
	DocumentTitle string        `json:"document_title"`
	History       []ChatMessage `json:"history"`
}
