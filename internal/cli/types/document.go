package types

// DocumentItem is one entry of GET /documents/{userId}
type DocumentItem struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
	Time      string `json:"time"`
	HasChat   bool   `json:"has_chat"`
}

// SummarizeResponse is the body of a successful POST /summarize
type SummarizeResponse struct {
	SessionID string `json:"session_id"`
	Summary   string `json:"summary"`
}

// ErrorResponse is the body of any non-2xx response that carries a reason
type ErrorResponse struct {
	Error string `json:"error"`
}
