package dto

// DocumentItem is one entry of GET /documents/:user_id
type DocumentItem struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
	Time      string `json:"time"`
	Icon      string `json:"icon"`
	HasChat   bool   `json:"has_chat"`
	Summary   string `json:"summary"`
}

// SummarizeResponse is the body of a successful POST /summarize
type SummarizeResponse struct {
	Summary   string `json:"summary"`
	SessionID string `json:"session_id"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}
