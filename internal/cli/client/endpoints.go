package client

const (
	// Document endpoints
	endpointDocuments = "/documents/%s" // GET - list a user's documents, newest first
	endpointSummarize = "/summarize"    // POST multipart - file, user_id, time

	// Chat endpoints
	endpointChatHistory = "/chat/history/%s" // GET
	endpointChat        = "/chat"            // POST
)

// Fallback messages shown when a failure carries no server-provided reason.
const (
	FallbackListDocuments = "Failed to load documents. Please try again."
	FallbackSummarize     = "Failed to generate summary. Please try again."
	FallbackChatHistory   = "Failed to load chat history."
	FallbackChat          = "Failed to send message. Please try again."
)
