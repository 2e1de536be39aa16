package domain

import (
	"context"

	"github.com/legalease/lexctl/internal/domain/entity"
)

// ============ Client-side ports ============

// ChatBackend reads and extends the transcript of one session.
type ChatBackend interface {
	// ChatHistory returns the stored transcript in server order. A session
	// without turns yields an empty slice, not an error.
	ChatHistory(ctx context.Context, sessionID string) ([]entity.ChatMessage, error)

	// SendMessage posts one user turn and returns the assistant reply text.
	SendMessage(ctx context.Context, sessionID, message string) (string, error)
}

// Backend is the full REST contract consumed by the client.
type Backend interface {
	DocumentLister
	Summarizer
	ChatBackend
}

// ============ Dev backend ports ============

// ChatRepository stores chat transcripts
type ChatRepository interface {
	// Create starts an empty thread for a session
	Create(ctx context.Context, thread *entity.ChatThread) error

	// Get returns the thread of a session
	Get(ctx context.Context, sessionID string) (*entity.ChatThread, error)

	// Append adds messages to the end of the thread
	Append(ctx context.Context, sessionID string, msgs ...entity.ChatMessage) error
}

// ChatUsecase is the dev backend's chat logic
type ChatUsecase interface {
	// History returns the thread of a session
	History(ctx context.Context, sessionID string) (*entity.ChatThread, error)

	// Chat answers one question about the session's document
	Chat(ctx context.Context, sessionID, message string) (string, error)
}
