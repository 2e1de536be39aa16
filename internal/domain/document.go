package domain

import (
	"context"

	"github.com/legalease/lexctl/internal/domain/entity"
)

// ============ Client-side ports ============

// SummarizeRequest is one document submission.
type SummarizeRequest struct {
	UserID string
	Time   string // formatted with SubmissionTimeLayout
	File   entity.UploadFile
}

// SummarizeResult is the backend's answer to a submission.
type SummarizeResult struct {
	SessionID string
	Summary   string
}

// DocumentLister fetches a user's processed documents, newest first.
type DocumentLister interface {
	ListDocuments(ctx context.Context, userID string) ([]entity.DocumentRecord, error)
}

// Summarizer uploads a document and returns its summary and session id.
type Summarizer interface {
	Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResult, error)
}

// ============ Dev backend ports ============

// DocumentRepository stores uploaded documents
type DocumentRepository interface {
	// Create stores a new document
	Create(ctx context.Context, doc *entity.Document) error

	// Get finds a document by session id
	Get(ctx context.Context, sessionID string) (*entity.Document, error)

	// ListByUser returns the user's documents, newest first
	ListByUser(ctx context.Context, userID string) ([]*entity.Document, error)

	// MarkChatted sets has_chat on the document
	MarkChatted(ctx context.Context, sessionID string) error
}

// DocumentUsecase is the dev backend's document logic
type DocumentUsecase interface {
	// Summarize stores the document and returns its summary
	Summarize(ctx context.Context, req *UploadedDocument) (*SummarizeResult, error)

	// List returns the user's documents, newest first
	List(ctx context.Context, userID string) ([]entity.DocumentRecord, error)
}

// UploadedDocument is a document as received by the dev backend.
type UploadedDocument struct {
	UserID      string
	Title       string
	Time        string
	ContentType string
	Content     []byte
}
