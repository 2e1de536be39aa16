package mocks

import (
	"context"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// MockBackend is a mock implementation of domain.Backend
type MockBackend struct {
	ListDocumentsFunc func(ctx context.Context, userID string) ([]entity.DocumentRecord, error)
	SummarizeFunc     func(ctx context.Context, req *domain.SummarizeRequest) (*domain.SummarizeResult, error)
	ChatHistoryFunc   func(ctx context.Context, sessionID string) ([]entity.ChatMessage, error)
	SendMessageFunc   func(ctx context.Context, sessionID, message string) (string, error)
}

var _ domain.Backend = (*MockBackend)(nil)

// ListDocuments mocks the ListDocuments method
func (m *MockBackend) ListDocuments(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
	if m.ListDocumentsFunc != nil {
		return m.ListDocumentsFunc(ctx, userID)
	}
	return []entity.DocumentRecord{}, nil
}

// Summarize mocks the Summarize method
func (m *MockBackend) Summarize(ctx context.Context, req *domain.SummarizeRequest) (*domain.SummarizeResult, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, req)
	}
	return &domain.SummarizeResult{SessionID: "session-1", Summary: ""}, nil
}

// ChatHistory mocks the ChatHistory method
func (m *MockBackend) ChatHistory(ctx context.Context, sessionID string) ([]entity.ChatMessage, error) {
	if m.ChatHistoryFunc != nil {
		return m.ChatHistoryFunc(ctx, sessionID)
	}
	return []entity.ChatMessage{}, nil
}

// SendMessage mocks the SendMessage method
func (m *MockBackend) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, sessionID, message)
	}
	return "", nil
}
