package mocks

import (
	"context"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// MockDocumentUsecase is a mock implementation of domain.DocumentUsecase
type MockDocumentUsecase struct {
	SummarizeFunc func(ctx context.Context, req *domain.UploadedDocument) (*domain.SummarizeResult, error)
	ListFunc      func(ctx context.Context, userID string) ([]entity.DocumentRecord, error)
}

var _ domain.DocumentUsecase = (*MockDocumentUsecase)(nil)

// Summarize mocks the Summarize method
func (m *MockDocumentUsecase) Summarize(ctx context.Context, req *domain.UploadedDocument) (*domain.SummarizeResult, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, req)
	}
	return &domain.SummarizeResult{}, nil
}

// List mocks the List method
func (m *MockDocumentUsecase) List(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []entity.DocumentRecord{}, nil
}

// MockChatUsecase is a mock implementation of domain.ChatUsecase
type MockChatUsecase struct {
	HistoryFunc func(ctx context.Context, sessionID string) (*entity.ChatThread, error)
	ChatFunc    func(ctx context.Context, sessionID, message string) (string, error)
}

var _ domain.ChatUsecase = (*MockChatUsecase)(nil)

// History mocks the History method
func (m *MockChatUsecase) History(ctx context.Context, sessionID string) (*entity.ChatThread, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, sessionID)
	}
	return &entity.ChatThread{SessionID: sessionID, History: []entity.ChatMessage{}}, nil
}

// Chat mocks the Chat method
func (m *MockChatUsecase) Chat(ctx context.Context, sessionID, message string) (string, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, sessionID, message)
	}
	return "", nil
}
