package mocks

import (
	"context"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// MockTextExtractor is a mock implementation of domain.TextExtractor
type MockTextExtractor struct {
	ExtractFunc func(filename string, data []byte) (string, error)
}

var _ domain.TextExtractor = (*MockTextExtractor)(nil)

// Extract mocks the Extract method. By default the data is returned as text.
func (m *MockTextExtractor) Extract(filename string, data []byte) (string, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(filename, data)
	}
	return string(data), nil
}

// MockLanguageModel is a mock implementation of domain.LanguageModel
type MockLanguageModel struct {
	SummarizeFunc       func(ctx context.Context, chunk string) (string, error)
	AnswerStreamingFunc func(ctx context.Context, document string, history []entity.ChatMessage, question string) (<-chan entity.StreamChunk, error)
}

var _ domain.LanguageModel = (*MockLanguageModel)(nil)

// Summarize mocks the Summarize method. By default the chunk is echoed.
func (m *MockLanguageModel) Summarize(ctx context.Context, chunk string) (string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, chunk)
	}
	return chunk, nil
}

// AnswerStreaming mocks the AnswerStreaming method
func (m *MockLanguageModel) AnswerStreaming(ctx context.Context, document string, history []entity.ChatMessage, question string) (<-chan entity.StreamChunk, error) {
	if m.AnswerStreamingFunc != nil {
		return m.AnswerStreamingFunc(ctx, document, history, question)
	}
	return Stream("ok"), nil
}

// Stream returns a closed channel carrying parts followed by the end chunk
func Stream(parts ...string) <-chan entity.StreamChunk {
	ch := make(chan entity.StreamChunk, len(parts)+1)
	for _, p := range parts {
		ch <- entity.StreamChunk{Text: p}
	}
	ch <- entity.StreamChunk{IsEnd: true}
	close(ch)
	return ch
}
