package domain

import (
	"context"

	"github.com/legalease/lexctl/internal/domain/entity"
)

// ============ Dev backend ports ============

// TextExtractor turns an uploaded file into plain text
type TextExtractor interface {
	// Extract picks the format from the filename. Unsupported formats fail.
	Extract(filename string, data []byte) (string, error)
}

// LanguageModel stands in for the summarization and question answering service
type LanguageModel interface {
	// Summarize condenses one chunk of document text
	Summarize(ctx context.Context, chunk string) (string, error)

	// AnswerStreaming answers question from document. The channel is closed
	// after the chunk with IsEnd set.
	AnswerStreaming(ctx context.Context, document string, history []entity.ChatMessage, question string) (<-chan entity.StreamChunk, error)
}
