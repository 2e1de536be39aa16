package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// maxMessageChars bounds one user message
const maxMessageChars = 10000

// chatUsecase implements ChatUsecase. It grounds every answer in the stored
// document text and keeps the transcript in the chat repository.
type chatUsecase struct {
	model    domain.LanguageModel
	docRepo  domain.DocumentRepository
	chatRepo domain.ChatRepository
	logger   *slog.Logger
}

// NewChatUsecase creates the chat use case
func NewChatUsecase(
	model domain.LanguageModel,
	docRepo domain.DocumentRepository,
	chatRepo domain.ChatRepository,
	logger *slog.Logger,
) domain.ChatUsecase {
	return &chatUsecase{
		model:    model,
		docRepo:  docRepo,
		chatRepo: chatRepo,
		logger:   logger,
	}
}

// History returns the stored transcript of a session
func (u *chatUsecase) History(ctx context.Context, sessionID string) (*entity.ChatThread, error) {
	thread, err := u.chatRepo.Get(ctx, sessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("Chat session not found")
		}
		return nil, domain.NewInternalError(err)
	}
	return thread, nil
}

// Chat answers message from the session's document and appends both turns
// to the transcript. The first answered turn marks the document as chatted.
func (u *chatUsecase) Chat(ctx context.Context, sessionID, message string) (string, error) {
	if err := validateChatRequest(sessionID, message); err != nil {
		return "", err
	}

	logger := u.logger.With("session_id", sessionID)

	thread, err := u.chatRepo.Get(ctx, sessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.NewNotFoundError("Invalid or expired chat session")
		}
		return "", domain.NewInternalError(err)
	}

	doc, err := u.docRepo.Get(ctx, sessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.NewNotFoundError("Document context not found")
		}
		return "", domain.NewInternalError(err)
	}

	streamCh, err := u.model.AnswerStreaming(ctx, doc.FullText, thread.History, message)
	if err != nil {
		logger.Warn("model request failed", "error", err)
		return "", domain.NewInternalError(fmt.Errorf("Failed to get a response from the AI: %v", err))
	}

	var sb strings.Builder
	for chunk := range streamCh {
		if chunk.Error != "" {
			logger.Warn("model stream failed", "error", chunk.Error)
			return "", domain.NewInternalError(fmt.Errorf("Failed to get a response from the AI: %s", chunk.Error))
		}
		sb.WriteString(chunk.Text)
	}
	reply := sb.String()

	if err := u.chatRepo.Append(ctx, sessionID,
		entity.ChatMessage{Role: entity.RoleUser, Content: message},
		entity.ChatMessage{Role: entity.RoleAssistant, Content: reply},
	); err != nil {
		return "", domain.NewInternalError(err)
	}

	if !doc.HasChat {
		if err := u.docRepo.MarkChatted(ctx, sessionID); err != nil {
			return "", domain.NewInternalError(err)
		}
		logger.Info("first chat turn on document")
	}

	return reply, nil
}

func validateChatRequest(sessionID, message string) error {
	if sessionID == "" || strings.TrimSpace(message) == "" {
		return domain.NewInvalidInputError("Missing session_id or message")
	}
	if len(message) > maxMessageChars {
		return domain.NewInvalidInputError(fmt.Sprintf("message too long (max %d characters)", maxMessageChars))
	}
	return nil
}
