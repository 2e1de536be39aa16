package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// documentUsecase implements DocumentUsecase: extract, summarize chunk by
// chunk, store the document and open an empty chat for it.
type documentUsecase struct {
	extractor domain.TextExtractor
	model     domain.LanguageModel
	docRepo   domain.DocumentRepository
	chatRepo  domain.ChatRepository
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewDocumentUsecase creates the document use case
func NewDocumentUsecase(
	extractor domain.TextExtractor,
	model domain.LanguageModel,
	docRepo domain.DocumentRepository,
	chatRepo domain.ChatRepository,
	logger *slog.Logger,
) domain.DocumentUsecase {
	return &documentUsecase{
		extractor: extractor,
		model:     model,
		docRepo:   docRepo,
		chatRepo:  chatRepo,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Summarize stores the document and returns its summary. The summary may be
// empty when no chunk produced one.
func (u *documentUsecase) Summarize(ctx context.Context, req *domain.UploadedDocument) (*domain.SummarizeResult, error) {
	if err := validateUpload(req); err != nil {
		return nil, err
	}

	logger := u.logger.With("user_id", req.UserID, "title", req.Title)

	text, err := u.extractor.Extract(req.Title, req.Content)
	if err != nil {
		logger.Warn("text extraction failed", "error", err)
		return nil, domain.NewInternalError(err)
	}
	text = CleanText(text)

	chunks := ChunkText(text, chunkChars)
	logger.Debug("document split", "chars", len(text), "chunks", len(chunks))

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		s, err := u.model.Summarize(ctx, chunk)
		if err != nil {
			if ctx.Err() != nil {
				return nil, domain.NewInternalError(ctx.Err())
			}
			logger.Warn("chunk produced no summary", "chunk", i, "error", err)
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			summaries = append(summaries, s)
		}
	}
	summary := strings.TrimSpace(strings.Join(summaries, " "))

	doc := &entity.Document{
		SessionID: u.newID(),
		UserID:    req.UserID,
		Title:     req.Title,
		Time:      req.Time,
		FullText:  text,
		Summary:   summary,
		CreatedAt: u.now(),
	}
	if err := u.docRepo.Create(ctx, doc); err != nil {
		return nil, domain.NewInternalError(err)
	}

	thread := &entity.ChatThread{
		SessionID:     doc.SessionID,
		DocumentTitle: doc.Title,
		UserID:        doc.UserID,
		History:       []entity.ChatMessage{},
	}
	if err := u.chatRepo.Create(ctx, thread); err != nil {
		return nil, domain.NewInternalError(err)
	}

	logger.Info("document summarized", "session_id", doc.SessionID, "summary_chars", len(summary))

	return &domain.SummarizeResult{
		SessionID: doc.SessionID,
		Summary:   summary,
	}, nil
}

// List returns the user's documents, newest first
func (u *documentUsecase) List(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
	if userID == "" {
		return nil, domain.NewInvalidInputError("User ID is required")
	}

	docs, err := u.docRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	records := make([]entity.DocumentRecord, len(docs))
	for i, d := range docs {
		records[i] = d.Record()
	}
	return records, nil
}

func validateUpload(req *domain.UploadedDocument) error {
	if req == nil || req.UserID == "" {
		return domain.NewInvalidInputError("User ID is required")
	}
	if req.Title == "" {
		return domain.NewInvalidInputError("No selected file")
	}
	return nil
}
