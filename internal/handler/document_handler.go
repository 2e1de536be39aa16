package handler

import (
	"context"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/handler/dto"
	"github.com/legalease/lexctl/pkg/logger"
)

// documentIcon is the icon hint sent with every listed document
const documentIcon = "fas fa-file-alt"

// DocumentHandler serves document upload and listing
type DocumentHandler struct {
	usecase domain.DocumentUsecase
}

// NewDocumentHandler creates the document handler
func NewDocumentHandler(usecase domain.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{usecase: usecase}
}

// Summarize handles POST /summarize (multipart: user_id, time, file)
func (h *DocumentHandler) Summarize(ctx context.Context, c *app.RequestContext) {
	log := logger.FromContext(ctx)

	userID := string(c.FormValue("user_id"))
	if userID == "" {
		BadRequestResponse(c, "User ID is required")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		log.Debug("multipart file missing", "error", err)
		BadRequestResponse(c, "No file part in the request")
		return
	}
	if fh.Filename == "" {
		BadRequestResponse(c, "No selected file")
		return
	}

	f, err := fh.Open()
	if err != nil {
		ErrorResponse(c, domain.NewInternalError(err))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		ErrorResponse(c, domain.NewInternalError(err))
		return
	}

	log.Info("summarize request received",
		"user_id", userID,
		"file", fh.Filename,
		"size", len(content),
	)

	res, err := h.usecase.Summarize(ctx, &domain.UploadedDocument{
		UserID:      userID,
		Title:       fh.Filename,
		Time:        string(c.FormValue("time")),
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		log.Error("summarize failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	c.JSON(consts.StatusOK, dto.SummarizeResponse{
		Summary:   res.Summary,
		SessionID: res.SessionID,
	})
}

// ListDocuments handles GET /documents/:user_id
func (h *DocumentHandler) ListDocuments(ctx context.Context, c *app.RequestContext) {
	records, err := h.usecase.List(ctx, c.Param("user_id"))
	if err != nil {
		logger.FromContext(ctx).Error("list documents failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	items := make([]dto.DocumentItem, len(records))
	for i, r := range records {
		items[i] = dto.DocumentItem{
			SessionID: r.SessionID,
			Title:     r.Title,
			Time:      r.Time,
			Icon:      documentIcon,
			HasChat:   r.HasChat,
		}
	}
	c.JSON(consts.StatusOK, items)
}
