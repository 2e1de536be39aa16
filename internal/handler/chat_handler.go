package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/handler/dto"
	"github.com/legalease/lexctl/pkg/logger"
)

// ChatHandler serves chat history and chat turns
type ChatHandler struct {
	usecase domain.ChatUsecase
}

// NewChatHandler creates the chat handler
func NewChatHandler(usecase domain.ChatUsecase) *ChatHandler {
	return &ChatHandler{usecase: usecase}
}

// History handles GET /chat/history/:session_id
func (h *ChatHandler) History(ctx context.Context, c *app.RequestContext) {
	thread, err := h.usecase.History(ctx, c.Param("session_id"))
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	history := make([]dto.ChatMessage, len(thread.History))
	for i, m := range thread.History {
		history[i] = dto.ChatMessage{Role: string(m.Role), Content: m.Content}
	}

	c.JSON(consts.StatusOK, dto.ChatHistoryResponse{
		SessionID:     thread.SessionID,
		DocumentTitle: thread.DocumentTitle,
		History:       history,
	})
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(ctx context.Context, c *app.RequestContext) {
	log := logger.FromContext(ctx)

	var req dto.ChatRequest
	if err := c.BindJSON(&req); err != nil {
		log.Debug("failed to bind chat request", "error", err)
		BadRequestResponse(c, "Missing session_id or message")
		return
	}

	log.Info("chat request received", "session_id", req.SessionID)

	reply, err := h.usecase.Chat(ctx, req.SessionID, req.Message)
	if err != nil {
		log.Error("chat failed", "session_id", req.SessionID, "error", err)
		ErrorResponse(c, err)
		return
	}

	c.JSON(consts.StatusOK, dto.ChatResponse{Response: reply})
}
