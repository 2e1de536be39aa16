package handler

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/handler/dto"
)

// internalErrorMessage is sent for errors that are not domain errors
const internalErrorMessage = "Internal server error"

// ErrorResponse writes {"error": message} with a status chosen by error kind
func ErrorResponse(c *app.RequestContext, err error) {
	message := domain.UserMessage(err, internalErrorMessage)

	switch {
	case domain.IsInvalidInput(err):
		c.JSON(consts.StatusBadRequest, dto.ErrorResponse{Error: message})
	case domain.IsNotFound(err):
		c.JSON(consts.StatusNotFound, dto.ErrorResponse{Error: message})
	case domain.IsInternalError(err):
		// the message carries the cause, as the hosted service reports it
		c.JSON(consts.StatusInternalServerError, dto.ErrorResponse{Error: message})
	default:
		c.JSON(consts.StatusInternalServerError, dto.ErrorResponse{Error: internalErrorMessage})
	}
}

// BadRequestResponse writes a 400 with message
func BadRequestResponse(c *app.RequestContext, message string) {
	c.JSON(consts.StatusBadRequest, dto.ErrorResponse{Error: message})
}
