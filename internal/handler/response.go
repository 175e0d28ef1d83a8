package handler

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/adityachauhan/aira-apiserver/internal/domain"
	"github.com/adityachauhan/aira-apiserver/internal/handler/dto"
)

// ErrorResponse maps a domain error to the caller-facing status and the
// `{"error": ...}` envelope. Internal detail never leaves the process.
func ErrorResponse(c *app.RequestContext, err error) {
	message := "an error occurred"
	if domainErr, ok := err.(*domain.DomainError); ok {
		message = domainErr.UserMessage()
	}

	switch {
	case domain.IsInvalidInput(err):
		c.JSON(consts.StatusBadRequest, dto.ErrorResponse{Error: message})
	case domain.IsRateLimited(err):
		c.JSON(consts.StatusTooManyRequests, dto.ErrorResponse{Error: message})
	case domain.IsQuotaExceeded(err):
		c.JSON(consts.StatusPaymentRequired, dto.ErrorResponse{Error: message})
	case domain.IsNotConfigured(err), domain.IsUpstream(err):
		c.JSON(consts.StatusInternalServerError, dto.ErrorResponse{Error: message})
	default:
		c.JSON(consts.StatusInternalServerError, dto.ErrorResponse{Error: "an error occurred"})
	}
}

// BadRequestResponse returns a 400 with the given message.
func BadRequestResponse(c *app.RequestContext, message string) {
	c.JSON(consts.StatusBadRequest, dto.ErrorResponse{Error: message})
}
