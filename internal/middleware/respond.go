package middleware

import (
	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// AbortWithAppError stops the chain and writes appErr in the standard error shape.
func AbortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, dto.ErrorResponse{
		Code:      string(appErr.Code),
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: GetRequestID(c.Request.Context()),
	})
}
