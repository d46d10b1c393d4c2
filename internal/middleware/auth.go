package middleware

import (
	"log/slog"
	"strings"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer access tokens.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			AbortWithAppError(c, apperrors.New(apperrors.CodeMissingAccessToken))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			AbortWithAppError(c, apperrors.New(apperrors.CodeMissingAccessToken))
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret, utils.TokenTypeAccess)
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			AbortWithAppError(c, apperrors.New(apperrors.CodeInvalidAccessToken))
			return
		}

		userID := claims.Subject
		ctx := WithUserID(c.Request.Context(), userID)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID)))
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}
