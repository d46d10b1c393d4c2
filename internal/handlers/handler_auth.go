package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/SscSPs/opahours_backend/internal/middleware"
	"github.com/SscSPs/opahours_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles bootstrap, login and session requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	userService portssvc.UserSvcFacade
	cookieName  string
	cookiePath  string
	secure      bool
}

func newAuthHandler(as portssvc.AuthSvcFacade, us portssvc.UserSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		authService: as,
		userService: us,
		cookieName:  cfg.RefreshTokenCookieName,
		cookiePath:  cfg.RefreshTokenCookiePath,
		secure:      cfg.IsProduction,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, limit gin.HandlerFunc) {
	h := newAuthHandler(services.Auth, services.User, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/bootstrap", h.bootstrap)
		auth.POST("/login", limit, h.login)
		auth.POST("/refresh", limit, h.refresh)
		auth.POST("/logout", h.logout)
		auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), h.me)
	}
}

func (h *authHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	if h.secure {
		c.SetSameSite(http.SameSiteStrictMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(h.cookieName, token, maxAge, h.cookiePath, "", h.secure, true)
}

func (h *authHandler) clearRefreshCookie(c *gin.Context) {
	if h.secure {
		c.SetSameSite(http.SameSiteStrictMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cookieName, "", -1, h.cookiePath, "", h.secure, true)
}

func (h *authHandler) writeSession(c *gin.Context, result *portssvc.AuthResult) {
	h.setRefreshCookie(c, result.RefreshToken, result.RefreshExpiresAt)
	c.JSON(http.StatusOK, dto.AuthResponse{
		User:        dto.ToUserResponse(result.User),
		AccessToken: result.AccessToken,
	})
}

// bootstrap godoc
// @Summary Create the administrator
// @Description Creates the single user of the system. Fails once a user exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "AUTH_SINGLE_USER_MODE or AUTH_EMAIL_ALREADY_EXISTS"
// @Router /auth/bootstrap [post]
func (h *authHandler) bootstrap(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary User login
// @Description Checks credentials, returns an access token and sets the refresh cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "AUTH_USER_INACTIVE"
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeSession(c, result)
}

// refresh godoc
// @Summary Rotate the refresh token
// @Description Reads the refresh token from the body or the cookie and issues a new pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest false "Refresh token (optional when the cookie is sent)"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshRequest
	// the body is optional
	_ = c.ShouldBindJSON(&req)
	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(h.cookieName)
	}
	if token == "" {
		middleware.AbortWithAppError(c, apperrors.New(apperrors.CodeMissingRefreshToken))
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		h.clearRefreshCookie(c)
		respondError(c, err)
		return
	}
	h.writeSession(c, result)
}

// logout godoc
// @Summary Log out
// @Description Revokes the current refresh token and clears the cookie. Always succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.OkResponse
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	var req dto.RefreshRequest
	_ = c.ShouldBindJSON(&req)
	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(h.cookieName)
	}
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Logout could not revoke session", slog.String("error", err.Error()))
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, dto.OkResponse{Ok: true})
}

// me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
