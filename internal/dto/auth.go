package dto

// LoginRequest carries the credentials for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"owner@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"changeme"`
}

// RefreshRequest lets non-browser clients pass the refresh token in the body
// instead of the cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by login and refresh. The refresh token itself
// travels in an HttpOnly cookie.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}
