package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a valid JWT is presented in the wrong role.
var ErrWrongTokenType = errors.New("unexpected token type")

// TokenClaims are the claims carried by both access and refresh tokens.
type TokenClaims struct {
	Type    string `json:"type"`
	TokenID string `json:"tid,omitempty"` // refresh tokens only
	jwt.RegisteredClaims
}

// GenerateJWT signs an access token for userID.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	return sign(userID, "", TokenTypeAccess, secret, time.Now().Add(expiryDuration), issuer)
}

// GenerateRefreshJWT signs a refresh token bound to the stored record tokenID.
func GenerateRefreshJWT(userID, tokenID, secret string, expiresAt time.Time, issuer string) (string, error) {
	return sign(userID, tokenID, TokenTypeRefresh, secret, expiresAt, issuer)
}

func sign(userID, tokenID, tokenType, secret string, expiresAt time.Time, issuer string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Type:    tokenType,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and
// standard claims, and checks it was issued as expectedType.
func ParseAndValidateJWT(tokenString string, secretKey string, expectedType string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Type != expectedType || claims.Subject == "" {
		return nil, ErrWrongTokenType
	}
	if expectedType == TokenTypeRefresh && claims.TokenID == "" {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
