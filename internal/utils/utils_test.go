package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/opahours_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCents(t *testing.T) {
	tests := map[int64]string{
		0:     "0.00",
		5:     "0.05",
		44550: "445.50",
		-5:    "-0.05",
		100:   "1.00",
	}
	for cents, want := range tests {
		assert.Equal(t, want, utils.FormatCents(cents))
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

func TestRefreshTokenHash(t *testing.T) {
	hash := utils.HashRefreshToken("token-value")
	assert.Len(t, hash, 64)
	assert.True(t, utils.CompareRefreshTokenHash("token-value", hash))
	assert.False(t, utils.CompareRefreshTokenHash("other", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	access, err := utils.GenerateJWT("user-1", "secret", time.Minute, "opahours")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(access, "secret", utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "opahours", claims.Issuer)

	_, err = utils.ParseAndValidateJWT(access, "secret", utils.TokenTypeRefresh)
	assert.ErrorIs(t, err, utils.ErrWrongTokenType)

	_, err = utils.ParseAndValidateJWT(access, "other-secret", utils.TokenTypeAccess)
	assert.Error(t, err)

	refresh, err := utils.GenerateRefreshJWT("user-1", "tid-1", "refresh-secret", time.Now().Add(time.Hour), "opahours")
	require.NoError(t, err)
	claims, err = utils.ParseAndValidateJWT(refresh, "refresh-secret", utils.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "tid-1", claims.TokenID)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "secret", -time.Minute, "opahours")
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(token, "secret", utils.TokenTypeAccess)
	assert.Error(t, err)
}
