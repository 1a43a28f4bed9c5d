package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/yatube/internal/app/models"
)

func newTestJWTService(accessTokenExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "yatube-test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 42, Username: "leo_tolstoy"}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "leo_tolstoy", claims.Username)
	assert.Equal(t, "yatube-test", claims.Issuer)
}

func TestGenerateTokenPair_RefreshTokensAreUnique(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 1, Username: "author"}

	_, first, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	_, second, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 7, Username: "author"}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "yatube-test",
	})

	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	user := &models.User{ID: 7, Username: "author"}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateAndExtractClaims_EmptyToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAndExtractClaims_RejectsClaimsWithoutIdentity(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	// A token for a user with no ID parses fine but carries no usable identity
	accessToken, _, _, _, err := svc.GenerateTokenPair(&models.User{ID: 0, Username: "ghost"})
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetRefreshTokenExpiry(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	expiry := svc.GetRefreshTokenExpiry()
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiry, time.Minute)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   bool
	}{
		{name: "with bearer prefix", header: "Bearer abc123", wantToken: "abc123"},
		{name: "bare token", header: "abc123", wantToken: "abc123"},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
