package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/config"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_RejectsInvalidInput(t *testing.T) {
	svc := NewAuthService(nil, &config.Config{}, nil, nil)

	tests := []struct {
		name string
		req  dto.SignupRequest
	}{
		{"missing name", dto.SignupRequest{Email: "a@b.com", Password: "longenough"}},
		{"whitespace name", dto.SignupRequest{Name: "  ", Email: "a@b.com", Password: "longenough"}},
		{"short password", dto.SignupRequest{Name: "Ada", Email: "a@b.com", Password: "short"}},
		{"missing email", dto.SignupRequest{Name: "Ada", Password: "longenough"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(&tt.req)
			assert.Error(t, err)
		})
	}
}

func TestGoogleSignIn_RequiresToken(t *testing.T) {
	svc := NewAuthService(nil, &config.Config{}, nil, nil)

	_, err := svc.GoogleSignIn(&dto.GoogleSignInRequest{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id token")
}

func TestGenerateAccessToken_ClaimsRoundTrip(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: 15 * time.Minute,
	}
	svc := NewAuthService(nil, cfg, nil, nil)

	user := &models.User{
		ID:    uuid.New(),
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}

	signed, err := svc.generateAccessToken(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, user.Name, claims["name"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.JWTAccessExpiry), exp.Time, time.Minute)
}

func TestHashToken_DeterministicAndOpaque(t *testing.T) {
	h1 := hashToken("refresh-token-value")
	h2 := hashToken("refresh-token-value")
	h3 := hashToken("different-token")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.NotContains(t, h1, "refresh")
	assert.Len(t, h1, 64)
}
