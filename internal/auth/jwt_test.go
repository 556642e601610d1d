package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DineshVarikuppala/Dukanam/internal/config"
)

func TestGenerateAndParseToken(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "unit-test-secret"}

	token, err := GenerateToken(cfg, 42, "asha@test.local", "CUSTOMER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "asha@test.local", claims.Email)
	require.Equal(t, "CUSTOMER", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(&config.JWTConfig{Secret: "right"}, 1, "a@b.c", "CUSTOMER")
	require.NoError(t, err)

	_, err = ParseToken(&config.JWTConfig{Secret: "wrong"}, token)
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(&config.JWTConfig{Secret: "s"}, "not-a-token")
	require.Error(t, err)
}
