package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := NewManager("test-secret", time.Minute)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, "alice@example.com", "Alice", "host")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "host", claims.Role)
	assert.Equal(t, "collabsphere-ai", claims.Issuer)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Minute).GenerateAccessToken(uuid.New(), "a@b.c", "A", "participant")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Minute).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)
	token, err := manager.GenerateAccessToken(uuid.New(), "a@b.c", "A", "participant")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Minute).ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
