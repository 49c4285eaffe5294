package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	identity := Identity{
		UserID:      uuid.New(),
		Username:    "jdoe",
		DisplayName: "Jane Doe",
		IsAdmin:     true,
	}

	token, err := svc.Generate(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, claims.UserID)
	assert.Equal(t, identity.Username, claims.Username)
	assert.Equal(t, identity.DisplayName, claims.DisplayName)
	assert.True(t, claims.IsAdmin)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	otherSvc := NewJWTService("ffffffffffffffffffffffffffffffff", time.Hour)

	token, err := svc.Generate(Identity{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = otherSvc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService(testSecret, -time.Minute)

	token, err := svc.Generate(Identity{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}
