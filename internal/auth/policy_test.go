package auth

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "timekeep/pkg/errors"
)

func TestResolveTargetUser(t *testing.T) {
	admin := Identity{UserID: uuid.New(), IsAdmin: true}
	member := Identity{UserID: uuid.New()}
	other := uuid.New()

	got, err := ResolveTargetUser(member, nil)
	require.NoError(t, err)
	assert.Equal(t, member.UserID, got)

	got, err = ResolveTargetUser(member, &member.UserID)
	require.NoError(t, err)
	assert.Equal(t, member.UserID, got)

	_, err = ResolveTargetUser(member, &other)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	got, err = ResolveTargetUser(admin, &other)
	require.NoError(t, err)
	assert.Equal(t, other, got)
}

func TestCanTouchEntry(t *testing.T) {
	owner := Identity{UserID: uuid.New()}
	admin := Identity{UserID: uuid.New(), IsAdmin: true}
	stranger := Identity{UserID: uuid.New()}

	assert.NoError(t, CanTouchEntry(owner, owner.UserID))
	assert.NoError(t, CanTouchEntry(admin, owner.UserID))

	err := CanTouchEntry(stranger, owner.UserID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestCheckUserUpdate_SelfGuards(t *testing.T) {
	admin := Identity{UserID: uuid.New(), IsAdmin: true}
	falseVal := false
	trueVal := true

	err := CheckUserUpdate(admin, admin.UserID, &falseVal, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	err = CheckUserUpdate(admin, admin.UserID, nil, &falseVal)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	// Keeping admin/active set is fine for self.
	assert.NoError(t, CheckUserUpdate(admin, admin.UserID, &trueVal, &trueVal))

	// Demoting someone else is a policy decision left to the admin.
	assert.NoError(t, CheckUserUpdate(admin, uuid.New(), &falseVal, &falseVal))
}

func TestCheckPasswordChange(t *testing.T) {
	admin := Identity{UserID: uuid.New(), IsAdmin: true}
	member := Identity{UserID: uuid.New()}

	requireCurrent, err := CheckPasswordChange(member, member.UserID)
	require.NoError(t, err)
	assert.True(t, requireCurrent, "self-service change must verify the current password")

	_, err = CheckPasswordChange(member, admin.UserID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	requireCurrent, err = CheckPasswordChange(admin, member.UserID)
	require.NoError(t, err)
	assert.False(t, requireCurrent)

	requireCurrent, err = CheckPasswordChange(admin, admin.UserID)
	require.NoError(t, err)
	assert.False(t, requireCurrent)
}
