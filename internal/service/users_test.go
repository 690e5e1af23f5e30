package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"photovault/internal/apperr"
)

func newTestUserService() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(repo, zap.NewNop().Sugar()), repo
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "correct horse", FullName: "Alice B",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	got, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc, _ := newTestUserService()
	_, err := svc.Register(context.Background(), RegisterInput{Username: "bob"})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestUserService()
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "abc",
	})
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestRegisterDuplicateUsernameCreatesNothing(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestUserService()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "password2",
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Len(t, repo.users, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "nope")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody", "password1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
