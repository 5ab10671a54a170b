package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountd/internal/models"
)

func TestLogin_Success(t *testing.T) {
	auth := NewAuthService()
	hash, err := auth.HashPassword("Secr3t!")
	require.NoError(t, err)

	users := &fakeUserRepo{byLogin: &models.User{
		ID:           7,
		Login:        "alice",
		Email:        "alice@x.com",
		PasswordHash: hash,
	}}
	svc := NewUserService(users, auth)

	user, err := svc.Login(context.Background(), "alice", "Secr3t!")
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "alice", user.Login)
	assert.Equal(t, "alice@x.com", user.Email)
}

func TestLogin_UniformError(t *testing.T) {
	auth := NewAuthService()
	hash, err := auth.HashPassword("Secr3t!")
	require.NoError(t, err)

	// неизвестный логин и неверный пароль дают один и тот же вид ошибки
	unknown := NewUserService(&fakeUserRepo{byLogin: nil}, auth)
	_, errUnknown := unknown.Login(context.Background(), "ghost", "whatever")

	wrongPass := NewUserService(&fakeUserRepo{byLogin: &models.User{
		ID: 7, Login: "alice", PasswordHash: hash,
	}}, auth)
	_, errWrong := wrongPass.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
}

func TestLogin_EmptyStoredHash(t *testing.T) {
	users := &fakeUserRepo{byLogin: &models.User{ID: 7, Login: "alice"}}
	svc := NewUserService(users, NewAuthService())

	_, err := svc.Login(context.Background(), "alice", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListUsers_ClampsPaging(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewUserService(users, NewAuthService())

	_, err := svc.ListUsers(context.Background(), -5, -1)
	require.NoError(t, err)
	_, err = svc.ListUsers(context.Background(), 100000, 0)
	require.NoError(t, err)
}
