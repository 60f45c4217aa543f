package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-portal/internal/model"
)

func newTestAuthService() (*AuthService, *fakeUserStore, *TokenService) {
	users := newFakeUserStore()
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(users, tokens), users, tokens
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", registered.Username)
	assert.Equal(t, model.RoleUser, registered.Role)
	assert.NotZero(t, registered.ID)

	result, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, registered.ID, result.User.ID)

	claims, err := tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.SessionID)
}

func TestAuthService_Register_NoAutoLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()

	registered, err := svc.Register(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	// Registration returns the public user view only; no token is issued.
	assert.Equal(t, model.AuthUser{ID: registered.ID, Username: "alice", Role: model.RoleUser}, registered)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other-password")
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
	assert.Len(t, users.users, 1)
}

func TestAuthService_RegisterDuplicate_StoreConstraintRace(t *testing.T) {
	// The fast-path existence check can miss a concurrent registration; the
	// store's uniqueness constraint still has to come back as AlreadyExists.
	users := newFakeUserStore()
	svc := NewAuthService(racingUserStore{users}, NewTokenService("test-secret", time.Hour))

	_, err := svc.Register(context.Background(), "alice", "secret1")
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), "nobody", "secret1")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestAuthService_RegisterEmptyInput(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secret1")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestAuthService_FreshSessionIDPerLogin(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	first, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	firstClaims, err := tokens.Verify(first.AccessToken)
	require.NoError(t, err)
	secondClaims, err := tokens.Verify(second.AccessToken)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.SessionID, secondClaims.SessionID)
}

// racingUserStore simulates a duplicate registration that lands between the
// existence check and the insert.
type racingUserStore struct {
	*fakeUserStore
}

func (racingUserStore) ExistsByUsername(context.Context, string) (bool, error) {
	return false, nil
}

func (racingUserStore) Create(context.Context, model.User) (model.User, error) {
	return model.User{}, model.ErrUserAlreadyExists
}
