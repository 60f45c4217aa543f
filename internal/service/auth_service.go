package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"insurance-portal/internal/model"
)

// UserStore is the persistence boundary the authentication core depends on.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login authenticates username/password and issues a session token. Sessions
// are stateless: nothing is persisted, the token is the only artifact.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.TokenResponse, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return model.TokenResponse{}, err
	}

	if !VerifyCredentials(user.Username, password, user.PasswordHash) {
		return model.TokenResponse{}, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(model.SessionClaims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        model.AuthUser{ID: user.ID, Username: user.Username, Role: user.Role},
	}, nil
}

// Register creates a new user with role "user". There is no auto-login; the
// client logs in separately. The existence check is a fast path only, the
// store's uniqueness constraint is what actually prevents duplicates.
func (s *AuthService) Register(ctx context.Context, username string, password string) (model.AuthUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.AuthUser{}, model.ErrInvalidInput
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return model.AuthUser{}, err
	}
	if exists {
		return model.AuthUser{}, model.ErrUserAlreadyExists
	}

	hash, err := HashCredentials(username, password)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("hash credentials: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if err != nil {
		// A concurrent duplicate registration loses the race at the store.
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.AuthUser{}, model.ErrUserAlreadyExists
		}
		return model.AuthUser{}, err
	}

	return model.AuthUser{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id int64) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.AuthUser{}, err
	}
	return model.AuthUser{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}
