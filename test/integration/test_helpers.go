//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"insurance-portal/internal/config"
	"insurance-portal/internal/handler"
	"insurance-portal/internal/middleware"
	"insurance-portal/internal/model"
	"insurance-portal/internal/router"
	"insurance-portal/internal/service"
)

// memStores back the wired router with in-memory implementations of the
// service store interfaces, so the suite runs without PostgreSQL.
type memStores struct {
	mu       sync.Mutex
	users    map[int64]model.User
	policies map[int64]model.Policy
	claims   []model.Claim
	nextUser int64
	nextClm  int64
}

func newMemStores() *memStores {
	return &memStores{
		users:    map[int64]model.User{},
		policies: map[int64]model.Policy{},
		nextUser: 1,
		nextClm:  1,
	}
}

func (s *memStores) FindByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (s *memStores) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Username, strings.TrimSpace(username)) {
			return user, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memStores) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	return err == nil, nil
}

func (s *memStores) Create(ctx context.Context, u model.User) (model.User, error) {
	if exists, _ := s.ExistsByUsername(ctx, u.Username); exists {
		return model.User{}, model.ErrUserAlreadyExists
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	u.ID = s.nextUser
	u.CreatedAt = now
	u.UpdatedAt = now
	s.nextUser++
	s.users[u.ID] = u
	return u, nil
}

func (s *memStores) FindByUserAndID(_ context.Context, userID int64, policyID int64) (model.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	policy, ok := s.policies[policyID]
	if !ok || policy.UserID != userID {
		return model.Policy{}, model.ErrPolicyNotFound
	}
	return policy, nil
}

func (s *memStores) FindByUser(_ context.Context, userID int64) (model.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, policy := range s.policies {
		if policy.UserID == userID {
			return policy, nil
		}
	}
	return model.Policy{}, model.ErrPolicyNotFound
}

func (s *memStores) Insert(_ context.Context, c model.Claim) (model.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	c.ID = s.nextClm
	c.CreatedAt = now
	c.UpdatedAt = now
	s.nextClm++
	s.claims = append(s.claims, c)
	return c, nil
}

func (s *memStores) FindByIDAndUser(_ context.Context, id int64, userID int64) (model.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, claim := range s.claims {
		if claim.ID == id && claim.UserID == userID {
			return claim, nil
		}
	}
	return model.Claim{}, model.ErrClaimNotFound
}

func (s *memStores) FindAllByUser(_ context.Context, userID int64) ([]model.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Claim, 0)
	for _, claim := range s.claims {
		if claim.UserID == userID {
			out = append(out, claim)
		}
	}
	return out, nil
}

func (s *memStores) seedPolicy(p model.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[p.ID] = p
}

func newPortalServer(t *testing.T, aiURL string) (*httptest.Server, *memStores) {
	t.Helper()

	stores := newMemStores()

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "test-secret",
		JWTAccessTTL:     15 * time.Minute,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     1000,
		AuthRateLimitRPM: 1000,
		AIServiceURL:     aiURL,
		AIRequestTimeout: 5 * time.Second,
		UploadDir:        t.TempDir(),
		MaxUploadSize:    10 * 1024 * 1024,
	}

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTAccessTTL)
	authService := service.NewAuthService(stores, tokenService)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, stores)
	claimService := service.NewClaimService(stores, stores)
	policyService := service.NewPolicyService(stores)
	chatService := service.NewChatService(cfg.AIServiceURL, cfg.AIRequestTimeout)
	documentService, err := service.NewDocumentService(cfg.UploadDir, cfg.AIServiceURL, cfg.AIRequestTimeout)
	require.NoError(t, err)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Claim:  handler.NewClaimHandler(claimService),
		Policy: handler.NewPolicyHandler(policyService),
		Chat:   handler.NewChatHandler(chatService),
		Admin:  handler.NewAdminHandler(documentService, cfg.MaxUploadSize),
	})

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)
	return server, stores
}

// seedAdmin provisions an admin account directly in the store, mirroring how
// admins are created in production (external administration, not the register
// endpoint).
func seedAdmin(t *testing.T, stores *memStores, username string, password string) {
	t.Helper()

	hash, err := service.HashCredentials(username, password)
	require.NoError(t, err)

	_, err = stores.Create(context.Background(), model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	require.NoError(t, err)
}

func login(t *testing.T, serverURL string, username string, password string) string {
	t.Helper()

	resp := postJSON(t, serverURL+"/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens model.TokenResponse
	decodeData(t, resp, &tokens)
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func postJSON(t *testing.T, url string, payload any, accessToken string) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string, accessToken string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func registerAndLogin(t *testing.T, serverURL string, username string, password string) (model.AuthUser, string) {
	t.Helper()

	registerResp := postJSON(t, serverURL+"/api/v1/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, registerResp.StatusCode)

	var user model.AuthUser
	decodeData(t, registerResp, &user)

	loginResp := postJSON(t, serverURL+"/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	var tokens model.TokenResponse
	decodeData(t, loginResp, &tokens)
	require.NotEmpty(t, tokens.AccessToken)

	return user, tokens.AccessToken
}
