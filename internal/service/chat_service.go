package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"insurance-portal/internal/model"
)

// ChatService proxies portal chat messages to the AI collaborator. The
// assistant's behavior is opaque to this service; its reply is passed through
// unmodified. Any transport failure or non-2xx answer surfaces as
// ErrUpstreamUnavailable, never as an auth or claim error.
type ChatService struct {
	baseURL string
	client  *http.Client
}

func NewChatService(baseURL string, timeout time.Duration) *ChatService {
	return &ChatService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type chatUpstreamRequest struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Send forwards the caller's identity, session and bearer token alongside the
// message, so the assistant can call back into the portal API on the user's
// behalf.
func (s *ChatService) Send(ctx context.Context, identity model.Identity, bearerToken string, message string) (json.RawMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, model.ErrInvalidInput
	}

	payload, err := json.Marshal(chatUpstreamRequest{
		UserID:    identity.UserID,
		Username:  identity.Username,
		Role:      identity.Role,
		SessionID: identity.SessionID,
		Message:   message,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", model.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", model.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: malformed response", model.ErrUpstreamUnavailable)
	}

	return body, nil
}
