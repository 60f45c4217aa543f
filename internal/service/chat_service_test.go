package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-portal/internal/model"
)

func chatIdentity() model.Identity {
	return model.Identity{
		UserID:    1,
		Username:  "alice",
		Role:      model.RoleUser,
		SessionID: "session-1",
	}
}

func TestChatService_ForwardsIdentityAndToken(t *testing.T) {
	var got chatUpstreamRequest
	var gotAuth string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"your policy is active"}`))
	}))
	defer upstream.Close()

	svc := NewChatService(upstream.URL, 5*time.Second)
	reply, err := svc.Send(context.Background(), chatIdentity(), "raw-token", "what is my policy status?")
	require.NoError(t, err)

	assert.JSONEq(t, `{"reply":"your policy is active"}`, string(reply))
	assert.Equal(t, "Bearer raw-token", gotAuth)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, model.RoleUser, got.Role)
	assert.Equal(t, "session-1", got.SessionID)
	assert.Equal(t, "what is my policy status?", got.Message)
}

func TestChatService_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := NewChatService(upstream.URL, 5*time.Second)
	_, err := svc.Send(context.Background(), chatIdentity(), "raw-token", "hello")
	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)
}

func TestChatService_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	upstream.Close()

	svc := NewChatService(upstream.URL, time.Second)
	_, err := svc.Send(context.Background(), chatIdentity(), "raw-token", "hello")
	assert.ErrorIs(t, err, model.ErrUpstreamUnavailable)
}

func TestChatService_EmptyMessage(t *testing.T) {
	svc := NewChatService("http://127.0.0.1:0", time.Second)

	_, err := svc.Send(context.Background(), chatIdentity(), "raw-token", "   ")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
