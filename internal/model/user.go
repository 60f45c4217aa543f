package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthUser is the public projection of a User, safe to return to clients.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SessionClaims are the identity facts carried inside a signed token.
// They are never persisted server-side; a fresh SessionID is generated on
// every login.
type SessionClaims struct {
	UserID    int64  `json:"sub"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	SessionID string `json:"sid"`
}

// Identity is the resolved caller attached to the request context after the
// authorization guard has re-checked the token claims against the user store.
type Identity struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
}

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	User        AuthUser `json:"user"`
}
