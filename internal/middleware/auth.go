package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"insurance-portal/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (*model.SessionClaims, error)
}

type userResolver interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
}

type contextKey string

const identityContextKey contextKey = "identity"

type AuthMiddleware struct {
	verifier tokenVerifier
	users    userResolver
}

func NewAuthMiddleware(verifier tokenVerifier, users userResolver) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, users: users}
}

// RequireAuth verifies the bearer token and then re-resolves the user record,
// comparing id, username and role against the freshly loaded row. A token
// whose claims no longer match stored state (a role change, a deleted user)
// is rejected, which gives the stateless session design revocation-like
// behavior. All denial paths produce the same response body so a probing
// client cannot tell a missing token from an invalid or stale one.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeDenied(w, "UNAUTHORIZED")
			return
		}

		token := strings.TrimSpace(header[7:])
		claims, err := m.verifier.Verify(token)
		if err != nil {
			writeDenied(w, "UNAUTHORIZED")
			return
		}

		user, err := m.users.FindByID(r.Context(), claims.UserID)
		if err != nil {
			writeDenied(w, "UNAUTHORIZED")
			return
		}

		if user.ID != claims.UserID || user.Username != claims.Username || user.Role != claims.Role {
			writeDenied(w, "UNAUTHORIZED")
			return
		}

		identity := &model.Identity{
			UserID:    user.ID,
			Username:  user.Username,
			Role:      user.Role,
			SessionID: claims.SessionID,
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles runs after RequireAuth; the role check is only meaningful once
// the identity check has passed.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, role := range allowedRoles {
		roleSet[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeDenied(w, "UNAUTHORIZED")
				return
			}

			if _, exists := roleSet[strings.ToLower(identity.Role)]; !exists {
				writeDenied(w, "FORBIDDEN")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*model.Identity)
	return identity, ok
}

func writeDenied(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")

	message := "authentication required"
	status := http.StatusUnauthorized
	if code == "FORBIDDEN" {
		message = "insufficient permissions"
		status = http.StatusForbidden
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
