package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"insurance-portal/internal/model"
)

// TokenService issues and verifies HMAC-signed session tokens. The signing
// key is process-wide configuration; rotating it invalidates every
// outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Issue(claims model.SessionClaims) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(claims.UserID, 10),
		"username": claims.Username,
		"role":     claims.Role,
		"sid":      claims.SessionID,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Verify returns the embedded session claims, or ErrInvalidToken for every
// failure mode: bad signature, wrong signing method, malformed payload or
// elapsed expiry. Callers cannot tell which case occurred.
func (s *TokenService) Verify(tokenString string) (*model.SessionClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	sub, _ := claimsMap["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return nil, model.ErrInvalidToken
	}

	claims := &model.SessionClaims{UserID: userID}
	claims.Username, _ = claimsMap["username"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	claims.SessionID, _ = claimsMap["sid"].(string)

	if claims.Username == "" || claims.SessionID == "" {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}
