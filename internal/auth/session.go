package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

// SessionClaims is the payload carried in the session cookie.
type SessionClaims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sessions mints and verifies signed session tokens. Tokens are HS256 JWTs
// signed with the configured session secret and delivered as an HttpOnly
// cookie.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

func (s *Sessions) TTL() time.Duration { return s.ttl }

// Issue returns a signed session token for the user.
func (s *Sessions) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses the token and returns its claims. Expired or tampered
// tokens yield ErrInvalidSession.
func (s *Sessions) Verify(tokenStr string) (*SessionClaims, error) {
	if tokenStr == "" {
		return nil, ErrNoSession
	}
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
