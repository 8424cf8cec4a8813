package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens is the credential pair issued by POST /admin/login.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (t Tokens) Empty() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// Expired reports whether the access token carries an exp claim in the past.
// Opaque tokens without a readable exp are treated as live; the backend has
// the final word and answers 401.
func (t Tokens) Expired(now time.Time) bool {
	exp, ok := ExpiresAt(t.AccessToken)
	if !ok {
		return false
	}
	return !now.Before(exp)
}

// ExpiresAt reads the exp claim without verifying the signature. The client
// never holds the signing key.
func ExpiresAt(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Session is the explicit credential context handed to the API client. It is
// set on login and cleared on sign-out.
type Session struct {
	mu     sync.RWMutex
	tokens Tokens
}

func New(tokens Tokens) *Session {
	return &Session{tokens: tokens}
}

func (s *Session) Set(tokens Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
}

func (s *Session) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *Session) AccessToken() string {
	return s.Tokens().AccessToken
}

// Active reports whether an unexpired access token is held.
func (s *Session) Active(now time.Time) bool {
	t := s.Tokens()
	return t.AccessToken != "" && !t.Expired(now)
}
