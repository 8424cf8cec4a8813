package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "admin-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestExpiresAt_ReadsClaimWithoutKey(t *testing.T) {
	exp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got, ok := ExpiresAt(signedToken(t, exp))
	if !ok {
		t.Fatal("expected exp claim to be readable")
	}
	if !got.Equal(exp) {
		t.Fatalf("unexpected exp: %s", got)
	}
}

func TestExpiresAt_OpaqueToken(t *testing.T) {
	if _, ok := ExpiresAt("not-a-jwt"); ok {
		t.Fatal("expected opaque token to have no exp")
	}
	if _, ok := ExpiresAt(""); ok {
		t.Fatal("expected empty token to have no exp")
	}
}

func TestTokens_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := Tokens{AccessToken: signedToken(t, now.Add(-time.Minute))}
	future := Tokens{AccessToken: signedToken(t, now.Add(time.Hour))}
	opaque := Tokens{AccessToken: "opaque"}

	if !past.Expired(now) {
		t.Fatal("expected past token to be expired")
	}
	if future.Expired(now) {
		t.Fatal("expected future token to be live")
	}
	if opaque.Expired(now) {
		t.Fatal("expected opaque token to be treated as live")
	}
}

func TestSession_SetAndClear(t *testing.T) {
	s := New(Tokens{})
	now := time.Now()
	if s.Active(now) {
		t.Fatal("empty session should not be active")
	}

	s.Set(Tokens{AccessToken: "a", RefreshToken: "r"})
	if s.AccessToken() != "a" || !s.Active(now) {
		t.Fatalf("unexpected session state: %+v", s.Tokens())
	}

	s.Clear()
	if !s.Tokens().Empty() {
		t.Fatalf("expected cleared tokens, got %+v", s.Tokens())
	}
}
