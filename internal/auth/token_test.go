package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/docuflow/docuflow/internal/shared"
)

func testClaims() *shared.Claims {
	return &shared.Claims{
		UserID:      42,
		Email:       "sam@example.com",
		Username:    "sam",
		FirstName:   "Sam",
		LastName:    "Staff",
		Roles:       []string{"staff"},
		Permissions: []string{"invoices:read", "invoices:create"},
	}
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, expiresAt, err := codec.Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 55*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected expiry window: %v", remaining)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "sam@example.com" {
		t.Fatalf("identity not preserved: %+v", claims)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "staff" {
		t.Fatalf("roles not preserved: %v", claims.Roles)
	}
	if len(claims.Permissions) != 2 {
		t.Fatalf("permissions not preserved: %v", claims.Permissions)
	}
}

func TestTokenCodecExpired(t *testing.T) {
	codec := &TokenCodec{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := codec.Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = codec.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodecRejectsTampering(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, _, err := codec.Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = codec.Verify(token + "x")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenCodecRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-a", time.Hour)
	verifier := NewTokenCodec("secret-b", time.Hour)

	token, _, err := issuer.Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenCodecRejectsGarbage(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)
	for _, input := range []string{"", "garbage", "a.b.c"} {
		if _, err := codec.Verify(input); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("input %q: expected ErrTokenInvalid, got %v", input, err)
		}
	}
}

func TestNewTokenCodecDefaultTTL(t *testing.T) {
	codec := NewTokenCodec("test-secret", 0)
	if codec.TTL() != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", codec.TTL())
	}
}
