package security

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)

	token, expiresAt, err := signer.Issue(42)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if time.Until(expiresAt) < 59*time.Minute {
		t.Errorf("expiry too soon: %v", expiresAt)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if claims.GroupID != 42 {
		t.Errorf("expected group 42, got %d", claims.GroupID)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)
	other := NewTokenSigner("other-secret", time.Hour)

	token, _, err := signer.Issue(42)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := other.Verify(token); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	signer := NewTokenSigner("test-secret", -time.Minute)

	token, _, err := signer.Issue(42)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := signer.Verify(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := signer.Verify(token); err != ErrTokenInvalid {
			t.Errorf("token %q: expected ErrTokenInvalid, got %v", token, err)
		}
	}
}

func TestPasscodeHashRoundTrip(t *testing.T) {
	hash, err := HashPasscode("open-sesame")
	if err != nil {
		t.Fatalf("failed to hash passcode: %v", err)
	}

	if !CheckPasscode(hash, "open-sesame") {
		t.Error("correct passcode rejected")
	}
	if CheckPasscode(hash, "wrong") {
		t.Error("wrong passcode accepted")
	}
}
