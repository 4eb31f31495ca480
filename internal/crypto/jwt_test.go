package crypto

import (
	"testing"
	"time"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("alice", "alice@example.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}
}

func TestValidateTokenValid(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken("alice", "alice@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("ValidateToken() Subject = %q, want %q", claims.Subject, "alice")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("ValidateToken() Email = %q, want %q", claims.Email, "alice@example.com")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("not-a-valid-token", "test-secret")
	if err == nil {
		t.Fatal("ValidateToken() accepted a malformed token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("alice", "alice@example.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Fatal("ValidateToken() accepted a token signed with another secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("alice", "alice@example.com", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, "test-secret"); err == nil {
		t.Fatal("ValidateToken() accepted an expired token")
	}
}

func TestTokenExpiry(t *testing.T) {
	token, err := GenerateToken("alice", "alice@example.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	expiry, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("TokenExpiry() unexpected error: %v", err)
	}

	until := time.Until(expiry)
	if until < 59*time.Minute || until > 61*time.Minute {
		t.Errorf("TokenExpiry() = %v from now, want about an hour", until)
	}
}

func TestTokenExpiryMalformed(t *testing.T) {
	if _, err := TokenExpiry("garbage"); err == nil {
		t.Fatal("TokenExpiry() accepted a malformed token")
	}
}
