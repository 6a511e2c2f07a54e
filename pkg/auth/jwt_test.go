package auth_test

import (
	"strings"
	"testing"

	"github.com/mahimDev/bistro-boss-server/pkg/auth"
)

func TestIssueAndValidate(t *testing.T) {
	token, err := auth.IssueToken("diner@example.com", "Diner")
	if err != nil {
		t.Fatalf("IssueToken returned unexpected error: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken rejected a fresh token: %v", err)
	}
	if claims.Email != "diner@example.com" {
		t.Errorf("expected email claim to round-trip, got %q", claims.Email)
	}
	if claims.Name != "Diner" {
		t.Errorf("expected name claim to round-trip, got %q", claims.Name)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected an expiry claim")
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != auth.TokenTTL {
		t.Errorf("expected TTL %v, got %v", auth.TokenTTL, ttl)
	}
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	if _, err := auth.ValidateToken("not-a-token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}

func TestValidateToken_RejectsTamperedSignature(t *testing.T) {
	token, err := auth.IssueToken("diner@example.com", "")
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	if _, err := auth.ValidateToken(tampered); err == nil {
		t.Error("expected an error for a tampered signature")
	}
}
