package security

import (
	"strings"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "jana@example.com", "customer", time.Hour, "secret")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := VerifyAccessToken(token, "secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "jana@example.com" || claims.Role != "customer" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, _ := GenerateAccessToken(1, "a@b.c", "customer", time.Hour, "secret")
	if _, err := VerifyAccessToken(token, "other"); err == nil {
		t.Fatal("expected verification to fail with wrong secret")
	}
}

func TestAccessTokenTampered(t *testing.T) {
	token, _ := GenerateAccessToken(1, "a@b.c", "customer", time.Hour, "secret")
	parts := strings.SplitN(token, ".", 2)
	tampered := parts[0] + "x." + parts[1]
	if _, err := VerifyAccessToken(tampered, "secret"); err == nil {
		t.Fatal("expected verification to fail for tampered payload")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, _ := GenerateAccessToken(1, "a@b.c", "customer", -time.Minute, "secret")
	if _, err := VerifyAccessToken(token, "secret"); err == nil {
		t.Fatal("expected verification to fail for expired token")
	}
}

func TestAccessTokenRequiresSecret(t *testing.T) {
	if _, err := GenerateAccessToken(1, "a@b.c", "customer", time.Hour, ""); err == nil {
		t.Fatal("expected generation to fail without secret")
	}
	if _, err := VerifyAccessToken("x.y", ""); err == nil {
		t.Fatal("expected verification to fail without secret")
	}
}
