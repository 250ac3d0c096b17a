package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMint_RoundTrip(t *testing.T) {
	cfg := JWTConfig{Issuer: "handoff", SigningKey: testSigningKey}
	tokenStr, err := Mint(cfg, "nurse-7", []string{RoleNurse}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return testSigningKey, nil
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "nurse-7" || claims.Issuer != "handoff" {
		t.Errorf("unexpected claims %+v", claims.RegisteredClaims)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != RoleNurse {
		t.Errorf("expected [nurse], got %v", claims.Roles)
	}
}

func TestMint_RequiresKeyAndSubject(t *testing.T) {
	if _, err := Mint(JWTConfig{}, "x", nil, time.Hour); err == nil {
		t.Error("expected error without signing key")
	}
	if _, err := Mint(JWTConfig{SigningKey: testSigningKey}, "", nil, time.Hour); err == nil {
		t.Error("expected error without subject")
	}
}
