package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/healthify-app/healthify-api/internal/models"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("secret")

	raw, err := issuer.Issue(42, models.RoleDoctor)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Role != models.RoleDoctor {
		t.Errorf("claims = %+v", claims)
	}
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	issuer := NewIssuer("secret")

	if _, err := issuer.Issue(1, models.Role("Superuser")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("secret")

	raw := signed(t, "secret", jwt.MapClaims{
		"sub":  float64(1),
		"role": string(models.RolePatient),
		"iat":  time.Now().Add(-8 * 24 * time.Hour).Unix(),
		"exp":  time.Now().Add(-24 * time.Hour).Unix(),
	})

	if _, err := issuer.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyWrongSignature(t *testing.T) {
	issuer := NewIssuer("secret")

	raw := signed(t, "other-secret", jwt.MapClaims{
		"sub":  float64(1),
		"role": string(models.RolePatient),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	if _, err := issuer.Verify(raw); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerifyRejectsBadShape(t *testing.T) {
	issuer := NewIssuer("secret")

	cases := map[string]jwt.MapClaims{
		"missing sub": {
			"role": string(models.RolePatient),
			"exp":  time.Now().Add(time.Hour).Unix(),
		},
		"unknown role": {
			"sub":  float64(1),
			"role": "Superuser",
			"exp":  time.Now().Add(time.Hour).Unix(),
		},
	}

	for name, claims := range cases {
		raw := signed(t, "secret", claims)
		if _, err := issuer.Verify(raw); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", name, err)
		}
	}

	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, ErrInvalid) {
		t.Errorf("garbage: expected ErrInvalid, got %v", err)
	}
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}
