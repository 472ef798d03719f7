package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinical-records/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("cannot sign token: %v", err)
	}
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	v := NewVerifier(testSecret)

	signed := signToken(t, testSecret, jwt.MapClaims{
		"user_id":  int64(7),
		"username": "jperez",
		"role":     "patient",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := auth.Claims{UserID: 7, Username: "jperez", Role: auth.RolePatient}
	if claims != want {
		t.Fatalf("got %+v, want %+v", claims, want)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	v := NewVerifier(testSecret)

	signed := signToken(t, "another-secret", jwt.MapClaims{
		"user_id": int64(7),
		"role":    "patient",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("got err %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	v := NewVerifier(testSecret)

	signed := signToken(t, testSecret, jwt.MapClaims{
		"user_id": int64(7),
		"role":    "patient",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("got err %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsUnsignedAlg(t *testing.T) {
	v := NewVerifier(testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": int64(7),
		"role":    "admin",
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("cannot sign token: %v", err)
	}

	if _, err := v.Verify(context.Background(), signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("alg=none must be rejected, got err %v", err)
	}
}

func TestVerifyBadPayload(t *testing.T) {
	v := NewVerifier(testSecret)

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing user id", jwt.MapClaims{"role": "patient"}},
		{"zero user id", jwt.MapClaims{"user_id": int64(0), "role": "patient"}},
		{"unknown role", jwt.MapClaims{"user_id": int64(7), "role": "superuser"}},
		{"missing role", jwt.MapClaims{"user_id": int64(7)}},
	}
	for _, tc := range cases {
		signed := signToken(t, testSecret, tc.claims)
		if _, err := v.Verify(context.Background(), signed); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("%s: got err %v, want ErrTokenInvalid", tc.name, err)
		}
	}
}

func TestVerifyGarbage(t *testing.T) {
	v := NewVerifier(testSecret)

	for _, token := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		if _, err := v.Verify(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: got err %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestVerifyWithoutSecret(t *testing.T) {
	v := NewVerifier("")
	if _, err := v.Verify(context.Background(), "whatever"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("got err %v, want ErrNotConfigured", err)
	}
}
