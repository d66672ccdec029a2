package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/studentos/backend/domain"
)

const testSecret = "unit-test-signing-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestVerifyLocal(t *testing.T) {
	v := NewVerifier(Config{JWTSecret: testSecret}, nil)

	raw := signToken(t, jwt.MapClaims{
		"sub":   "11111111-1111-1111-1111-111111111111",
		"email": "a@uni.example",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	ident, err := v.Verify(context.Background(), raw)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ident.ID != "11111111-1111-1111-1111-111111111111" || ident.Email != "a@uni.example" {
		t.Errorf("identity = %+v", ident)
	}
}

func TestVerifyLocal_Rejections(t *testing.T) {
	v := NewVerifier(Config{JWTSecret: testSecret}, nil)

	expired := signToken(t, jwt.MapClaims{
		"sub": "user",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	noSub := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user"})
	forged, err := wrongKey.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	for name, token := range map[string]string{
		"empty":   "",
		"garbage": "not.a.jwt",
		"expired": expired,
		"no sub":  noSub,
		"bad key": forged,
	} {
		if _, err := v.Verify(context.Background(), token); !domain.IsCode(err, domain.ErrCodeUnauthorized) {
			t.Errorf("%s: err = %v, want UNAUTHORIZED", name, err)
		}
	}
}

func TestVerifyRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("apikey") != "anon-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"id":    "11111111-1111-1111-1111-111111111111",
			"email": "a@uni.example",
		})
	}))
	defer srv.Close()

	v := NewVerifier(Config{ProviderURL: srv.URL, AnonKey: "anon-key"}, nil)

	ident, err := v.Verify(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ident.ID != "11111111-1111-1111-1111-111111111111" {
		t.Errorf("identity = %+v", ident)
	}

	if _, err := v.Verify(context.Background(), "bad-token"); !domain.IsCode(err, domain.ErrCodeUnauthorized) {
		t.Errorf("rejected token err = %v, want UNAUTHORIZED", err)
	}
}

func TestVerifyRemote_ProviderDown(t *testing.T) {
	v := NewVerifier(Config{
		ProviderURL: "http://127.0.0.1:1",
		AnonKey:     "anon-key",
		Timeout:     200 * time.Millisecond,
	}, nil)

	if _, err := v.Verify(context.Background(), "any"); !domain.IsCode(err, domain.ErrCodeUnauthorized) {
		t.Errorf("unreachable provider err = %v, want UNAUTHORIZED", err)
	}
}
