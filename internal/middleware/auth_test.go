package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spacely/spacely-api/internal/pkg/jwt"
)

func TestAuthMissingHeader(t *testing.T) {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, time.Hour)
	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	token, err := jwtService.GenerateAccessToken(userID, "host")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	called := false
	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if got := GetUserID(r.Context()); got != userID {
			t.Errorf("expected user id %s in context, got %s", userID, got)
		}
		if got := GetRole(r.Context()); got != "host" {
			t.Errorf("expected role host in context, got %q", got)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called {
		t.Fatal("next handler was not called")
	}
}

func TestRequireHostForbidsGuest(t *testing.T) {
	handler := RequireHost()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	ctx := context.WithValue(req.Context(), RoleKey, "guest")
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}
