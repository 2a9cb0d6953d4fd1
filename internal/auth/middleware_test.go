package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quillpad/quillpad-be/internal/models"
)

func okIfClaims(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Error("claims missing from request context")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if claims.UserID != wantUserID {
			t.Errorf("claims.UserID = %q, want %q", claims.UserID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingToken(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)
	handler := tm.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)
	handler := tm.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran with an invalid token")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateBearerHeader(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)
	token, err := tm.Issue(models.User{ID: "u-1", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := tm.Authenticate(okIfClaims(t, "u-1"))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthenticateCookieFallback(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)
	token, err := tm.Issue(models.User{ID: "u-2", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := tm.Authenticate(okIfClaims(t, "u-2"))
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)

	adminOnly := tm.Authenticate(RequireRole(models.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	tests := []struct {
		name string
		role models.Role
		want int
	}{
		{"admin passes", models.RoleAdmin, http.StatusOK},
		{"user is forbidden", models.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tm.Issue(models.User{ID: "u-1", Role: tt.role})
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			adminOnly.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireRoleWithoutAuthenticate(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran without claims")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
