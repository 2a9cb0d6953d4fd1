package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/quillpad/quillpad-be/internal/models"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)

	user := models.User{ID: "u-1", Name: "Ada", Role: models.RoleAdmin}
	token, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Role != user.Role {
		t.Errorf("Role = %q, want %q", claims.Role, user.Role)
	}
}

func TestVerifyExpired(t *testing.T) {
	// A negative TTL issues a token that is already past its expiry.
	tm := NewTokenManager([]byte("test-secret"), -time.Minute)

	token, err := tm.Issue(models.User{ID: "u-1", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := NewTokenManager([]byte("key-one"), time.Hour)
	verifier := NewTokenManager([]byte("key-two"), time.Hour)

	token, err := issuer.Issue(models.User{ID: "u-1", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)

	for _, tokenStr := range []string{"", "garbage", "a.b"} {
		if _, err := tm.Verify(tokenStr); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Verify(%q) = %v, want ErrTokenMalformed", tokenStr, err)
		}
	}
}
