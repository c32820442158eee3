package auth

import (
	"errors"
	"testing"
	"time"

	"mindmoney/internal/core"
)

func TestIssueAndVerify(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Hour)
	user := core.User{ID: 7, Email: "ana@example.com", Name: "Ana"}

	token, err := ti.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := ti.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "ana@example.com" || claims.Name != "Ana" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestVerifyRejects(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Hour)
	user := core.User{ID: 1, Email: "a@b.c", Name: "A"}

	t.Run("garbage token", func(t *testing.T) {
		if _, err := ti.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := ti.Issue(user)
		other := NewTokenIssuer("different-secret", time.Hour)
		if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenIssuer("test-secret", -time.Minute)
		token, _ := expired.Issue(user)
		if _, err := ti.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
