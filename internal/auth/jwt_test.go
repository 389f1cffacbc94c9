package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/splitpot/splitpot/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	user := &models.User{ID: "u1", Username: "alice"}
	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" {
		t.Errorf("claims = %s/%s, want u1/alice", claims.UserID, claims.Username)
	}
}

func TestJWTExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key-32-bytes-long!!!", -time.Minute)

	token, err := manager.Generate(&models.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate error = %v, want invalid token", err)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	other := NewJWTManager("another-secret-entirely!!!!!!!!!", time.Hour)

	token, err := manager.Generate(&models.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate error = %v, want invalid token", err)
	}
}
