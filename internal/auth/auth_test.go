package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/shoplist/internal/models"
	"github.com/mmynk/shoplist/internal/storage/sqlite"
)

const testSecret = "test-secret-key-for-jwt-signing-32b"

func newTestAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store)
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator(t)

	t.Run("Register", func(t *testing.T) {
		user, err := a.Register(ctx, "alice@example.com", "Alice", "correct-horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == "" {
			t.Error("Expected user ID to be set")
		}
		if user.PasswordHash == "correct-horse" {
			t.Error("Password stored in clear text")
		}
	})

	t.Run("RegisterDuplicateEmail", func(t *testing.T) {
		_, err := a.Register(ctx, "ALICE@example.com", "Alice 2", "correct-horse")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("RegisterWeakPassword", func(t *testing.T) {
		_, err := a.Register(ctx, "bob@example.com", "Bob", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		user, err := a.Authenticate(ctx, "alice@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.DisplayName != "Alice" {
			t.Errorf("Expected display name 'Alice', got '%s'", user.DisplayName)
		}
	})

	t.Run("AuthenticateWrongPassword", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("AuthenticateUnknownEmail", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "nobody@example.com", "correct-horse")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := m.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != "user-1" || claims.Email != "alice@example.com" {
			t.Errorf("Unexpected claims: %+v", claims)
		}
		if claims.SessionID == "" {
			t.Error("Expected a session ID")
		}
	})

	t.Run("NewSessionPerLogin", func(t *testing.T) {
		t1, _ := m.Generate(user)
		t2, _ := m.Generate(user)
		c1, _ := m.Validate(t1)
		c2, _ := m.Validate(t2)
		if c1.SessionID == c2.SessionID {
			t.Error("Expected distinct session IDs")
		}
	})

	t.Run("KeepsSession", func(t *testing.T) {
		token, err := m.GenerateForSession(user, "sess-1")
		if err != nil {
			t.Fatalf("GenerateForSession failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.SessionID != "sess-1" {
			t.Errorf("Expected session 'sess-1', got '%s'", claims.SessionID)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, _ := m.Generate(user)
		other := NewJWTManager("another-secret-key-for-jwt-signing", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewJWTManager(testSecret, -time.Minute)
		token, _ := expired.Generate(user)
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}
