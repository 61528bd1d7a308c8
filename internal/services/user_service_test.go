package services

import (
	"errors"
	"storefront/internal/models"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Register("Jordan", "Jordan@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.Email != "jordan@example.com" {
		t.Errorf("email = %q, want lower-cased", user.Email)
	}
	if user.Password == "hunter22" {
		t.Error("password stored in plain text")
	}
	if user.Role != string(models.RoleUser) {
		t.Errorf("role = %q, want user", user.Role)
	}

	t.Run("duplicate email", func(t *testing.T) {
		if _, err := svc.Register("Other", "jordan@example.com", "different"); !errors.Is(err, models.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("valid credentials", func(t *testing.T) {
		got, err := svc.Authenticate("JORDAN@example.com", "hunter22")
		if err != nil {
			t.Fatalf("Authenticate() error: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("authenticated wrong user")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Authenticate("jordan@example.com", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := svc.Authenticate("nobody@example.com", "hunter22"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("deactivated account", func(t *testing.T) {
		user.IsActive = false
		if err := svc.UpdateUser(user); err != nil {
			t.Fatalf("UpdateUser() error: %v", err)
		}
		if _, err := svc.Authenticate("jordan@example.com", "hunter22"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
		}
	})
}
