package service

import (
	"errors"
	"testing"

	"quill/internal/models"
)

func TestRegisterAssignsDefaultRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register("alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected a persisted user id")
	}
	roles := user.RoleNames()
	if len(roles) != 1 || roles[0] != models.RoleUser {
		t.Errorf("roles = %v, want [%s]", roles, models.RoleUser)
	}
	if user.PasswordHash == "secret1" {
		t.Error("password must not be stored in the clear")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	if _, err := svc.Register("alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := svc.Register("alice", "other@example.com", "secret2")
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Errorf("err = %v, want ErrDuplicateIdentifier", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	if _, err := svc.Register("alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := svc.Register("alice2", "alice@example.com", "secret2")
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Errorf("err = %v, want ErrDuplicateIdentifier", err)
	}
}

func TestAuthenticateByUsernameAndEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	registerUser(t, db, "alice")

	for _, login := range []string{"alice", "alice@example.com"} {
		user, err := svc.Authenticate(login, "secret1")
		if err != nil {
			t.Errorf("Authenticate(%q) failed: %v", login, err)
			continue
		}
		if user.Username != "alice" {
			t.Errorf("Authenticate(%q) returned %q", login, user.Username)
		}
	}
}

func TestAuthenticateFailures(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	registerUser(t, db, "alice")

	cases := []struct {
		name, login, password string
	}{
		{"wrong password", "alice", "not-it"},
		{"unknown account", "mallory", "secret1"},
	}
	for _, tc := range cases {
		_, err := svc.Authenticate(tc.login, tc.password)
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Errorf("%s: err = %v, want ErrAuthenticationFailed", tc.name, err)
		}
	}
}

func TestUserByUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	registerUser(t, db, "alice")

	user, err := svc.UserByUsername("alice")
	if err != nil {
		t.Fatalf("UserByUsername failed: %v", err)
	}
	if len(user.Roles) == 0 {
		t.Error("expected roles to be preloaded")
	}

	if _, err := svc.UserByUsername("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
