package service

import (
	"context"
	"errors"
	"testing"
)

func TestRegister_SavesSession(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(context.Background(), "alice", "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("Register() returned empty token")
	}
	if resp.Type != "Bearer" {
		t.Errorf("Register() token type = %q, want %q", resp.Type, "Bearer")
	}

	sess, ok := env.store.Load()
	if !ok {
		t.Fatal("session store empty after Register()")
	}
	if sess.Token != resp.Token {
		t.Error("stored token differs from the returned one")
	}
	if sess.User.Username != "alice" || sess.User.Email != "alice@example.com" {
		t.Errorf("stored user = %+v, want alice", sess.User)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "alice")

	_, err := env.auth.Register(context.Background(), "alice", "other@example.com", "secret")
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("Register() error = %v, want ErrRegistrationFailed", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), "alice", "", "secret")
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("Register() error = %v, want ErrRegistrationFailed", err)
	}
}

func TestLogin_SavesSessionBeforeReturning(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "alice")
	if err := env.auth.Logout(); err != nil {
		t.Fatalf("Logout() unexpected error: %v", err)
	}

	resp, err := env.auth.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	sess, ok := env.store.Load()
	if !ok {
		t.Fatal("session store empty after Login() returned")
	}
	if sess.Token != resp.Token {
		t.Error("stored token differs from the returned one")
	}
	if sess.User.Username != "alice" {
		t.Errorf("stored username = %q, want %q", sess.User.Username, "alice")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "alice")
	env.auth.Logout()

	_, err := env.auth.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if env.auth.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after failed login")
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(context.Background(), "nobody", "secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogout_IsLocalAndIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "alice")

	if err := env.auth.Logout(); err != nil {
		t.Fatalf("Logout() unexpected error: %v", err)
	}
	if env.auth.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after Logout()")
	}
	if _, ok := env.auth.CurrentUser(); ok {
		t.Error("CurrentUser() returned a user after Logout()")
	}

	if err := env.auth.Logout(); err != nil {
		t.Fatalf("second Logout() unexpected error: %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "alice")

	user, ok := env.auth.CurrentUser()
	if !ok {
		t.Fatal("CurrentUser() returned absent while logged in")
	}
	if user.Username != "alice" || user.Email != "alice@example.com" {
		t.Errorf("CurrentUser() = %+v, want alice", user)
	}
}
