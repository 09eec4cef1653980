package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/auth"
	"github.com/azim128/jobify/internal/shared/mailer"
)

type captureMailer struct {
	sent []mailer.Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type captureEvents struct {
	actions []string
}

func (e *captureEvents) RecordAuthEvent(_ context.Context, _ User, action string) {
	e.actions = append(e.actions, action)
}

func seedUser(t *testing.T, repo *MemoryRepo, email, password string, active bool) User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := User{
		ID:           "user-" + email,
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsActive:     active,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return user
}

func TestLogin(t *testing.T) {
	repo := NewMemoryRepo()
	events := &captureEvents{}
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret"), nil, events, "http://localhost:3000")
	seedUser(t, repo, "alice@example.com", "alicepass", true)

	user, token, err := svc.Login(context.Background(), "ALICE@example.com", "alicepass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %q", user.Email)
	}
	if len(events.actions) != 1 || events.actions[0] != "login" {
		t.Fatalf("events = %v", events.actions)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret"), nil, nil, "")
	seedUser(t, repo, "alice@example.com", "alicepass", true)

	cases := []struct {
		name, email, password, wantMsg string
	}{
		{"unknown email", "nobody@example.com", "alicepass", "Invalid credentials"},
		{"wrong password", "alice@example.com", "wrong", "Invalid credentials"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			if !apperr.IsKind(err, apperr.KindAuthentication) {
				t.Fatalf("err = %v, want authentication", err)
			}
			if got := apperr.Message(err); got != tc.wantMsg {
				t.Fatalf("message = %q, want %q", got, tc.wantMsg)
			}
		})
	}
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret"), nil, nil, "")
	seedUser(t, repo, "gone@example.com", "gonepass1", false)

	_, _, err := svc.Login(context.Background(), "gone@example.com", "gonepass1")
	if !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Fatalf("err = %v, want authentication", err)
	}
	if got := apperr.Message(err); got != "Your account has been deactivated" {
		t.Fatalf("message = %q", got)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	repo := NewMemoryRepo()
	mail := &captureMailer{}
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret"), mail, nil, "http://localhost:3000/")
	seedUser(t, repo, "alice@example.com", "oldpass123", true)

	if err := svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("forgot: %v", err)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mail.sent))
	}

	// Pull the raw token back out of the reset link.
	body := mail.sent[0].Body
	marker := "http://localhost:3000/reset-password/"
	idx := len(body)
	for i := 0; i+len(marker) <= len(body); i++ {
		if body[i:i+len(marker)] == marker {
			idx = i + len(marker)
			break
		}
	}
	if idx >= len(body) {
		t.Fatalf("reset link missing from body: %q", body)
	}
	token := body[idx : idx+64]

	user, authToken, err := svc.ResetPassword(context.Background(), token, "newpass456")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if authToken == "" {
		t.Fatal("empty auth token after reset")
	}
	if !auth.ComparePassword("newpass456", user.PasswordHash) {
		t.Fatal("new password not set")
	}

	// A consumed token cannot be replayed.
	if _, _, err := svc.ResetPassword(context.Background(), token, "again789"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("replay err = %v, want validation", err)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	repo := NewMemoryRepo()
	mail := &captureMailer{}
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret"), mail, nil, "http://localhost:3000")

	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("forgot: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Fatalf("sent %d mails, want 0", len(mail.sent))
	}
}

func TestForgotPasswordSendFailureClearsToken(t *testing.T) {
	repo := NewMemoryRepo()
	mail := &captureMailer{err: errors.New("smtp down")}
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret"), mail, nil, "http://localhost:3000")
	seedUser(t, repo, "alice@example.com", "alicepass", true)

	err := svc.ForgotPassword(context.Background(), "alice@example.com")
	if !apperr.IsKind(err, apperr.KindUpstream) {
		t.Fatalf("err = %v, want upstream", err)
	}

	user, _ := repo.GetByEmail(context.Background(), "alice@example.com")
	if user.PasswordResetToken != "" || user.PasswordResetExpires != nil {
		t.Fatal("reset token not cleared after failed send")
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	repo := NewMemoryRepo()
	mail := &captureMailer{}
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret"), mail, nil, "http://localhost:3000")
	seedUser(t, repo, "alice@example.com", "alicepass", true)

	base := time.Now().UTC()
	svc.now = func() time.Time { return base }
	if err := svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("forgot: %v", err)
	}

	svc.now = func() time.Time { return base.Add(11 * time.Minute) }
	_, _, err := svc.ResetPassword(context.Background(), "anything", "newpass456")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if got := apperr.Message(err); got != "Invalid or expired reset token" {
		t.Fatalf("message = %q", got)
	}
}

func TestMailerNotConfigured(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret"), nil, nil, "")
	seedUser(t, repo, "alice@example.com", "alicepass", true)

	err := svc.ForgotPassword(context.Background(), "alice@example.com")
	if !apperr.IsKind(err, apperr.KindConfiguration) {
		t.Fatalf("err = %v, want configuration", err)
	}
}
