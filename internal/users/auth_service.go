package users

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/azim128/jobify/internal/shared/apperr"
	"github.com/azim128/jobify/internal/shared/auth"
	"github.com/azim128/jobify/internal/shared/mailer"
)

const resetTokenTTL = 10 * time.Minute

// AuthEventRecorder receives login and logout events. Implementations must
// not fail the calling request.
type AuthEventRecorder interface {
	RecordAuthEvent(ctx context.Context, user User, action string)
}

// AuthService handles credential flows: login, logout and password reset.
type AuthService struct {
	Repo        Repo
	Tokens      *auth.TokenIssuer
	Mailer      mailer.Mailer
	Events      AuthEventRecorder
	FrontendURL string

	now func() time.Time
}

func NewAuthService(repo Repo, tokens *auth.TokenIssuer, m mailer.Mailer, events AuthEventRecorder, frontendURL string) *AuthService {
	return &AuthService{
		Repo:        repo,
		Tokens:      tokens,
		Mailer:      m,
		Events:      events,
		FrontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
	}
}

// Login verifies credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (User, string, error) {
	if err := requireFields(field{"email", email}, field{"password", password}); err != nil {
		return User{}, "", err
	}

	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", apperr.Authentication("Invalid credentials")
		}
		return User{}, "", err
	}
	if !auth.ComparePassword(password, user.PasswordHash) {
		return User{}, "", apperr.Authentication("Invalid credentials")
	}
	if !user.IsActive {
		return User{}, "", apperr.Authentication("Your account has been deactivated")
	}

	token, err := s.Tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return User{}, "", err
	}
	if s.Events != nil {
		s.Events.RecordAuthEvent(ctx, user, "login")
	}
	return user, token, nil
}

// Logout records the logout event. Tokens are stateless so there is nothing
// to revoke server side.
func (s *AuthService) Logout(ctx context.Context, user User) {
	if s.Events != nil {
		s.Events.RecordAuthEvent(ctx, user, "logout")
	}
}

// ForgotPassword issues a short-lived reset token and emails the reset link.
// It reports success even for unknown emails so the endpoint cannot be used
// to probe which addresses exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if err := requireFields(field{"email", email}); err != nil {
		return err
	}
	if s.Mailer == nil {
		return apperr.Configuration("Email service is not configured")
	}

	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)

	expires := s.now().UTC().Add(resetTokenTTL)
	user.PasswordResetToken = hashResetToken(token)
	user.PasswordResetExpires = &expires
	if err := s.Repo.Update(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.FrontendURL, token)
	msg := mailer.Message{
		To:      user.Email,
		Subject: "Password Reset Request",
		Body: fmt.Sprintf(
			"You requested a password reset. Open the link below within 10 minutes to choose a new password:\n\n%s\n\nIf you did not request this, you can ignore this email.",
			resetURL,
		),
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		// Invalidate the token we just stored so a failed send leaves no
		// usable reset state behind.
		user.PasswordResetToken = ""
		user.PasswordResetExpires = nil
		_ = s.Repo.Update(ctx, user)
		return apperr.Wrap(apperr.KindUpstream, "Error sending email", err)
	}
	return nil
}

// ResetPassword consumes a reset token, sets the new password and returns the
// user with a fresh auth token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (User, string, error) {
	if err := requireFields(field{"token", token}, field{"password", password}); err != nil {
		return User{}, "", err
	}

	user, err := s.Repo.GetByResetToken(ctx, hashResetToken(token), s.now().UTC())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", apperr.Validation("Invalid or expired reset token")
		}
		return User{}, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, "", err
	}
	user.PasswordHash = hash
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, "", err
	}

	authToken, err := s.Tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return User{}, "", err
	}
	return user, authToken, nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
