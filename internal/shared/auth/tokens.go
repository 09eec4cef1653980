// Package auth issues and verifies session tokens and password hashes.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/azim128/jobify/internal/shared/apperr"
)

const tokenTTL = 24 * time.Hour

// Session is the identity carried by a verified token.
type Session struct {
	UserID string
	Role   string
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer from the configured secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// Issue signs a token carrying the user id and role, valid for 24 hours.
func (t *TokenIssuer) Issue(userID, role string) (string, error) {
	now := t.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"iat":    now.Unix(),
		"exp":    now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify parses and validates a token, returning the session it carries.
// Invalid signatures and expired tokens fail with an authentication error.
func (t *TokenIssuer) Verify(tokenStr string) (Session, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Authentication("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }))
	if err != nil || !token.Valid {
		return Session{}, apperr.Authentication("Authentication invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, apperr.Authentication("Authentication invalid")
	}
	userID, _ := claims["userId"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return Session{}, apperr.Authentication("Authentication invalid")
	}
	return Session{UserID: userID, Role: role}, nil
}
