// Package mailer defines the outbound email contract used for password-reset
// notifications. The SMTP implementation is a thin transport; callers treat
// a nil Mailer as "email not configured".
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Message is a plaintext email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends plaintext email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTP implements Mailer over net/smtp with PLAIN auth.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// NewSMTP constructs an SMTP mailer, or nil when no host is configured.
func NewSMTP(host string, port int, username, password, from, fromName string) *SMTP {
	if strings.TrimSpace(host) == "" {
		return nil
	}
	return &SMTP{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		FromName: fromName,
	}
}

// Send delivers the message. The context is checked before dialing; net/smtp
// itself does not support cancellation mid-send.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", s.FromName, s.From),
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
	}
	payload := strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.Body

	if err := smtp.SendMail(addr, auth, s.From, []string{msg.To}, []byte(payload)); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}
