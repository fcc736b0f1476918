package main

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/store"
)

var (
	errMissingName    = errors.New("name is required")
	errInvalidName    = errors.New("name must be a single line")
	errInvalidEmail   = errors.New("a valid email address is required")
	errMissingMessage = errors.New("message is required")
	errMessageTooLong = errors.New("message must be at most 5000 characters")
	errSMTPNotReady   = errors.New("SMTP credentials not configured")
)

const maxMessageLen = 5000

// ContactForm is a submission from the contact section.
type ContactForm struct {
	Name    string
	Email   string
	Message string
}

func (f ContactForm) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errMissingName
	}
	// Name ends up in the Subject header.
	if strings.ContainsAny(f.Name, "\r\n") {
		return errInvalidName
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return errInvalidEmail
	}
	if strings.TrimSpace(f.Message) == "" {
		return errMissingMessage
	}
	if utf8.RuneCountInString(f.Message) > maxMessageLen {
		return errMessageTooLong
	}
	return nil
}

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, f ContactForm) error
}

type smtpMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func newSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *smtpMailer {
	return &smtpMailer{cfg: cfg, logger: logger}
}

func (m *smtpMailer) Send(_ context.Context, f ContactForm) error {
	if !m.cfg.Configured() {
		return errSMTPNotReady
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", f.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, f.Name, f.Email, f.Message)

	msg := []byte("To: " + m.cfg.ToEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + f.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.ToEmail}, msg); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}

	m.logger.Info("contact email sent", zap.String("name", f.Name))
	return nil
}

// submitContact stores the message first so a failed send loses nothing.
func (a *app) submitContact(ctx context.Context, f ContactForm) error {
	if err := f.validate(); err != nil {
		return err
	}

	id, err := a.store.SaveMessage(ctx, store.Message{Name: f.Name, Email: f.Email, Body: f.Message})
	if err != nil {
		return err
	}

	if err := a.mailer.Send(ctx, f); err != nil {
		a.logger.Warn("contact email not sent, message kept", zap.Int64("message_id", id), zap.Error(err))
		return nil
	}
	if err := a.store.MarkMessageSent(ctx, id); err != nil {
		a.logger.Warn("failed to mark message sent", zap.Int64("message_id", id), zap.Error(err))
	}
	return nil
}

func isValidationError(err error) bool {
	return errors.Is(err, errMissingName) ||
		errors.Is(err, errInvalidName) ||
		errors.Is(err, errInvalidEmail) ||
		errors.Is(err, errMissingMessage) ||
		errors.Is(err, errMessageTooLong)
}
