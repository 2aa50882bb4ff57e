package services

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/notehive/notehive-backend/internal/config"
)

// Mailer is the narrow contract for transactional mail: send or log,
// never block a request on it.
type Mailer interface {
	SendWelcome(to, name string) error
}

type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

func (m *SMTPMailer) SendWelcome(to, name string) error {
	subject := "Welcome to NoteHive"
	body := fmt.Sprintf("Hi %s,\r\n\r\nYour account is ready. Upload your first notes and start sharing.\r\n", name)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if m.host == "" {
		slog.Info("smtp not configured, skipping mail", "to", to, "subject", subject)
		return nil
	}

	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
