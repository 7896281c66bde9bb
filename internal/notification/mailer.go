package notification

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"gopkg.in/gomail.v2"
)

// Sender delivers a composed message. gomail's Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer composes and sends transactional emails over SMTP. When no SMTP
// host is configured every send becomes a logged no-op, which keeps local
// development working without a mail server.
type Mailer struct {
	sender Sender
	from   string
	logger *slog.Logger
}

func NewMailer(cfg internal.MailConfig, logger *slog.Logger) *Mailer {
	m := &Mailer{
		from:   cfg.From,
		logger: logger,
	}
	if cfg.Host != "" {
		m.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// NewMailerWithSender wires a custom sender, used by tests.
func NewMailerWithSender(sender Sender, from string, logger *slog.Logger) *Mailer {
	return &Mailer{sender: sender, from: from, logger: logger}
}

func (m *Mailer) send(to, subject, body string) error {
	if m.sender == nil {
		m.logger.Info("mail delivery skipped: SMTP not configured",
			"to", to,
			"subject", subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	m.logger.Info("mail sent", "to", to, "subject", subject)
	return nil
}

// SendVerificationEmail delivers the signup verification link.
func (m *Mailer) SendVerificationEmail(to, name, token string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome aboard. Verify your email by opening the link below:\n\n/verify-email?token=%s\n\nThe link expires in 24 hours.\n",
		name, token)
	return m.send(to, "Verify your email", body)
}

// SendCredentialsEmail delivers the one-time login credentials to a freshly
// onboarded employee.
func (m *Mailer) SendCredentialsEmail(to, name, employeeCode, tempPassword, companyName string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nAn account has been created for you at %s.\n\nEmployee ID: %s\nEmail: %s\nTemporary password: %s\n\nPlease change your password after the first login.\n",
		name, companyName, employeeCode, to, tempPassword)
	return m.send(to, "Your account credentials", body)
}

// SendTimeOffDecisionEmail tells an employee their request was decided.
func (m *Mailer) SendTimeOffDecisionEmail(to, status, reason string) error {
	body := fmt.Sprintf("Your time-off request has been %s.\n", status)
	if reason != "" {
		body += fmt.Sprintf("Reason: %s\n", reason)
	}
	return m.send(to, fmt.Sprintf("Time-off request %s", status), body)
}
