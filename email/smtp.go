package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPSender delivers through a plain SMTP relay.
type SMTPSender struct {
	addr string // host:port
	from string
	auth smtp.Auth
	log  *slog.Logger
}

// NewSMTPSender builds a sender; username may be empty for an open relay
// (local postfix, mailhog in development).
func NewSMTPSender(addr, from, username, password string, log *slog.Logger) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{addr: addr, from: from, auth: auth, log: log}
}

func (s *SMTPSender) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s <%s>\r\n", email.ToName, email.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(email.HTMLBody)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{email.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", email.To, err)
	}
	s.log.Debug("digest email sent", "to", email.To, "subject", email.Subject)
	return nil
}

// LogSender is the development sender: it only logs what would be sent.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, email Email) error {
	s.log.Info("digest email (log sender)",
		"to", email.To,
		"subject", email.Subject,
		"body_bytes", len(email.HTMLBody),
	)
	return nil
}
