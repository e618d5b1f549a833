// Package mail sends transactional email. Delivery is fire-and-forget:
// callers log failures but never surface them to the user, so a broken mail
// path cannot block signup or password reset.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"vibehub/internal/middleware"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers over a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

// NewSMTPMailer returns a Mailer backed by the relay at addr.
func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{Addr: addr, From: from}
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)

	return smtp.SendMail(m.Addr, nil, m.From, []string{msg.To}, []byte(b.String()))
}

// LogMailer writes messages to the log instead of delivering them. Used in
// development and tests where no relay is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	middleware.Logger.InfoContext(ctx, "mail (log only)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}

// FromConfig picks the SMTP mailer when a relay address is configured and
// the log mailer otherwise.
func FromConfig(smtpAddr, from string) Mailer {
	if smtpAddr == "" {
		return LogMailer{}
	}
	return NewSMTPMailer(smtpAddr, from)
}
