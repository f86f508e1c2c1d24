// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package notify

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a single email. Implementations must be safe for
// concurrent use by the delivery workers.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string // host:port
	auth smtp.Auth
	from string
}

// NewSMTPMailer creates a mailer for the given relay. user may be empty
// for an unauthenticated relay.
func NewSMTPMailer(host, port, user, password, from string) *SMTPMailer {
	m := &SMTPMailer{
		addr: host + ":" + port,
		from: from,
	}
	if user != "" {
		m.auth = smtp.PlainAuth("", user, password, host)
	}
	return m
}

// Send delivers one message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer logs deliveries instead of sending them. Used in
// development when no SMTP relay is configured.
type LogMailer struct{}

// Send logs the message.
func (LogMailer) Send(to, subject, body string) error {
	slog.Info("mail delivery skipped (smtp not configured)",
		"to", to,
		"subject", subject,
		"body_len", len(body),
	)
	return nil
}
