// Package mailer sends the booking pipeline's transactional emails over SMTP.
package mailer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/config"
)

// Message is one outbound transactional email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a message and returns its generated message id.
type Mailer interface {
	Send(msg Message) (string, error)
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	domain string
}

// NewSMTPMailer builds a mailer from the SMTP section of the config.
// The message-id domain is taken from the relay host.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		domain: cfg.Host,
	}
}

// Send delivers msg and returns the Message-ID assigned to it. The id is
// generated locally so callers get a stable reference even though SMTP
// itself returns nothing useful on success.
func (m *SMTPMailer) Send(msg Message) (string, error) {
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.domain)

	gm := gomail.NewMessage()
	gm.SetHeader("From", msg.From)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetHeader("Message-ID", id)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return "", fmt.Errorf("send to %s: %w", maskAddress(msg.To), err)
	}
	return id, nil
}

// maskAddress hides the local part so delivery errors can be logged
// without spilling the full customer address.
func maskAddress(addr string) string {
	at := strings.IndexByte(addr, '@')
	if at <= 0 {
		return "***"
	}
	return "***" + addr[at:]
}
