// Package dispatch sends finished documents over SMTP. It is a boundary
// adapter: the core pipeline hands it a validated result and a
// recipient, and every failure is surfaced without retry.
package dispatch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/jonathan/career-assistant/internal/types"
)

// Account is the sender identity. AppPassword is an app-specific
// password for the provider, never the account password.
type Account struct {
	Address     string
	AppPassword string
	Name        string
}

// Send delivers the generated document to the recipient over the
// sender's provider SMTP endpoint using STARTTLS. The subject and body
// are recovered from the normalized text. Failures map onto AuthError,
// RecipientError, and TransportError; none are retried here.
func Send(ctx context.Context, result *types.GenerationResult, from Account, to string) error {
	if _, err := mail.ParseAddress(from.Address); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", from.Address, err)
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", to, err)
	}

	provider, err := ProviderFor(from.Address)
	if err != nil {
		return err
	}

	subject, body := ParseMessage(result.NormalizedText)
	msg := buildMessage(from, to, subject, body)

	addr := fmt.Sprintf("%s:%d", provider.Host, provider.Port)
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return &TransportError{Host: provider.Host, Cause: err}
	}

	client, err := smtp.NewClient(conn, provider.Host)
	if err != nil {
		_ = conn.Close()
		return &TransportError{Host: provider.Host, Cause: err}
	}
	defer func() { _ = client.Close() }()

	if err := client.StartTLS(&tls.Config{ServerName: provider.Host}); err != nil {
		return &TransportError{Host: provider.Host, Cause: err}
	}

	return converse(client, provider.Host, from, to, msg)
}

// converse runs the authenticated exchange on an established client.
// Split from Send so tests can drive it over a plain local socket.
// Every failure carries its place in the error taxonomy, the closing
// QUIT included.
func converse(client *smtp.Client, host string, from Account, to, msg string) error {
	auth := smtp.PlainAuth("", from.Address, from.AppPassword, host)
	if err := client.Auth(auth); err != nil {
		if isAuthRejection(err) {
			return &AuthError{Cause: err}
		}
		return &TransportError{Host: host, Cause: err}
	}

	if err := client.Mail(from.Address); err != nil {
		return &TransportError{Host: host, Cause: err}
	}
	if err := client.Rcpt(to); err != nil {
		return &RecipientError{Recipient: to, Cause: err}
	}

	w, err := client.Data()
	if err != nil {
		return &TransportError{Host: host, Cause: err}
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return &TransportError{Host: host, Cause: err}
	}
	if err := w.Close(); err != nil {
		return &TransportError{Host: host, Cause: err}
	}

	if err := client.Quit(); err != nil {
		return &TransportError{Host: host, Cause: err}
	}
	return nil
}

// buildMessage assembles the RFC 5322 message. The sender display name
// falls back to the address local part.
func buildMessage(from Account, to, subject, body string) string {
	name := from.Name
	if name == "" {
		name, _, _ = strings.Cut(from.Address, "@")
	}
	fromHeader := (&mail.Address{Name: name, Address: from.Address}).String()

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", fromHeader)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.String()
}

// isAuthRejection reports whether an SMTP reply code indicates a
// credential failure rather than a transport problem.
func isAuthRejection(err error) bool {
	var proto *textproto.Error
	if !errors.As(err, &proto) {
		return false
	}
	switch proto.Code {
	case 530, 534, 535:
		return true
	}
	return false
}
