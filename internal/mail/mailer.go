package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Message is a fully rendered outbound email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer delivers HTML email over SMTP. A nil *Mailer is a valid disabled
// transport: Send logs and reports failure without error.
type Mailer struct {
	host string
	port int
	user string
	pass string
	// If true, skip TLS certificate verification (useful for local dev like MailHog).
	InsecureSkipVerify bool
}

// NewMailer creates an SMTP mailer. Returns nil when host or port are
// missing, which disables outbound mail for the whole process.
func NewMailer(host string, port int, user, pass string) *Mailer {
	if host == "" || port <= 0 {
		return nil
	}
	return &Mailer{host: host, port: port, user: user, pass: pass}
}

// Send delivers msg through SMTP, using STARTTLS when the server offers it
// and PlainAuth when credentials are configured.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	headers := map[string]string{
		"From":         msg.From,
		"To":           msg.To,
		"Subject":      encodeRFC2047(msg.Subject),
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	if msg.ReplyTo != "" {
		headers["Reply-To"] = msg.ReplyTo
	}
	var sb strings.Builder
	for k, v := range headers {
		sb.WriteString(k + ": " + v + "\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(msg.HTML)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if err := c.Hello("localhost"); err != nil {
		return err
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		cfg := &tls.Config{
			ServerName:         m.host,
			InsecureSkipVerify: m.InsecureSkipVerify,
		}
		if err := c.StartTLS(cfg); err != nil {
			return err
		}
		// Re-EHLO after TLS to refresh advertised extensions.
		if err := c.Hello("localhost"); err != nil {
			return err
		}
	}

	if auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(msg.From); err != nil {
		return err
	}
	if err := c.Rcpt(msg.To); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(sb.String())); err != nil {
		return err
	}
	return w.Close()
}

// encodeRFC2047 Q-encodes a Subject header so non-ASCII subjects (Arabic
// locale) survive transport.
func encodeRFC2047(s string) string {
	return fmt.Sprintf("=?UTF-8?Q?%s?=", qEncode(s))
}

func qEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		} else if c == ' ' {
			b.WriteByte('_')
		} else {
			b.WriteString(fmt.Sprintf("=%02X", c))
		}
	}
	return b.String()
}
