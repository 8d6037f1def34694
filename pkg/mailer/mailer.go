package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends transactional email over SMTP. Campaign email goes through
// Klaviyo; this covers booking confirmations and admin notifications.
type Mailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
}

func NewMailer(host string, port int, username, password, fromEmail, fromName string) *Mailer {
	return &Mailer{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *Mailer) Enabled() bool {
	return m.host != "" && m.username != ""
}

func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if !m.Enabled() {
		return errors.New("mailer is not configured")
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.fromName, m.fromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.fromEmail, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
