package service

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/jordan-wright/email"
)

// Mailer 把通知以邮件形式抄送一份，SMTP 未配置时不启用
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewMailerFromEnv SMTP_HOST 为空时返回 nil
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	return &Mailer{
		host:     host,
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return nil
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := e.Send(addr, smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
