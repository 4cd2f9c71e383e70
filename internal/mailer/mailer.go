package mailer

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"

	"reviewhub/internal/config"
)

// Mailer delivers a single message. Sign-up treats a send failure as fatal:
// the caller must see the error, never a silent drop.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends through a configured SMTP relay, throttled so a burst of
// sign-ups cannot get the sender address blacklisted.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	limiter *rate.Limiter
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:    cfg.EmailFrom,
		limiter: rate.NewLimiter(rate.Limit(cfg.MailSendRate), 5),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail rate limit: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
