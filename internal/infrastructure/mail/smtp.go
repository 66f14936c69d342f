package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"
)

const defaultTimeout = 3 * time.Second

// Config holds the outbound SMTP settings. Timeout bounds one Send and
// defaults to 3s.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends plain-text mail through an SMTP relay. Each Send dials a
// new connection.
type SMTPMailer struct {
	from    string
	timeout time.Duration
	dialer  sender
}

func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp from address is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.Timeout = timeout
	if cfg.Port == 465 {
		d.SSL = true
	}
	return &SMTPMailer{from: cfg.From, timeout: timeout, dialer: d}, nil
}

// Send returns once the relay accepts the message, the timeout passes or ctx
// is done, whichever comes first. An abandoned delivery keeps running in the
// background until the dialer gives up.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send email: %w", ctx.Err())
	}
}
