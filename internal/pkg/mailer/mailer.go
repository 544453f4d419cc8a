package mailer

import (
	"context"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Message is one outbound email. Text is the plain-text alternative to
// the HTML body.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Mailer is the outbound email transport. Callers treat delivery as
// best-effort: a returned error is logged, never propagated to users.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTP sends mail through a real SMTP server.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func NewSMTP(host string, port int, user, password, from string, log *zap.Logger) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		log:    log,
	}
}

// Send delivers to each recipient, honoring the context deadline. The
// SMTP dial itself has no context support, so it runs in a goroutine
// and a deadline expiry is reported as a delivery failure.
func (m *SMTP) Send(ctx context.Context, msg Message) error {
	em := gomail.NewMessage()
	em.SetHeader("From", m.from)
	em.SetHeader("To", msg.To...)
	em.SetHeader("Subject", msg.Subject)
	em.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		em.AddAlternative("text/html", msg.HTML)
	}

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(em)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.log.Warn("smtp send failed",
				zap.Strings("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err))
		}
		return err
	case <-ctx.Done():
		m.log.Warn("smtp send timed out",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject))
		return ctx.Err()
	}
}

// Console logs instead of sending. Used whenever SMTP credentials are
// not configured, so local and test environments behave identically to
// production minus the actual delivery.
type Console struct {
	log *zap.Logger
}

func NewConsole(log *zap.Logger) *Console {
	return &Console{log: log}
}

func (m *Console) Send(_ context.Context, msg Message) error {
	m.log.Info("email (console fallback)",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("text_len", len(msg.Text)))
	return nil
}
