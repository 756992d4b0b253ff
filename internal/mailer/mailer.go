package mailer

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends transactional mail (password resets) through the Mailgun API.
type Mailgun struct {
	mg   *mailgun.MailgunImpl
	from string
}

func New(domain, apiKey, from string) *Mailgun {
	return &Mailgun{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, body string) error {
	msg := m.mg.NewMessage(m.from, subject, body, to)
	_, _, err := m.mg.Send(ctx, msg)
	return err
}
