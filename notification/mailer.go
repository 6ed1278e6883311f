package notification

import (
	"context"
	"fmt"

	"storefront/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *Mailer) SendPlacementNotice(ctx context.Context, notice PlacementNotice) error {
	subject := fmt.Sprintf("Order %s received", notice.OrderID)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your order %s:\n\n  %s (%s) x%d\n  Total: %d DZD\n\nWe will contact you to confirm it shortly.\n",
		notice.CustomerName, notice.OrderID, notice.ProductName, notice.VariantName, notice.Quantity, notice.TotalPrice)
	return m.send(ctx, notice.CustomerEmail, subject, body)
}

func (m *Mailer) SendStatusNotice(ctx context.Context, notice StatusNotice) error {
	subject := fmt.Sprintf("Order %s update", notice.OrderID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour order %s is now %s.\n",
		notice.CustomerName, notice.OrderID, notice.NewStatus)
	return m.send(ctx, notice.CustomerEmail, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

var _ Dispatcher = (*Mailer)(nil)
