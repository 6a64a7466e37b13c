package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"natura-salon-backend/config"
	"natura-salon-backend/models"
)

// Notifier is told about every reservation that was stored.
type Notifier interface {
	ReservationCreated(ctx context.Context, res models.Reservation) error
}

type NopNotifier struct{}

func (NopNotifier) ReservationCreated(context.Context, models.Reservation) error { return nil }

// SendGridNotifier emails a booking confirmation to the customer.
type SendGridNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
	menus  map[string]string
}

func NewSendGridNotifier(cfg config.SendGridConfig, menu []config.MenuItem) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
		menus:  menuNames(menu),
	}
}

func (n *SendGridNotifier) ReservationCreated(ctx context.Context, res models.Reservation) error {
	subject, plain := confirmationEmail(n.from.Name, res, n.menus)
	to := mail.NewEmail(res.Name, res.Email)
	message := mail.NewSingleEmail(n.from, subject, to, plain, "")

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	log.Info().Uint("reservation_id", res.ID).Int("status", response.StatusCode).Msg("Confirmation email sent")
	return nil
}

func confirmationEmail(salon string, res models.Reservation, menus map[string]string) (subject, body string) {
	subject = fmt.Sprintf("%s: reservation confirmed for %s %s", salon, res.PreferredDate, res.PreferredTime)
	body = fmt.Sprintf(
		"Hello %s,\n\nThank you for your reservation.\n\n"+
			"Date: %s\nTime: %s\nMenu: %s\nReservation number: %d\n\n"+
			"If you need to change or cancel, please call us.\n\n%s",
		res.Name, res.PreferredDate, res.PreferredTime, menuLabel(menus, res.Menu), res.ID, salon,
	)
	return subject, body
}

func menuNames(items []config.MenuItem) map[string]string {
	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.Key] = item.Name
	}
	return names
}

func menuLabel(menus map[string]string, key string) string {
	if name, ok := menus[key]; ok && name != "" {
		return name
	}
	return key
}
