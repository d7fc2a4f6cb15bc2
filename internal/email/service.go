package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/clinicore/clinic-api/internal/config"
	"github.com/clinicore/clinic-api/internal/model"
)

// Notifier sends best-effort appointment notifications.
type Notifier interface {
	SendAppointmentConfirmation(to string, appointment *model.Appointment) error
}

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewNotifier returns an SMTP notifier, or a no-op one when SMTP is not
// configured.
func NewNotifier(cfg config.SMTPConfig) Notifier {
	if cfg.Host == "" {
		return NoopNotifier{}
	}
	return &smtpNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (n *smtpNotifier) SendAppointmentConfirmation(to string, appointment *model.Appointment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Appointment confirmation")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your appointment on %s at %s has been booked. Current status: %s.",
		appointment.Date, appointment.Time, appointment.Status,
	))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

// NoopNotifier drops every notification.
type NoopNotifier struct{}

func (NoopNotifier) SendAppointmentConfirmation(string, *model.Appointment) error {
	return nil
}
