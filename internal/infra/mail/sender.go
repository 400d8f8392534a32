package mail

import (
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(cfg SMTPConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// UnsubscribeLink builds the opt-out URL embedded in every footer.
func (s *EmailSender) UnsubscribeLink(email string) string {
	return fmt.Sprintf("%s/unsubscribe?email=%s&token=%s",
		s.cfg.AppURL,
		url.QueryEscape(email),
		UnsubscribeToken(s.cfg.UnsubscribeSecret, email),
	)
}

func (s *EmailSender) footer(to string) string {
	return fmt.Sprintf(
		`<hr><small>%s — Utah<br>Prefer not to hear from us? <a href="%s">Unsubscribe</a>.</small>`,
		s.cfg.FromName, s.UnsubscribeLink(to),
	)
}

// Send delivers one HTML message over SMTP, appending the unsubscribe
// footer. Fire-and-forget: success of the send call is the only
// delivery signal.
func (s *EmailSender) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromEmail, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html+s.footer(to))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	return nil
}
