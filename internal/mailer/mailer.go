package mailer

import (
	"gopkg.in/gomail.v2"
)

// Config holds the SMTP settings for outgoing notification mail.
type Config struct {
	Host     string
	Port     int
	Email    string
	Password string
}

// SMTPMailer sends seller notification emails over SMTP.
type SMTPMailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewSMTPMailer creates a mailer for the given SMTP settings.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password),
	}
}

// SendReviewReceived tells a seller one of their products got a new review.
func (m *SMTPMailer) SendReviewReceived(toEmail, productTitle string) error {
	return m.send(toEmail, "New Review Received",
		"Your product '"+productTitle+"' has received a new review.")
}

// SendProductSold tells a seller their product was marked as sold.
func (m *SMTPMailer) SendProductSold(toEmail, productTitle string) error {
	return m.send(toEmail, "Product Sold",
		"Your product '"+productTitle+"' has been marked as sold. Congratulations!")
}

func (m *SMTPMailer) send(toEmail, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Email)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// Noop discards all mail. Used when SMTP is not configured.
type Noop struct{}

func (Noop) SendReviewReceived(toEmail, productTitle string) error { return nil }
func (Noop) SendProductSold(toEmail, productTitle string) error    { return nil }
