package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/healthify-app/healthify-api/internal/config"
	"github.com/healthify-app/healthify-api/internal/otp"
)

type Mailer interface {
	Send(to, subject, body string) error
	SendOTP(to, code string, purpose otp.Purpose) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func NewSMTP(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (m *smtpMailer) SendOTP(to, code string, purpose otp.Purpose) error {
	var subject, body string

	switch purpose {
	case otp.PurposeReset:
		subject = "Password Reset OTP"
		body = fmt.Sprintf("Your password reset OTP is: %s. It will expire in 5 minutes.", code)
	default:
		subject = "Your OTP Code"
		body = fmt.Sprintf("Your OTP is: %s. It will expire in 5 minutes.", code)
	}

	return m.Send(to, subject, body)
}
