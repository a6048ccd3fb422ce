package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	apperrors "github.com/plategenie/server/pkg/errors"
)

// SMTPMailer delivers transactional mail through a plain SMTP relay
// (Gmail app-password setup in the default deployment).
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func New(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a single HTML email. Failures are wrapped as delivery
// errors so callers can report them distinctly from storage faults.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := fmt.Sprintf("From: %s <%s>\r\n", m.from, m.username) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		htmlBody

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.username, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDelivery, err)
	}
	return nil
}

// SendOTP sends the verification code email used during registration.
func (m *SMTPMailer) SendOTP(ctx context.Context, to, otp string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #ddd; border-radius: 8px; overflow: hidden;">
          <div style="background-color: #f4f4f4; padding: 20px; text-align: center;">
            <h2 style="color: #333;">PlateGenie OTP Verification</h2>
          </div>
          <div style="padding: 20px; text-align: center;">
            <p style="font-size: 16px; color: #555;">Use the OTP below to verify your email:</p>
            <h1 style="font-size: 36px; font-weight: bold; color: #007bff; margin: 20px 0;">%s</h1>
            <p style="font-size: 14px; color: #888;">This code is valid for 5 minutes.</p>
          </div>
          <div style="background-color: #f4f4f4; padding: 15px; text-align: center; font-size: 12px; color: #888;">
            <p>If you did not make this request, please ignore this email.</p>
          </div>
        </div>`, otp)

	return m.Send(to, "OTP Verification for PlateGenie", body)
}
