package helper

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"html/template"
	"math/big"

	"gopkg.in/gomail.v2"

	"github.com/telugujayaprakash/myprofileDashboard/config"
)

// GenerateOTP returns a 6-digit numeric code from crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("helper: generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Mailer sends the OTP mails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	ttl    string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPUser,
		ttl:    fmt.Sprintf("%d minutes", int(cfg.OTPTTL.Minutes())),
	}
}

func (m *Mailer) SendOTP(email, code string) error {
	body, err := buildOTPBody(code, m.ttl)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your verification code - MyDashboard")
	msg.SetBody("text/plain", fmt.Sprintf("Your MyDashboard verification code is: %s\nIt expires in %s.", code, m.ttl))
	msg.AddAlternative("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("helper: send otp mail: %w", err)
	}
	return nil
}

var otpTemplate = template.Must(template.New("otp").Parse(otpHTMLTemplate))

func buildOTPBody(code, ttl string) (string, error) {
	var buf bytes.Buffer
	err := otpTemplate.Execute(&buf, struct {
		Code      string
		ExpiresIn string
	}{Code: code, ExpiresIn: ttl})
	if err != nil {
		return "", fmt.Errorf("helper: otp template: %w", err)
	}
	return buf.String(), nil
}

const otpHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 480px; margin: 0 auto; padding: 32px; background-color: #ffffff; border-radius: 8px;">
    <h1 style="font-size: 22px; color: #4f46e5; text-align: center;">MyDashboard</h1>
    <p style="font-size: 15px; color: #374151;">Your verification code is:</p>
    <div style="background-color: #f3f4f6; border-radius: 8px; padding: 20px; text-align: center;">
      <span style="font-size: 30px; font-weight: 700; letter-spacing: 8px; color: #1f2937;">{{.Code}}</span>
    </div>
    <p style="font-size: 13px; color: #9ca3af; text-align: center;">This code expires in {{.ExpiresIn}}.</p>
    <p style="font-size: 12px; color: #9ca3af; text-align: center;">If you did not request this code, you can safely ignore this email.</p>
  </div>
</body>
</html>`
