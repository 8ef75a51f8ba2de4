package email

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog"
)

// Mailer delivers account emails. The rest of the app only ever needs the
// verification message, so that is the whole surface.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
}

// MailgunMailer sends through the Mailgun API.
type MailgunMailer struct {
	mg   *mailgun.MailgunImpl
	from string
	log  *zerolog.Logger
}

func NewMailgunMailer(domain, apiKey, from string, log *zerolog.Logger) *MailgunMailer {
	return &MailgunMailer{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
		log:  log,
	}
}

func (m *MailgunMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	msg := m.mg.NewMessage(m.from, "Mugna: Verify Your New Account", verificationText(name, code), to)
	msg.SetHtml(verificationHTML(name, code))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, _, err := m.mg.Send(ctx, msg)
	if err != nil {
		m.log.Error().Err(err).Str("to", to).Msg("failed to send verification email")
		return fmt.Errorf("send verification email: %w", err)
	}
	m.log.Info().Str("to", to).Msg("verification email sent")
	return nil
}

// LogMailer writes the code to the log instead of sending anything. Used
// when Mailgun credentials are not configured, e.g. local development.
type LogMailer struct {
	Log *zerolog.Logger
}

func (m *LogMailer) SendVerificationCode(_ context.Context, to, name, code string) error {
	m.Log.Info().Str("to", to).Str("name", name).Str("code", code).Msg("verification email (log only)")
	return nil
}

func verificationText(name, code string) string {
	return fmt.Sprintf("Email verification for %s\n\nYour Mugna verification code is %s. It is valid for 10 minutes.\nIf you did not create an account, please ignore this email.\n", name, code)
}

func verificationHTML(name, code string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; padding: 20px;">
  <h2>Email Verification for %s</h2>
  <p>Thank you for signing up with Mugna. Please use the following 6-digit code to verify your email address:</p>
  <div style="text-align: center; margin: 20px 0;">
    <span style="font-size: 24px; font-weight: bold; letter-spacing: 5px;">%s</span>
  </div>
  <p>This code is valid for 10 minutes. If you did not create an account, please ignore this email.</p>
  <p>&mdash; The Mugna Team</p>
</div>`, name, code)
}
