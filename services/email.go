package services

import (
	"fmt"
	"log"
	"strings"

	"diligencias_app_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}

	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email in a goroutine so handlers don't block on the
// Resend round trip.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (development mode - not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// BuildPasswordResetEmail creates a password reset email with reset link
func BuildPasswordResetEmail(userEmail, userName, resetLink, expiresAt string) *Email {
	text := fmt.Sprintf(
		"Hola %s,\n\n"+
			"Hemos recibido una solicitud para restablecer la contraseña de tu cuenta.\n"+
			"Para continuar, abre el siguiente enlace:\n\n%s\n\n"+
			"El enlace caduca el %s. Si no has solicitado este cambio, ignora este mensaje.\n",
		userName, resetLink, expiresAt)

	html := fmt.Sprintf(
		`<p>Hola %s,</p>`+
			`<p>Hemos recibido una solicitud para restablecer la contraseña de tu cuenta.</p>`+
			`<p><a href="%s">Restablecer contraseña</a></p>`+
			`<p>El enlace caduca el %s. Si no has solicitado este cambio, ignora este mensaje.</p>`,
		userName, resetLink, expiresAt)

	return &Email{
		To:       []string{userEmail},
		Subject:  "Restablecer contraseña - Gestor de Diligencias",
		HTMLBody: html,
		TextBody: text,
	}
}
