package services

import (
	"fmt"
	"html"
	"log"
	"strings"

	"page_flow_app_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// BuildPageReadyEmail notifies a user that their generated landing
// page is ready to preview.
func BuildPageReadyEmail(toEmail, pageTitle, previewURL string) *Email {
	title := strings.TrimSpace(pageTitle)
	if title == "" {
		title = "Your landing page"
	}

	htmlBody := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
<h2 style="color: #1a1a2e;">%s is ready</h2>
<p>The content for your landing page has been generated. Open the preview to review and edit it.</p>
<p><a href="%s" style="display: inline-block; padding: 12px 24px; background: #4f46e5; color: #fff; border-radius: 8px; text-decoration: none;">Open preview</a></p>
<p style="color: #9a9ab0; font-size: 13px;">If the button does not work, copy this link: %s</p>
</div>`, html.EscapeString(title), previewURL, previewURL)

	textBody := fmt.Sprintf("%s is ready.\n\nOpen the preview to review and edit it:\n%s\n", title, previewURL)

	return &Email{
		To:       []string{toEmail},
		Subject:  fmt.Sprintf("%s is ready to preview", title),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
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
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent to %s (id: %s)", strings.Join(email.To, ", "), sent.Id)
	return nil
}

// SendEmailAsync sends an email in a goroutine; failures are logged,
// never surfaced to the request that triggered them.
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Copy to avoid races with the caller mutating the message
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

func logEmailToConsole(email *Email) {
	log.Printf("---- EMAIL (test mode, not sent) ----")
	log.Printf("To: %s", strings.Join(email.To, ", "))
	log.Printf("Subject: %s", email.Subject)
	log.Printf("Body:\n%s", email.TextBody)
	log.Printf("-------------------------------------")
}
