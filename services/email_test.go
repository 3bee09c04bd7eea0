package services

import (
	"testing"

	"page_flow_app_go/config"

	"github.com/stretchr/testify/assert"
)

func TestBuildPageReadyEmail(t *testing.T) {
	email := BuildPageReadyEmail("owner@example.com", "Spring Sale", "https://app.example/preview")

	assert.Equal(t, []string{"owner@example.com"}, email.To)
	assert.Equal(t, "Spring Sale is ready to preview", email.Subject)
	assert.Contains(t, email.HTMLBody, "https://app.example/preview")
	assert.Contains(t, email.TextBody, "https://app.example/preview")

	// Untitled pages get a generic subject.
	email = BuildPageReadyEmail("owner@example.com", "  ", "https://app.example/preview")
	assert.Equal(t, "Your landing page is ready to preview", email.Subject)

	// Titles are escaped in the HTML body.
	email = BuildPageReadyEmail("owner@example.com", "<b>Sale</b>", "https://app.example/preview")
	assert.NotContains(t, email.HTMLBody, "<b>Sale</b>")
}

func TestSendEmailTestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}
	err := SendEmail(cfg, BuildPageReadyEmail("owner@example.com", "Sale", "https://app.example/preview"))
	assert.NoError(t, err)
}

func TestSendEmailRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false}
	err := SendEmail(cfg, BuildPageReadyEmail("owner@example.com", "Sale", "https://app.example/preview"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}
