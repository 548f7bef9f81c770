package email

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/dangerclosesec/crmboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smtpConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SMTP.Host = "mail.local"
	cfg.SMTP.Port = 2525
	cfg.SMTP.From = "noreply@crmboard.local"
	return cfg
}

func TestLoadTemplates(t *testing.T) {
	s, err := NewEmailService(smtpConfig(), ProviderSMTP)
	require.NoError(t, err)
	assert.Contains(t, s.Templates, reminderTemplate)

	html, text, err := s.renderTemplate(reminderTemplate, ReminderData{
		Title:    "Acme kickoff",
		StartsAt: "Mon, 02 Mar 2026 09:00 UTC",
		Location: "Room 4",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "<h2 style=\"margin-bottom: 4px;\">Acme kickoff</h2>")
	assert.Contains(t, text, "Starts Mon, 02 Mar 2026 09:00 UTC at Room 4")

	_, _, err = s.renderTemplate("missing", nil)
	assert.Error(t, err)
}

func TestSendReminderOverSMTP(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
	)
	orig := sendMail
	sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}
	t.Cleanup(func() { sendMail = orig })

	s, err := NewEmailService(smtpConfig(), ProviderFor(smtpConfig()))
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	err = SendReminder(context.Background(), s, "rep@acme.io", "Acme kickoff", start, "", "", "https://crm.local/calendar")
	require.NoError(t, err)

	assert.Equal(t, "mail.local:2525", gotAddr)
	assert.Equal(t, "noreply@crmboard.local", gotFrom)
	assert.Equal(t, []string{"rep@acme.io"}, gotTo)
	assert.True(t, strings.Contains(gotMsg, "Subject: Reminder: Acme kickoff"))
	assert.Contains(t, gotMsg, "multipart/alternative")
}

func TestProviderFor(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, ProviderSMTP, ProviderFor(cfg))
	cfg.Sendgrid.APIKey = "SG.x"
	assert.Equal(t, ProviderSendgrid, ProviderFor(cfg))
}
