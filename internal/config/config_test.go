package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, 2*time.Minute, cfg.FollowUpDelay)
	assert.Equal(t, "Asia/Kolkata", cfg.DisplayTimezone)
	assert.Equal(t, 3, cfg.ExtractMaxAttempts)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("FOLLOW_UP_DELAY", "90s")
	t.Setenv("SMTP_PORT", "587")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.FollowUpDelay)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestSMSEnabled_AllOrNothing(t *testing.T) {
	cfg := &Config{TwilioAccountSID: "AC123", TwilioAuthToken: "token"}
	assert.False(t, cfg.SMSEnabled(), "partial Twilio credentials must not enable SMS")

	cfg.TwilioFromNumber = "+15550001111"
	assert.True(t, cfg.SMSEnabled())
}

func TestEmailConfigured(t *testing.T) {
	assert.False(t, (&Config{}).EmailConfigured())
	assert.False(t, (&Config{EmailUser: "bot@example.com"}).EmailConfigured(), "password missing")
	assert.True(t, (&Config{EmailUser: "bot@example.com", EmailPassword: "app-pass"}).EmailConfigured())
	assert.True(t, (&Config{SendGridAPIKey: "SG.key"}).EmailConfigured())
}

func TestExtractorEnabled(t *testing.T) {
	assert.False(t, (&Config{}).ExtractorEnabled())
	assert.True(t, (&Config{GeminiAPIKey: "key"}).ExtractorEnabled())
}

func TestGetEnvAsDuration_Invalid(t *testing.T) {
	t.Setenv("FOLLOW_UP_DELAY", "not-a-duration")
	cfg := Load()
	assert.Equal(t, 2*time.Minute, cfg.FollowUpDelay)
}
