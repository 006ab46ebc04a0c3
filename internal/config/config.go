package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// SMTP email credentials (Gmail app password by default)
	EmailUser     string
	EmailPassword string
	SMTPHost      string
	SMTPPort      int

	// SendGrid email (preferred over SMTP when the API key is set)
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Twilio SMS (all three required to enable SMS)
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Gemini natural-language extraction
	GeminiAPIKey          string
	GeminiModel           string
	ExtractMaxAttempts    int
	ExtractRetryBaseDelay time.Duration

	// Scheduler behavior
	FollowUpDelay   time.Duration
	DisplayTimezone string

	CORSAllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "10000"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		EmailUser:     getEnv("EMAIL_USER", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnvAsInt("SMTP_PORT", 465),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Appointment Bot"),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_PHONE_NUMBER", ""),

		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ExtractMaxAttempts:    getEnvAsInt("EXTRACT_MAX_ATTEMPTS", 3),
		ExtractRetryBaseDelay: getEnvAsDuration("EXTRACT_RETRY_BASE_DELAY", 2*time.Second),

		FollowUpDelay:   getEnvAsDuration("FOLLOW_UP_DELAY", 2*time.Minute),
		DisplayTimezone: getEnv("DISPLAY_TZ", "Asia/Kolkata"),

		CORSAllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGINS", "*")},
	}
}

// EmailConfigured reports whether any email provider can be constructed.
func (c *Config) EmailConfigured() bool {
	if c.SendGridAPIKey != "" {
		return true
	}
	return c.EmailUser != "" && c.EmailPassword != ""
}

// SMSEnabled reports whether all Twilio credentials are present.
// SMS is all-or-nothing: a partial credential set leaves it disabled.
func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

// ExtractorEnabled reports whether the Gemini extractor can be constructed.
func (c *Config) ExtractorEnabled() bool {
	return c.GeminiAPIKey != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
