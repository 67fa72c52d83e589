package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Business profile file (name, hours, FAQs, booking link).
	BusinessConfigPath string

	// Directory for recorded caller messages.
	MessagesDir string

	// Session store selection and tuning.
	SessionStore         string // "memory" or "redis"
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
	RedisAddr            string
	RedisPassword        string
	RedisTLS             bool

	// Completion backend.
	OpenAIAPIKey      string
	OpenAIModel       string
	CompletionTimeout time.Duration

	// Telephony provider credentials.
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Caller numbers that are never treated as spam.
	Allowlist []string

	// Owner email notification for recorded messages.
	SendGridAPIKey    string
	SendGridFromEmail string
	OwnerEmail        string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		PublicBaseURL:        getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		BusinessConfigPath:   getEnv("BUSINESS_CONFIG_PATH", "config.json"),
		MessagesDir:          getEnv("MESSAGES_DIR", "messages"),
		SessionStore:         strings.ToLower(strings.TrimSpace(getEnv("SESSION_STORE", "memory"))),
		SessionIdleTimeout:   getEnvAsDuration("SESSION_IDLE_TIMEOUT", 90*time.Second),
		SessionSweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		RedisAddr:            getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisTLS:             getEnvAsBool("REDIS_TLS", false),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		CompletionTimeout:    getEnvAsDuration("COMPLETION_TIMEOUT", 5*time.Second),
		TwilioAccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber:    getEnv("TWILIO_PHONE_NUMBER", ""),
		Allowlist:            getEnvAsList("ALLOWLIST"),
		SendGridAPIKey:       getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail:    getEnv("SENDGRID_FROM_EMAIL", ""),
		OwnerEmail:           getEnv("OWNER_EMAIL", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
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

// getEnvAsList splits a comma-separated environment variable, dropping empty entries.
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
