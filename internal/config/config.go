package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dineroCheck/internal/modules/dinero/domain"
)

// Environment variable names understood by the tool.
const (
	EnvClientID     = "DINERO_CLIENT_ID"
	EnvClientSecret = "DINERO_CLIENT_SECRET"
	EnvAPIKey       = "DINERO_API_KEY"
	EnvOrgID        = "DINERO_ORG_ID"

	EnvTokenURL    = "DINERO_TOKEN_URL"
	EnvAPIBaseURL  = "DINERO_API_BASE_URL"
	EnvHTTPTimeout = "DINERO_HTTP_TIMEOUT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvKafkaBroker = "DINERO_KAFKA_BROKERS"
	EnvKafkaTopic  = "DINERO_KAFKA_TOPIC"
)

const (
	DefaultTokenURL    = "https://authz.dinero.dk/dineroapi/oauth/token"
	DefaultAPIBaseURL  = "https://api.dinero.dk/v1"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultKafkaTopic  = "dinero.connectivity"
)

// ErrMissingConfiguration is matched by every MissingConfigurationError.
var ErrMissingConfiguration = errors.New("missing configuration")

// MissingConfigurationError names the first required variable that was not set.
type MissingConfigurationError struct {
	Name string
}

func (e *MissingConfigurationError) Error() string {
	return "Missing required environment variable: " + e.Name
}

func (e *MissingConfigurationError) Unwrap() error {
	return ErrMissingConfiguration
}

type EndpointsConfig struct {
	TokenURL   string
	APIBaseURL string
	Timeout    time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether run results should be published.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Settings holds the optional knobs. None of them are required to run.
type Settings struct {
	Endpoints EndpointsConfig
	Logging   LoggingConfig
	Kafka     KafkaConfig
}

// LoadSettings resolves the optional settings, falling back to defaults.
func LoadSettings(getenv func(string) string) (Settings, error) {
	settings := Settings{
		Endpoints: EndpointsConfig{
			TokenURL:   valueOrDefault(getenv(EnvTokenURL), DefaultTokenURL),
			APIBaseURL: strings.TrimRight(valueOrDefault(getenv(EnvAPIBaseURL), DefaultAPIBaseURL), "/"),
			Timeout:    DefaultHTTPTimeout,
		},
		Logging: LoggingConfig{
			Level:  valueOrDefault(getenv(EnvLogLevel), "warn"),
			Format: valueOrDefault(getenv(EnvLogFormat), "text"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getenv(EnvKafkaBroker)),
			Topic:   valueOrDefault(getenv(EnvKafkaTopic), DefaultKafkaTopic),
		},
	}

	if raw := strings.TrimSpace(getenv(EnvHTTPTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s %q: %w", EnvHTTPTimeout, raw, err)
		}
		if timeout <= 0 {
			return Settings{}, fmt.Errorf("invalid %s %q: must be positive", EnvHTTPTimeout, raw)
		}
		settings.Endpoints.Timeout = timeout
	}

	return settings, nil
}

// LoadCredentials reads the four required variables in order and stops at the first one missing.
func LoadCredentials(getenv func(string) string) (domain.Credentials, error) {
	var creds domain.Credentials
	fields := []struct {
		name   string
		target *string
	}{
		{EnvClientID, &creds.ClientID},
		{EnvClientSecret, &creds.ClientSecret},
		{EnvAPIKey, &creds.APIKey},
		{EnvOrgID, &creds.OrganizationID},
	}
	for _, field := range fields {
		value := strings.TrimSpace(getenv(field.name))
		if value == "" {
			return domain.Credentials{}, &MissingConfigurationError{Name: field.name}
		}
		*field.target = value
	}
	return creds, nil
}

func valueOrDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
