package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultVerifyToken is used for the webhook handshake when WEBHOOK_VERIFY_TOKEN is unset.
const DefaultVerifyToken = "bellizy_token"

// Provider exposes read access to the application configuration.
// Components depend on this instead of the concrete struct so tests can stub it.
type Provider interface {
	GetPort() int
	GetServiceName() string
	GetVerifyToken() string
	GetAccessToken() string
	GetPhoneNumberID() string
	GetGraphBaseURL() string
	GetGraphVersion() string
	GetGraphTimeout() time.Duration
	GetLogFormat() string
	GetLogLevel() string
	GetAllowedOrigins() []string
	GetBodyLimit() string
	GetTracing() TracingConfig
}

// TracingConfig holds the settings for pubsub tracing.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	ZipkinURL   string
}

// Config holds all configuration for the application.
type Config struct {
	Port        int    `envconfig:"PORT" default:"3001"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"wabridge"`

	// VerifyToken is the shared secret for the webhook subscription handshake.
	VerifyToken string `envconfig:"WEBHOOK_VERIFY_TOKEN" default:"bellizy_token"`
	// AccessToken is the default bearer credential for the send API.
	AccessToken string `envconfig:"WHATSAPP_TOKEN"`
	// PhoneNumberID identifies the sending line on the platform.
	PhoneNumberID string `envconfig:"PHONE_NUMBER_ID"`

	GraphBaseURL string        `envconfig:"GRAPH_API_BASE_URL" default:"https://graph.facebook.com"`
	GraphVersion string        `envconfig:"GRAPH_API_VERSION" default:"v18.0"`
	GraphTimeout time.Duration `envconfig:"GRAPH_API_TIMEOUT" default:"15s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"debug"`

	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	// BodyLimit caps request bodies, in echo's size notation ("1M", "512K").
	BodyLimit string `envconfig:"BODY_LIMIT" default:"1M"`

	TracingEnabled     bool   `envconfig:"PUBSUB_TRACING_ENABLED" default:"false"`
	TracingServiceName string `envconfig:"PUBSUB_TRACING_SERVICE_NAME" default:"wabridge"`
	TracingZipkinURL   string `envconfig:"PUBSUB_TRACING_ZIPKIN_URL" default:"http://localhost:9411/api/v2/spans"`
}

// Compile-time check.
var _ Provider = (*Config)(nil)

// New loads configuration from a .env file (if any) and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// slog is not configured yet at this point.
		log.Println("No .env file found, relying on environment variables")
	}
	return Load()
}

// Load decodes the current environment into a Config without touching .env files.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if cfg.VerifyToken == "" {
		cfg.VerifyToken = DefaultVerifyToken
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) GetPort() int                   { return c.Port }
func (c *Config) GetServiceName() string         { return c.ServiceName }
func (c *Config) GetVerifyToken() string         { return c.VerifyToken }
func (c *Config) GetAccessToken() string         { return c.AccessToken }
func (c *Config) GetPhoneNumberID() string       { return c.PhoneNumberID }
func (c *Config) GetGraphBaseURL() string        { return c.GraphBaseURL }
func (c *Config) GetGraphVersion() string        { return c.GraphVersion }
func (c *Config) GetGraphTimeout() time.Duration { return c.GraphTimeout }
func (c *Config) GetLogFormat() string           { return c.LogFormat }
func (c *Config) GetLogLevel() string            { return c.LogLevel }
func (c *Config) GetAllowedOrigins() []string    { return c.AllowedOrigins }
func (c *Config) GetBodyLimit() string           { return c.BodyLimit }

// GetTracing groups the tracing settings for the pubsub layer.
func (c *Config) GetTracing() TracingConfig {
	return TracingConfig{
		Enabled:     c.TracingEnabled,
		ServiceName: c.TracingServiceName,
		ZipkinURL:   c.TracingZipkinURL,
	}
}
