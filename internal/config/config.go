// Package config defines the application configuration and its loading
// rules. Values come from environment variables (LISTKEEP_ prefix) and an
// optional config.yaml, with environment taking precedence.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Host     string `mapstructure:"host"      validate:"required"`
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// CORSAllowedOrigin is the single frontend origin allowed to call the
	// API from a browser.
	CORSAllowedOrigin string `mapstructure:"cors_allowed_origin" validate:"required,url"`
}

// DatabaseConfig contains all MongoDB related settings.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"  validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
}

// AuthConfig contains authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// Token lifetimes in minutes.
	TokenLifetimeMinutes        int `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`

	// APIKey, when set, enables the X-API-Key gate on every route.
	APIKey string `mapstructure:"api_key"`

	// GoogleClientID is the audience expected on Google sign-in ID tokens.
	// Empty disables the /auth/google endpoint.
	GoogleClientID string `mapstructure:"google_client_id"`
}
