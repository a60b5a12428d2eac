// Package config provides configuration management for the student service.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting.
// Everything here is resolved once per process: in particular the record store path,
// so that every request in a process lifetime agrees on the same file.
// In Nest.js, the `@nestjs/config` module serves a similar purpose, often integrating
// with `.env` files and providing a `ConfigService`.
package config

import (
	"fmt"
	"net"
	// `os` package provides operating system functionalities, like reading environment variables.
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

// Defaults. They mirror the layout the service has always shipped with:
// the JSON file under `data/`, static assets next to the binary, loopback on 8000.
const (
	DefaultStudentsFile   = "data/students.json"
	DefaultHost           = "127.0.0.1"
	DefaultPort           = "8000"
	DefaultWebDir         = "web_folder/"
	DefaultCSSDir         = "css/"
	DefaultJSDir          = "js/"
	DefaultTokenDuration  = 24 * time.Hour
	DefaultRequestTimeout = 60 * time.Second
)

// StoreConfig holds record-store related configuration.
type StoreConfig struct {
	// Path of the JSON document holding the whole student collection.
	Path string `validate:"required"`
	// SerializeWrites makes every load-mutate-save run under one process-wide lock.
	// Off by default: concurrent mutations are last-write-wins.
	SerializeWrites bool
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	Secret        string        `validate:"required,min=16"` // HMAC key for signing and verifying tokens
	TokenDuration time.Duration `validate:"gt=0"`            // Lifetime of tokens minted by the `token` command
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host           string        `validate:"required"`
	Port           string        `validate:"required,numeric"`
	WebDir         string        // served at `/`
	CSSDir         string        // served at `/css/*`
	JSDir          string        // served at `/js/*`
	RequestTimeout time.Duration `validate:"gt=0"`
}

// Addr returns the host:port pair the HTTP server binds to.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=text json"`
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Store  *StoreConfig  `validate:"required"`
	Auth   *AuthConfig   `validate:"required"`
	Server *ServerConfig `validate:"required"`
	Log    *LogConfig    `validate:"required"`
}

// Helper function to get a required environment variable.
// Appends an error to the aggregate if the variable is not set.
// This promotes a "fail fast" approach for critical missing configurations.
func getRequiredEnv(key string, errs *multierror.Error) (string, *multierror.Error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return "", multierror.Append(errs, fmt.Errorf("missing required environment variable: %s", key))
	}
	return value, errs
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as a bool.
// Uses defaultValue if not set. A value that does not parse is collected as an error.
func getOptionalEnvBool(key string, defaultValue bool, errs *multierror.Error) (bool, *multierror.Error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, errs
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue, multierror.Append(errs, fmt.Errorf("invalid value for %s: expected boolean, got '%s': %w", key, valueStr, err))
	}
	return value, errs
}

// Helper function to get an optional environment variable parsed as time.Duration.
// `time.ParseDuration` expects a string like "15m", "1h30s".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *multierror.Error) (time.Duration, *multierror.Error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, errs
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue, multierror.Append(errs, fmt.Errorf("invalid value for %s: expected duration string, got '%s': %w", key, valueStr, err))
	}
	return value, errs
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errs *multierror.Error

	// Store Configuration
	serialize, errs := getOptionalEnvBool("STUDENTS_SERIALIZE_WRITES", false, errs)
	storeConfig := &StoreConfig{
		Path:            getOptionalEnv("STUDENTS_FILE", DefaultStudentsFile),
		SerializeWrites: serialize,
	}

	// Auth Configuration
	secret, errs := getRequiredEnv("AUTH_SECRET", errs)
	tokenDuration, errs := getOptionalEnvDuration("AUTH_TOKEN_DURATION", DefaultTokenDuration, errs)
	authConfig := &AuthConfig{
		Secret:        secret,
		TokenDuration: tokenDuration,
	}

	// Server Configuration
	requestTimeout, errs := getOptionalEnvDuration("REQUEST_TIMEOUT", DefaultRequestTimeout, errs)
	serverConfig := &ServerConfig{
		// Note: the port stays a string because it's used directly in the listen address.
		Host:           getOptionalEnv("HOST", DefaultHost),
		Port:           getOptionalEnv("PORT", DefaultPort),
		WebDir:         getOptionalEnv("WEB_DIR", DefaultWebDir),
		CSSDir:         getOptionalEnv("CSS_DIR", DefaultCSSDir),
		JSDir:          getOptionalEnv("JS_DIR", DefaultJSDir),
		RequestTimeout: requestTimeout,
	}

	logConfig := &LogConfig{
		Level:  getOptionalEnv("LOG_LEVEL", "info"),
		Format: getOptionalEnv("LOG_FORMAT", "text"),
	}

	// If any errors were collected during loading, return a single aggregated error message.
	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("configuration errors: %w", err)
	}

	cfg := &AppConfig{
		Store:  storeConfig,
		Auth:   authConfig,
		Server: serverConfig,
		Log:    logConfig,
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags of cfg and reports every violation at once.
func Validate(cfg *AppConfig) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("configuration errors: %w", err)
	}

	var errs *multierror.Error
	for _, fe := range verrs {
		errs = multierror.Append(errs, fmt.Errorf("invalid value for %s: failed '%s' check", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("configuration errors: %w", errs.ErrorOrNil())
}
