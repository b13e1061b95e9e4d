package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Auth0         Auth0Config
	RateLimit     RateLimitConfig
	CORS          CORSConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
	TLS               struct {
		Enabled  bool
		CertFile string
		KeyFile  string
	}
}

// DatabaseConfig holds PostgreSQL database configuration.
// When ConnectionString (from DATABASE_URL) is set, it takes precedence over individual fields.
type DatabaseConfig struct {
	ConnectionString string // From DATABASE_URL when set
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	ResetOnStart     bool // drop, recreate and seed the schema at startup
}

// Auth0Config holds the identity provider settings used to verify access tokens
type Auth0Config struct {
	Domain                 string // tenant domain, e.g. casting.eu.auth0.com
	Audience               string
	Issuer                 string
	JWKSURL                string
	Algorithm              string
	JWKSCacheTTL           time.Duration
	JWKSTimeout            time.Duration
	JWKSMinRefreshInterval time.Duration
	ClockSkew              time.Duration
}

// RateLimitConfig holds per-client request limits. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or text
}

var supportedAlgorithms = map[string]bool{
	"RS256": true,
	"RS384": true,
	"RS512": true,
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:              getEnv("SERVER_HOST", "0.0.0.0"),
			Port:              getPort(),
			ReadTimeout:       getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout:   getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			TrustProxyHeaders: getEnvAsBool("TRUST_PROXY_HEADERS", false),
			TLS: struct {
				Enabled  bool
				CertFile string
				KeyFile  string
			}{
				Enabled:  getEnvAsBool("TLS_ENABLED", false),
				CertFile: getEnv("TLS_CERT_FILE", "certs/cert.pem"),
				KeyFile:  getEnv("TLS_KEY_FILE", "certs/key.pem"),
			},
		},
		Database: loadDatabaseConfig(),
		Auth0:    loadAuth0Config(),
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 120),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	// Database validation (DATABASE_URL or DB_* vars)
	if c.Database.ConnectionString == "" && c.Database.Host == "" {
		return fmt.Errorf("database configuration required: set DATABASE_URL or DB_HOST")
	}
	if c.Database.ConnectionString == "" {
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	// Auth0 validation (required in production)
	if c.IsProduction() {
		if c.Auth0.Domain == "" {
			return fmt.Errorf("auth0 domain is required in production")
		}
		if c.Auth0.Audience == "" {
			return fmt.Errorf("auth0 API audience is required in production")
		}
	}
	if !supportedAlgorithms[c.Auth0.Algorithm] {
		return fmt.Errorf("unsupported auth0 algorithm %q: use RS256, RS384 or RS512", c.Auth0.Algorithm)
	}
	if c.Auth0.JWKSCacheTTL <= 0 {
		return fmt.Errorf("auth0 JWKS cache TTL must be positive")
	}
	if c.Auth0.JWKSTimeout <= 0 {
		return fmt.Errorf("auth0 JWKS timeout must be positive")
	}
	if c.Auth0.JWKSMinRefreshInterval <= 0 {
		return fmt.Errorf("auth0 JWKS minimum refresh interval must be positive")
	}
	if c.Auth0.ClockSkew < 0 {
		return fmt.Errorf("auth0 clock skew must not be negative")
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}

	// Observability validation
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Enabled reports whether enough is configured to verify tokens
func (c *Auth0Config) Enabled() bool {
	return c.Issuer != "" && c.Audience != "" && c.JWKSURL != ""
}

// DSN returns the PostgreSQL connection string.
// Uses ConnectionString (from DATABASE_URL) when set; otherwise builds from individual fields.
func (c *DatabaseConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// LogString returns a safe string for logging (no password). Parses ConnectionString when set.
func (c *DatabaseConfig) LogString() string {
	if c.ConnectionString != "" {
		u, err := url.Parse(c.ConnectionString)
		if err == nil {
			host := u.Hostname()
			port := u.Port()
			if port == "" {
				port = "5432"
			}
			db := strings.TrimPrefix(u.Path, "/")
			return fmt.Sprintf("host=%s port=%s database=%s", host, port, db)
		}
		return "host=<from DATABASE_URL>"
	}
	return fmt.Sprintf("host=%s port=%d database=%s", c.Host, c.Port, c.Database)
}

// loadDatabaseConfig loads database config from DATABASE_URL or DB_* env vars
func loadDatabaseConfig() DatabaseConfig {
	cfg := DatabaseConfig{
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		ResetOnStart:    getEnvAsBool("DB_RESET_ON_START", false),
	}

	if dbURL := getEnv("DATABASE_URL", ""); dbURL != "" {
		cfg.ConnectionString = dbURL
		return cfg
	}

	cfg.Host = getEnv("DB_HOST", "localhost")
	cfg.Port = getEnvAsInt("DB_PORT", 5432)
	cfg.User = getEnv("DB_USER", "postgres")
	cfg.Password = getEnv("DB_PASSWORD", "")
	cfg.Database = getEnv("DB_NAME", "casting_agency")
	cfg.SSLMode = getEnv("DB_SSLMODE", "disable")
	return cfg
}

// loadAuth0Config derives issuer and JWKS URL from AUTH0_DOMAIN unless set explicitly
func loadAuth0Config() Auth0Config {
	domain := strings.TrimSuffix(strings.TrimPrefix(getEnv("AUTH0_DOMAIN", ""), "https://"), "/")

	var issuer, jwksURL string
	if domain != "" {
		issuer = "https://" + domain + "/"
		jwksURL = "https://" + domain + "/.well-known/jwks.json"
	}

	return Auth0Config{
		Domain:                 domain,
		Audience:               getEnv("AUTH0_API_AUDIENCE", ""),
		Issuer:                 getEnv("AUTH0_ISSUER", issuer),
		JWKSURL:                getEnv("AUTH0_JWKS_URL", jwksURL),
		Algorithm:              getEnv("AUTH0_ALGORITHM", "RS256"),
		JWKSCacheTTL:           getEnvAsDuration("AUTH0_JWKS_CACHE_TTL", time.Hour),
		JWKSTimeout:            getEnvAsDuration("AUTH0_JWKS_TIMEOUT", 5*time.Second),
		JWKSMinRefreshInterval: getEnvAsDuration("AUTH0_JWKS_MIN_REFRESH_INTERVAL", 30*time.Second),
		ClockSkew:              getEnvAsDuration("AUTH0_CLOCK_SKEW", 0),
	}
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8080)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8080
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated value, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
