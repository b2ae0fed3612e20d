package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	MongoDB   MongoDBConfig   `koanf:"mongodb"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	Cookie    CookieConfig    `koanf:"cookie"`
	Email     EmailConfig     `koanf:"email"`
	Auth      AuthConfig      `koanf:"auth"`
	Booking   BookingConfig   `koanf:"booking"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Admin     AdminConfig     `koanf:"admin"`
	OAuth     OAuthConfig     `koanf:"oauth"`
	Log       LogConfig       `koanf:"log"`
}

type AppConfig struct {
	Environment string `koanf:"environment"`
	BaseURL     string `koanf:"base_url"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type MongoDBConfig struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

// RedisConfig is optional; an empty URL disables the catalog cache.
type RedisConfig struct {
	URL        string        `koanf:"url"`
	CatalogTTL time.Duration `koanf:"catalog_ttl"`
}

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	Expiry time.Duration `koanf:"expiry"`
}

type CookieConfig struct {
	Secure bool   `koanf:"secure"`
	Domain string `koanf:"domain"`
}

type EmailConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
}

type AuthConfig struct {
	SendActivationEmail     bool          `koanf:"send_activation_email"`
	PasswordResetExpiry     time.Duration `koanf:"password_reset_expiry"`
	EmailVerificationExpiry time.Duration `koanf:"email_verification_expiry"`
}

type BookingConfig struct {
	ReconcileInterval time.Duration `koanf:"reconcile_interval"`
}

type RateLimitConfig struct {
	RequestsPerSecond     float64 `koanf:"requests_per_second"`
	AuthRequestsPerSecond float64 `koanf:"auth_requests_per_second"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// AdminConfig seeds the first superadmin when all fields are set.
type AdminConfig struct {
	Name     string `koanf:"name"`
	Email    string `koanf:"email"`
	Password string `koanf:"password"`
}

type OAuthConfig struct {
	GoogleClientID     string `koanf:"google_client_id"`
	GoogleClientSecret string `koanf:"google_client_secret"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// Load reads .env, defaults, the optional YAML file at configPath and the
// environment, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	// a missing .env is fine outside local development
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config file: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.environment": "development",
		"app.base_url":    "http://localhost:8080",

		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.shutdown_timeout": "15s",

		"mongodb.database": "taketravel",

		"redis.catalog_ttl": "5m",

		"jwt.expiry": "2400h",

		"cookie.secure": false,

		"email.port": "587",

		"auth.send_activation_email":     false,
		"auth.password_reset_expiry":     "10m",
		"auth.email_verification_expiry": "24h",

		"booking.reconcile_interval": "1h",

		"rate_limit.requests_per_second":      20.0,
		"rate_limit.auth_requests_per_second": 1.0,

		"cors.allowed_origins": []string{"http://localhost:3000"},

		"log.level":  "info",
		"log.format": "json",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}
	return nil
}

var envKeyMap = map[string]string{
	"NODE_ENV":                       "app.environment",
	"APP_ENV":                        "app.environment",
	"APP_BASE_URL":                   "app.base_url",
	"PORT":                           "server.port",
	"MONGODB_URI":                    "mongodb.uri",
	"DATABASE":                       "mongodb.uri",
	"MONGODB_DATABASE":               "mongodb.database",
	"REDIS_URL":                      "redis.url",
	"REDIS_CATALOG_TTL":              "redis.catalog_ttl",
	"JWT_SECRET":                     "jwt.secret",
	"JWT_EXPIRES_IN":                 "jwt.expiry",
	"COOKIE_SECURE":                  "cookie.secure",
	"COOKIE_DOMAIN":                  "cookie.domain",
	"EMAIL_HOST":                     "email.host",
	"EMAIL_PORT":                     "email.port",
	"EMAIL_USERNAME":                 "email.username",
	"EMAIL_PASSWORD":                 "email.password",
	"EMAIL_FROM":                     "email.from",
	"SEND_ACTIVATION_EMAIL":          "auth.send_activation_email",
	"PASSWORD_RESET_EXPIRY":          "auth.password_reset_expiry",
	"EMAIL_VERIFICATION_EXPIRY":      "auth.email_verification_expiry",
	"BOOKING_RECONCILE_INTERVAL":     "booking.reconcile_interval",
	"RATE_LIMIT_REQUESTS_PER_SECOND": "rate_limit.requests_per_second",
	"RATE_LIMIT_AUTH_PER_SECOND":     "rate_limit.auth_requests_per_second",
	"CORS_ALLOWED_ORIGINS":           "cors.allowed_origins",
	"ADMIN_NAME":                     "admin.name",
	"ADMIN_EMAIL":                    "admin.email",
	"ADMIN_PASSWORD":                 "admin.password",
	"GOOGLE_CLIENT_ID":               "oauth.google_client_id",
	"GOOGLE_CLIENT_SECRET":           "oauth.google_client_secret",
	"LOG_LEVEL":                      "log.level",
	"LOG_FORMAT":                     "log.format",
}

// listKeys are read from the environment as comma separated lists.
var listKeys = map[string]bool{
	"cors.allowed_origins": true,
}

func envValue(name, value string) (string, interface{}) {
	key, ok := envKeyMap[name]
	if !ok {
		return "", nil
	}
	if listKeys[key] {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return key, items
	}
	return key, value
}

func validate(c *Config) error {
	if c.MongoDB.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.MongoDB.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("jwt.expiry must be positive")
	}
	if c.Booking.ReconcileInterval <= 0 {
		return fmt.Errorf("booking.reconcile_interval must be positive")
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS wildcard '*' cannot be used with credentialed requests")
		}
	}
	switch c.App.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("unknown environment %q", c.App.Environment)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HasAdminSeed reports whether a bootstrap superadmin is configured.
func (c *Config) HasAdminSeed() bool {
	return c.Admin.Email != "" && c.Admin.Password != ""
}

// Address returns the listen address of the HTTP server.
func (s ServerConfig) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

// GetSendActivationEmail returns whether to send an activation email.
func (c *Config) GetSendActivationEmail() bool {
	return c.Auth.SendActivationEmail
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.App.BaseURL
}

// GetTokenExpiry returns the lifetime of session tokens.
func (c *Config) GetTokenExpiry() time.Duration {
	return c.JWT.Expiry
}

// GetPasswordResetTokenExpiry returns the expiry duration for password reset tokens.
func (c *Config) GetPasswordResetTokenExpiry() time.Duration {
	return c.Auth.PasswordResetExpiry
}

// GetEmailVerificationTokenExpiry returns the expiry duration for email verification tokens.
func (c *Config) GetEmailVerificationTokenExpiry() time.Duration {
	return c.Auth.EmailVerificationExpiry
}
