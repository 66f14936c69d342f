package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Reset ResetConfig
	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET, required"`
	JWTTTL     time.Duration `env:"JWT_TTL,    default=720h"`
	JWTIssuer  string        `env:"JWT_ISSUER, default=cms-backend"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	// ExtraAdminRoles are token role values that are also admitted to the
	// SuperAdmin-only routes. They are never assigned to accounts.
	ExtraAdminRoles []string `env:"AUTH_EXTRA_ADMIN_ROLES"`
}

// ResetConfig tunes the forgot-password flow. ResponseFloor must cover the
// slowest delivery, so it may not be shorter than SMTP_TIMEOUT.
type ResetConfig struct {
	BaseURL        string        `env:"BASE_URL,              default=http://localhost:3000"`
	ThrottleWindow time.Duration `env:"RESET_THROTTLE_WINDOW, default=1m"`
	ResponseFloor  time.Duration `env:"RESET_RESPONSE_FLOOR,  default=3s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cms"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig holds the outbound mail relay. Timeout bounds a whole delivery,
// dial included.
type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT,    default=587"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	From     string        `env:"SMTP_FROM,    default=noreply@localhost"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT, default=3s"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be blank"))
	}
	if c.Auth.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if u, err := url.Parse(c.Reset.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, errors.New("BASE_URL must be an absolute http(s) URL"))
	}
	if c.Reset.ResponseFloor < 0 {
		errs = append(errs, errors.New("RESET_RESPONSE_FLOOR must not be negative"))
	}
	if c.SMTP.Timeout <= 0 {
		errs = append(errs, errors.New("SMTP_TIMEOUT must be positive"))
	} else if c.Reset.ResponseFloor < c.SMTP.Timeout {
		errs = append(errs, errors.New("RESET_RESPONSE_FLOOR must be at least SMTP_TIMEOUT"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
