// internal/config/config.go
//
// Server configuration.
//
// Precedence (lowest to highest):
//   1. Built-in defaults (Defaults).
//   2. Optional YAML file named by CONFIG_FILE.
//   3. Environment variables (a .env file is loaded by main via godotenv).
//
// Invalid numeric or duration values in the environment are logged and
// ignored, keeping the lower-precedence value. The final struct is checked
// with validator tags; Load fails if it does not pass.

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port      string `yaml:"port" validate:"required,numeric"`
	LogLevel  string `yaml:"log_level" validate:"oneof=trace debug info warn error disabled"`
	LogFormat string `yaml:"log_format" validate:"oneof=json console"`

	DictionaryFile string `yaml:"dictionary_file"`
	BoardWidth     int    `yaml:"board_width" validate:"min=1,max=32"`
	BoardRows      int    `yaml:"board_rows" validate:"min=1,max=64"`

	DBPath string `yaml:"db_path" validate:"required"`

	JWTSecret       string `yaml:"jwt_secret" validate:"required,min=8"`
	JWTExpiresHours int    `yaml:"jwt_expires_hours" validate:"min=1"`

	AdminUser         string `yaml:"admin_user" validate:"required"`
	AdminPasswordHash string `yaml:"admin_password_hash"`

	ClientOrigin       string        `yaml:"client_origin" validate:"required"`
	SecureCookies      bool          `yaml:"secure_cookies"`
	RateLimitRPS       float64       `yaml:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst     int           `yaml:"rate_limit_burst" validate:"min=1"`
	SessionIdleTimeout time.Duration `yaml:"session_idle_timeout" validate:"gt=0"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:               "5175",
		LogLevel:           "info",
		LogFormat:          "json",
		BoardWidth:         5,
		BoardRows:          6,
		DBPath:             "./data/solver.db",
		JWTSecret:          "dev_secret_change_me",
		JWTExpiresHours:    24,
		AdminUser:          "admin",
		ClientOrigin:       "http://localhost:5173",
		RateLimitRPS:       5,
		RateLimitBurst:     10,
		SessionIdleTimeout: 2 * time.Hour,
	}
}

// Load builds the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom builds the configuration using getenv for lookups.
func LoadFrom(getenv func(string) string) (Config, error) {
	cfg := Defaults()

	if path := getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	e := env{getenv}
	e.str("PORT", &cfg.Port)
	e.str("LOG_LEVEL", &cfg.LogLevel)
	e.str("LOG_FORMAT", &cfg.LogFormat)
	e.str("WORDS_DICTIONARY_FILE", &cfg.DictionaryFile)
	e.integer("BOARD_WIDTH", &cfg.BoardWidth)
	e.integer("BOARD_ROWS", &cfg.BoardRows)
	e.str("DB_PATH", &cfg.DBPath)
	e.str("JWT_SECRET", &cfg.JWTSecret)
	e.integer("JWT_EXPIRES_HOURS", &cfg.JWTExpiresHours)
	e.str("ADMIN_USER", &cfg.AdminUser)
	e.str("ADMIN_PASSWORD_HASH", &cfg.AdminPasswordHash)
	e.str("CLIENT_ORIGIN", &cfg.ClientOrigin)
	if getenv("NODE_ENV") == "production" {
		cfg.SecureCookies = true
	}
	e.boolean("SECURE_COOKIES", &cfg.SecureCookies)
	e.number("RATE_LIMIT_RPS", &cfg.RateLimitRPS)
	e.integer("RATE_LIMIT_BURST", &cfg.RateLimitBurst)
	e.duration("SESSION_IDLE_TIMEOUT", &cfg.SessionIdleTimeout)

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// JWTExpiry is the lifetime of session tokens.
func (c Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiresHours) * time.Hour
}

// env applies environment overrides onto config fields.
type env struct{ getenv func(string) string }

func (e env) str(key string, dst *string) {
	if v := e.getenv(key); v != "" {
		*dst = v
	}
}

func (e env) integer(key string, dst *int) {
	v := e.getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Int("default", *dst).Msg("invalid int, using default")
		return
	}
	*dst = n
}

func (e env) boolean(key string, dst *bool) {
	v := e.getenv(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Bool("default", *dst).Msg("invalid bool, using default")
		return
	}
	*dst = b
}

func (e env) number(key string, dst *float64) {
	v := e.getenv(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Float64("default", *dst).Msg("invalid number, using default")
		return
	}
	*dst = f
}

func (e env) duration(key string, dst *time.Duration) {
	v := e.getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Dur("default", *dst).Msg("invalid duration, using default")
		return
	}
	*dst = d
}
