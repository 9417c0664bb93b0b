package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"puresearch/bfhl-api/common/models"
)

// Config holds the settings of the BFHL service. None of them influence
// classification.
type Config struct {
	// Identity echoed in every /bfhl response
	FullName   string `env:"FULL_NAME"`
	DOB        string `env:"DOB_DDMMYYYY"`
	Email      string `env:"EMAIL"`
	RollNumber string `env:"ROLL_NUMBER"`

	// Server settings
	Port            int           `env:"PORT"`
	GinMode         string        `env:"GIN_MODE"`
	PublicBaseURL   string        `env:"PUBLIC_BASE_URL"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// Logging settings
	LogLevel string `env:"LOG_LEVEL"`
	LogFile  string `env:"LOG_FILE"`
}

// DefaultConfig returns the fallback values used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		FullName:        "john doe",
		DOB:             "17091999",
		Email:           "john@xyz.com",
		RollNumber:      "ABCD123",
		Port:            3000,
		GinMode:         "debug",
		PublicBaseURL:   "http://localhost:3000",
		MaxBodyBytes:    1 << 20,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "info",
	}
}

// Load builds a Config from defaults, an optional dotenv file and the process
// environment, in increasing order of precedence
func Load(envFile string) (*Config, error) {
	cfg := DefaultConfig()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("FULL_NAME"); v != "" {
		cfg.FullName = v
	}
	if v := os.Getenv("DOB_DDMMYYYY"); v != "" {
		cfg.DOB = v
	}
	if v := os.Getenv("EMAIL"); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv("ROLL_NUMBER"); v != "" {
		cfg.RollNumber = v
	}
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Port = n
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		cfg.PublicBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_BODY_BYTES: %w", err)
		}
		cfg.MaxBodyBytes = n
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return nil
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("gin_mode must be one of: debug, release, test")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
	return nil
}

// Addr returns the listen address for the configured port
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// UserID returns the display identifier derived from name and date of birth
func (c *Config) UserID() string {
	return DisplayID(c.FullName, c.DOB)
}

// Identity returns the identity fields of a response envelope
func (c *Config) Identity() models.Identity {
	return models.Identity{
		UserID:     c.UserID(),
		Email:      c.Email,
		RollNumber: c.RollNumber,
	}
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonDigit      = regexp.MustCompile(`[^0-9]`)
)

// DisplayID lower-cases the name, joins its words with underscores and
// appends the digits of the date, e.g. "John Doe", "17-09-1999" gives
// "john_doe_17091999".
func DisplayID(fullName, dob string) string {
	name := whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(fullName)), "_")
	date := nonDigit.ReplaceAllString(strings.TrimSpace(dob), "")
	return name + "_" + date
}
