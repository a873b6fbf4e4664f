package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreSheets   = "sheets"

	DefaultDSNEnv     = "ATTENDANCE_POSTGRES_DSN"
	DefaultServerAddr = ":8080"
)

// PostgresConfig configures the Postgres store. The DSN itself is read from
// the environment variable named by DSNEnv.
type PostgresConfig struct {
	DSNEnv         string `yaml:"dsnEnv"`
	MaxConns       int32  `yaml:"maxConns" validate:"omitempty,min=1,max=100"`
	MinConns       int32  `yaml:"minConns" validate:"omitempty,max=100"`
	ConnMaxIdleSec int    `yaml:"connMaxIdleSeconds" validate:"omitempty,min=1"`
	RunMigrations  bool   `yaml:"runMigrations"`

	DSN string `yaml:"-"`
}

// ConnMaxIdle returns the idle connection timeout, or zero for the pool default
func (p PostgresConfig) ConnMaxIdle() time.Duration {
	return time.Duration(p.ConnMaxIdleSec) * time.Second
}

// SheetsConfig configures the Google Sheets store
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID" validate:"required"`
	VolunteersTab string `yaml:"volunteersTab"`
	GameDatesTab  string `yaml:"gameDatesTab"`
	StatusTab     string `yaml:"statusTab"`
}

// ScheduleConfig describes the expected recurrence of game dates
type ScheduleConfig struct {
	RRule string `yaml:"rrule" validate:"required"`
}

// ServerConfig configures the JSON API
type ServerConfig struct {
	Addr                  string `yaml:"addr"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds" validate:"omitempty,min=1"`
}

// RequestTimeout returns the per-request timeout, or zero for none
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// Config represents the application configuration
type Config struct {
	Store    string          `yaml:"store" validate:"required,oneof=postgres sheets"`
	Postgres PostgresConfig  `yaml:"postgres" validate:"-"`
	Sheets   SheetsConfig    `yaml:"sheets" validate:"-"`
	Timezone string          `yaml:"timezone" validate:"omitempty,timezone"`
	Schedule *ScheduleConfig `yaml:"schedule,omitempty"`
	Server   ServerConfig    `yaml:"server"`
}

// Location returns the timezone used to decide what "today" is
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		// Validate has already rejected unknown zones
		return time.Local
	}
	return loc
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from attendance_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" looks for "attendance_config.test.yaml" and ".env.test".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	if err := loadDotEnv(env); err != nil {
		return nil, err
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path and
// resolves secrets from the environment
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	if err := resolveSecrets(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Postgres.DSNEnv == "" {
		cfg.Postgres.DSNEnv = DefaultDSNEnv
	}
	if cfg.Sheets.VolunteersTab == "" {
		cfg.Sheets.VolunteersTab = "volunteers"
	}
	if cfg.Sheets.GameDatesTab == "" {
		cfg.Sheets.GameDatesTab = "game_dates"
	}
	if cfg.Sheets.StatusTab == "" {
		cfg.Sheets.StatusTab = "volunteer_date_status"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
}

// Validate validates the configuration struct, the selected store's section and the rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch cfg.Store {
	case StorePostgres:
		if err := validate.Struct(cfg.Postgres); err != nil {
			return fmt.Errorf("postgres config validation failed: %w", err)
		}
	case StoreSheets:
		if err := validate.Struct(cfg.Sheets); err != nil {
			return fmt.Errorf("sheets config validation failed: %w", err)
		}
	}

	if cfg.Schedule != nil {
		if _, err := rrule.StrToRRule(cfg.Schedule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in schedule: %w", err)
		}
	}

	return nil
}

func resolveSecrets(cfg *Config) error {
	if cfg.Store != StorePostgres {
		return nil
	}
	cfg.Postgres.DSN = os.Getenv(cfg.Postgres.DSNEnv)
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("environment variable %s is not set", cfg.Postgres.DSNEnv)
	}
	return nil
}

// loadDotEnv loads .env (or .env.<env>) from the working directory if present.
// Variables already set in the environment win.
func loadDotEnv(env string) error {
	name := ".env"
	if env != "" {
		name = ".env." + env
	}
	if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}
	return nil
}

// findFile looks for name in the current directory, then the home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}

func findConfigFile(env string) (string, error) {
	name := "attendance_config.yaml"
	if env != "" {
		name = "attendance_config." + env + ".yaml"
	}
	return findFile(name)
}
