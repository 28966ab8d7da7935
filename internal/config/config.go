package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Simulation holds all configuration for the simulation server.
type Simulation struct {
	LogLevel string `yaml:"log_level"`

	// Tick loop
	TickInterval time.Duration `yaml:"tick_interval"`

	// Navigation
	Navigation Navigation `yaml:"navigation"`

	// Elements treated as anti-null by the rate composer.
	AntiNullElements []int32 `yaml:"anti_null_elements"`

	// Data files
	Data DataPaths `yaml:"data"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Persistence
	AutosaveInterval time.Duration `yaml:"autosave_interval"` // 0 disables autosave
}

// Navigation tunes the grid navigator.
type Navigation struct {
	SearchLimit   int     `yaml:"search_limit"`
	DiagonalRatio float64 `yaml:"diagonal_ratio"`
	// AggroRange is the distance at which autonomous battlers notice enemies.
	AggroRange int `yaml:"aggro_range"`
}

// DataPaths lists the data files loaded at startup.
type DataPaths struct {
	Actions  string `yaml:"actions"`
	Battlers string `yaml:"battlers"`
	Scenario string `yaml:"scenario"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
// An empty Host disables persistence.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	// MaxConns caps the pool; 0 keeps the pgx default.
	MaxConns int32 `yaml:"max_conns"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:     "info",
		TickInterval: 50 * time.Millisecond, // 20 ticks per second
		Navigation: Navigation{
			SearchLimit:   12,
			DiagonalRatio: 2.0,
			AggroRange:    8,
		},
		Data: DataPaths{
			Actions:  "data/actions.yaml",
			Battlers: "data/battlers.yaml",
			Scenario: "data/scenario.yaml",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "skirmish",
			Password: "skirmish",
			DBName:   "skirmish",
			SSLMode:  "disable",
			MaxConns: 4,
		},
		AutosaveInterval: 30 * time.Second,
	}
}

// Validate checks values the simulation cannot run with.
func (s Simulation) Validate() error {
	if s.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", s.TickInterval)
	}
	if s.Navigation.SearchLimit <= 0 {
		return fmt.Errorf("navigation.search_limit must be positive, got %d", s.Navigation.SearchLimit)
	}
	if s.AutosaveInterval < 0 {
		return fmt.Errorf("autosave_interval must not be negative, got %s", s.AutosaveInterval)
	}
	return nil
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
