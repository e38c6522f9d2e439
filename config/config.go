package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Calendar CalendarConfig `yaml:"calendar"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port                 int     `yaml:"port"`
	RequestIPHeader      string  `yaml:"request_ip_header"`
	RateLimitPerSec      float64 `yaml:"rate_limit_per_sec"`
	RoomsCacheTTLSeconds int     `yaml:"rooms_cache_ttl_seconds"`
}

// CalendarConfig holds everything about the external calendar source and
// the operating booking window.
type CalendarConfig struct {
	BaseURL            string            `yaml:"base_url"`
	AuthToken          string            `yaml:"auth_token"`
	TimeoutSeconds     int               `yaml:"timeout_seconds"`
	Timezone           string            `yaml:"timezone"`
	OpenTime           string            `yaml:"open_time"`
	CloseTime          string            `yaml:"close_time"`
	SnapshotTTLSeconds int               `yaml:"snapshot_ttl_seconds"`
	Rooms              map[string]string `yaml:"rooms"` // room id -> external calendar id

	Timeout     time.Duration `yaml:"-"` // Ignored by YAML parser
	SnapshotTTL time.Duration `yaml:"-"`
}

// DatabaseConfig holds the journal database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" (default) or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RoomsCacheTTLSeconds <= 0 {
		cfg.Server.RoomsCacheTTLSeconds = 300
	}

	if cfg.Calendar.Timezone == "" {
		cfg.Calendar.Timezone = "UTC"
	}
	if cfg.Calendar.OpenTime == "" {
		cfg.Calendar.OpenTime = "09:00"
	}
	if cfg.Calendar.CloseTime == "" {
		cfg.Calendar.CloseTime = "18:00"
	}
	if cfg.Calendar.TimeoutSeconds <= 0 {
		cfg.Calendar.TimeoutSeconds = 10
	}
	if cfg.Calendar.SnapshotTTLSeconds <= 0 {
		cfg.Calendar.SnapshotTTLSeconds = 60
	}
	cfg.Calendar.Timeout = time.Duration(cfg.Calendar.TimeoutSeconds) * time.Second
	cfg.Calendar.SnapshotTTL = time.Duration(cfg.Calendar.SnapshotTTLSeconds) * time.Second

	if len(cfg.Calendar.Rooms) == 0 {
		return nil, fmt.Errorf("calendar.rooms must map at least one room to an external calendar")
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:journal.db"
	}

	return &cfg, nil
}
