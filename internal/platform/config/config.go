package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "500ms"
// or "1h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds service configuration loaded from an optional YAML file with
// environment-variable overrides. Environment wins so deployments can tweak
// a single value without editing the file.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		// SQLitePath locates the hotspot store.
		SQLitePath string `yaml:"sqlite_path"`
		// PostgresURL enables the SQL address cache when set.
		PostgresURL string `yaml:"postgres_url"`
	} `yaml:"database"`
	Redis struct {
		// Addr enables the Redis address cache when set.
		Addr string `yaml:"addr"`
		// AddressTTL bounds how long cached addresses stay live.
		AddressTTL Duration `yaml:"address_ttl"`
	} `yaml:"redis"`
	ORS struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
		Profile string `yaml:"profile"`
	} `yaml:"ors"`
	Enrich struct {
		MaxConcurrent int      `yaml:"max_concurrent"`
		MinInterval   Duration `yaml:"min_interval"`
	} `yaml:"enrich"`
	Plan struct {
		DefaultMaxStops int `yaml:"default_max_stops"`
	} `yaml:"plan"`
}

// Load reads the YAML file at path (missing file is not an error) and applies
// environment overrides.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("load config: read %q: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Database.SQLitePath, "DB_PATH")
	setString(&c.Database.PostgresURL, "DATABASE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.ORS.APIKey, "ORS_API_KEY")
	setString(&c.ORS.BaseURL, "ORS_BASE_URL")
	setString(&c.ORS.Profile, "ORS_PROFILE")
	setInt(&c.Enrich.MaxConcurrent, "ENRICH_MAX_CONCURRENT")
	setDuration(&c.Enrich.MinInterval, "ENRICH_MIN_INTERVAL")
	setDuration(&c.Redis.AddressTTL, "REDIS_ADDRESS_TTL")
	setInt(&c.Plan.DefaultMaxStops, "PLAN_DEFAULT_MAX_STOPS")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/app.db"
	}
	if c.ORS.BaseURL == "" {
		c.ORS.BaseURL = "https://api.openrouteservice.org"
	}
	if c.ORS.Profile == "" {
		c.ORS.Profile = "driving-car"
	}
	if c.Redis.AddressTTL == 0 {
		c.Redis.AddressTTL = Duration(24 * time.Hour)
	}
	if c.Plan.DefaultMaxStops == 0 {
		c.Plan.DefaultMaxStops = 8
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = Duration(d)
		}
	}
}
