// Package config loads the tracker configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amirR01/google-calendar-tracker/internal/category"
)

type Config struct {
	CalendarID  string `yaml:"calendar_id"`
	AccessToken string `yaml:"access_token"`

	CachePath   string `yaml:"cache_path"`
	CacheMaxAge string `yaml:"cache_max_age"`

	TrendWeeks int `yaml:"trend_weeks"`

	// Optional tag->category override of the built-in table. Colors maps
	// category names to hex colors for charts.
	Categories map[string]string `yaml:"categories"`
	Colors     map[string]string `yaml:"colors"`
	TagOrder   []string          `yaml:"tag_order"`
}

// Load reads config.yaml (or $CONFIG_PATH), applies .env and environment
// overrides, fills defaults, and validates. A missing config file is fine;
// everything can come from the environment.
func Load() (Config, error) {
	var cfg Config

	// .env values become process env without clobbering existing vars.
	_ = godotenv.Load()

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	envOverride(&cfg.CalendarID, "CALENDAR_ID")
	envOverride(&cfg.AccessToken, "CALENDAR_ACCESS_TOKEN")
	envOverride(&cfg.CachePath, "CACHE_PATH")
	envOverride(&cfg.CacheMaxAge, "CACHE_MAX_AGE")
	if err := envOverrideInt(&cfg.TrendWeeks, "TREND_WEEKS"); err != nil {
		return Config{}, err
	}

	if cfg.CalendarID == "" {
		cfg.CalendarID = "primary"
	}
	if cfg.CacheMaxAge == "" {
		cfg.CacheMaxAge = "15m"
	}
	if cfg.TrendWeeks == 0 {
		cfg.TrendWeeks = 4
	}

	if _, err := time.ParseDuration(cfg.CacheMaxAge); err != nil {
		return Config{}, fmt.Errorf("invalid cache_max_age %q: %w", cfg.CacheMaxAge, err)
	}
	if cfg.TrendWeeks < 2 || cfg.TrendWeeks > 12 {
		return Config{}, fmt.Errorf("invalid trend_weeks %d: must be between 2 and 12", cfg.TrendWeeks)
	}
	if len(cfg.Categories) > 0 && len(cfg.TagOrder) != len(cfg.Categories) {
		return Config{}, fmt.Errorf("tag_order must list every tag in categories (%d tags, %d ordered)",
			len(cfg.Categories), len(cfg.TagOrder))
	}

	return cfg, nil
}

// MaxAge returns the parsed cache TTL. Load has already validated it.
func (c Config) MaxAge() time.Duration {
	d, _ := time.ParseDuration(c.CacheMaxAge)
	return d
}

// Mapping builds the classification mapping: the YAML override when
// provided, otherwise the built-in table.
func (c Config) Mapping() category.Mapping {
	if len(c.Categories) == 0 {
		return category.Default()
	}
	return category.New(c.Categories, c.Colors, c.TagOrder)
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}
