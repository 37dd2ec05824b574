package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// credentialPlaceholder is what deployments put in place of a real Roblox credential.
const credentialPlaceholder = "not_set"

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Roblox        RobloxConfig        `yaml:"roblox"`
	Leaderboard   LeaderboardConfig   `yaml:"leaderboard"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Redis         RedisConfig         `yaml:"redis"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	RateLimit      float64       `yaml:"rate_limit"`
	RateBurst      int           `yaml:"rate_burst"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// RobloxConfig holds the Open Cloud credentials and client tuning.
type RobloxConfig struct {
	APIKey            string        `yaml:"api_key"`
	UniverseID        string        `yaml:"universe_id"`
	BaseURL           string        `yaml:"base_url"`
	UsersBaseURL      string        `yaml:"users_base_url"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	PageSize          int           `yaml:"page_size"`
	LookupConcurrency int           `yaml:"lookup_concurrency"`
	LookupRPS         float64       `yaml:"lookup_rps"`
	ProbeDelay        time.Duration `yaml:"probe_delay"`
}

// HasCredentials reports whether both the API key and the universe id are usable.
func (r RobloxConfig) HasCredentials() bool {
	return credentialSet(r.APIKey) && credentialSet(r.UniverseID)
}

func credentialSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != credentialPlaceholder
}

// LeaderboardConfig holds server side caching settings.
type LeaderboardConfig struct {
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	WarmInterval   time.Duration `yaml:"warm_interval"`
	RefreshTimeout time.Duration `yaml:"refresh_timeout"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds Redis configuration. An empty address selects the in-memory cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`
}

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:           ":3001",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
			RateLimit:      20,
			RateBurst:      40,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
		},
		Roblox: RobloxConfig{
			APIKey:            credentialPlaceholder,
			UniverseID:        credentialPlaceholder,
			BaseURL:           "https://apis.roblox.com",
			UsersBaseURL:      "https://users.roblox.com",
			RequestTimeout:    10 * time.Second,
			PageSize:          100,
			LookupConcurrency: 10,
			LookupRPS:         20,
			ProbeDelay:        100 * time.Millisecond,
		},
		Leaderboard: LeaderboardConfig{
			CacheTTL:       60 * time.Second,
			RefreshTimeout: 30 * time.Second,
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			Environment: "development",
		},
	}
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	cfg := Default()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides cfg with any environment variables that are present.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("ROBLOX_API_KEY"); v != "" {
		cfg.Roblox.APIKey = v
	}
	if v := os.Getenv("ROBLOX_UNIVERSE_ID"); v != "" {
		cfg.Roblox.UniverseID = v
	}
	if v := os.Getenv("ROBLOX_BASE_URL"); v != "" {
		cfg.Roblox.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("ROBLOX_USERS_BASE_URL"); v != "" {
		cfg.Roblox.UsersBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("ROBLOX_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ROBLOX_REQUEST_TIMEOUT value: %w", err)
		}
		cfg.Roblox.RequestTimeout = d
	}
	if v := os.Getenv("LEADERBOARD_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LEADERBOARD_CACHE_TTL value: %w", err)
		}
		cfg.Leaderboard.CacheTTL = d
	}
	if v := os.Getenv("LEADERBOARD_WARM_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LEADERBOARD_WARM_INTERVAL value: %w", err)
		}
		cfg.Leaderboard.WarmInterval = d
	}
	if v := os.Getenv("LEADERBOARD_REFRESH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LEADERBOARD_REFRESH_TIMEOUT value: %w", err)
		}
		cfg.Leaderboard.RefreshTimeout = d
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %w", err)
		}
		cfg.Redis.DB = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
