package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	// Common
	Env             string        `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	// API
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
	// Rate sources, tried in this order.
	RateSources         []string      `yaml:"rate_sources" env:"RATE_SOURCES" env-separator:"," env-default:"exchangerate-api,open-er-api,exchangeratesapi"`
	SourceTimeout       time.Duration `yaml:"source_timeout" env:"SOURCE_TIMEOUT" env-default:"5s"`
	SourceRateLimit     float64       `yaml:"source_rate_limit" env:"SOURCE_RATE_LIMIT" env-default:"5"`
	ExchangeRateAPIBase string        `yaml:"exchangerate_api_base" env:"EXCHANGERATE_API_BASE" env-default:"https://api.exchangerate-api.com"`
	OpenERAPIBase       string        `yaml:"open_er_api_base" env:"OPEN_ER_API_BASE" env-default:"https://open.er-api.com"`
	ExchangeAPIBase     string        `yaml:"exchange_api_base" env:"EXCHANGE_API_BASE" env-default:"https://api.exchangeratesapi.io"`
	ExchangeAPIKey      string        `yaml:"exchange_api_key" env:"EXCHANGE_API_KEY" env-default:"your_api_key_here"`
	StaticRate          float64       `yaml:"static_rate" env:"STATIC_RATE" env-default:"1.0"`
	// Rate cache
	RateCache     string        `yaml:"rate_cache" env:"RATE_CACHE" env-default:"none"`
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	RateCacheTTL  time.Duration `yaml:"rate_cache_ttl" env:"RATE_CACHE_TTL" env-default:"60s"`
	// Fallback table storage
	Storage     string `yaml:"storage" env:"STORAGE" env-default:"memory"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	// Probe worker
	ProbeEnabled  bool     `yaml:"probe_enabled" env:"PROBE_ENABLED" env-default:"false"`
	ProbeSchedule string   `yaml:"probe_schedule" env:"PROBE_SCHEDULE" env-default:"*/5 * * * *"`
	ProbePairs    []string `yaml:"probe_pairs" env:"PROBE_PAIRS" env-separator:"," env-default:"USD-INR,EUR-INR,GBP-INR"`
	// Kafka (probe results)
	KafkaBrokers    []string `yaml:"kafka_brokers" env:"KAFKA_BROKERS" env-separator:","`
	KafkaProbeTopic string   `yaml:"kafka_probe_topic" env:"KAFKA_PROBE_TOPIC" env-default:"rate-probes"`
}

// Load reads the optional YAML file named by CONFIG_PATH, then environment
// variables, and applies defaults.
func Load() (Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

