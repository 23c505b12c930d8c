package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"transport-catalogue-service/internal/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yml"

type Config struct {
	Server  ServerConfig           `yaml:"server"`
	Storage StorageConfig          `yaml:"storage"`
	Routing domain.RoutingSettings `yaml:"routing"`
	Cache   CacheConfig            `yaml:"cache"`
	Seed    SeedConfig             `yaml:"seed"`
}

type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver" validate:"oneof=sqlite postgres"`
	SQLitePath  string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
	DatabaseURL string `yaml:"database_url" validate:"required_if=Driver postgres"`
}

type CacheConfig struct {
	StatsTTL       time.Duration `yaml:"stats_ttl" validate:"gte=0"`
	RouteCacheSize int           `yaml:"route_cache_size" validate:"gte=0"`
}

type SeedConfig struct {
	Path string `yaml:"path"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Storage: StorageConfig{
			Driver:     "sqlite",
			SQLitePath: "data/catalogue.db",
		},
		Routing: domain.RoutingSettings{BusWaitTime: 6, BusVelocity: 40},
		Cache: CacheConfig{
			StatsTTL:       10 * time.Minute,
			RouteCacheSize: 1024,
		},
		Seed: SeedConfig{Path: "data/seeds/base.json"},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// ValidateRouting checks routing settings coming from outside the config file.
func ValidateRouting(s domain.RoutingSettings) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validate routing settings: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env PORT=%q: %w", v, err)
		}
		cfg.Server.Port = port
	}

	cfg.Storage.Driver = Get("DB_DRIVER", cfg.Storage.Driver)
	cfg.Storage.SQLitePath = Get("DB_PATH", cfg.Storage.SQLitePath)
	cfg.Storage.DatabaseURL = Get("DATABASE_URL", cfg.Storage.DatabaseURL)
	cfg.Seed.Path = Get("SEED_PATH", cfg.Seed.Path)

	for key, dst := range map[string]*float64{
		"BUS_WAIT_TIME": &cfg.Routing.BusWaitTime,
		"BUS_VELOCITY":  &cfg.Routing.BusVelocity,
	} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("env %s=%q: %w", key, v, err)
		}
		*dst = f
	}

	return nil
}

// Get returns the environment value for key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
