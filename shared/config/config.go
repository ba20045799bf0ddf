package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	EnvProduction = "production"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Env        string        `yaml:"env"`
	HTTP       HTTP          `yaml:"http"`
	JwtTTL     time.Duration `yaml:"jwt_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
	Blogs      Blogs         `yaml:"blogs"`
	Log        Log           `yaml:"log"`
	Cors       Cors          `yaml:"cors"`
	Storage    Storage       `yaml:"storage"`
}

type HTTP struct {
	Port int `yaml:"port"`
}

type Blogs struct {
	// restrict listing and fetching to the requesting owner
	OwnerScopedReads bool `yaml:"owner_scoped_reads"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Storage struct {
	Driver string `yaml:"driver"`
}

type Private struct {
	JwtKey      string `yaml:"jwt_key"`
	DatabaseURL string `yaml:"database_url"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func (c *Config) DatabaseURL() string {
	return c.Private.DatabaseURL
}

func (c *Config) IsProduction() bool {
	return c.Public.Env == EnvProduction
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Public.HTTP.Port)
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Public: Public{
			Env:        "development",
			HTTP:       HTTP{Port: 3000},
			JwtTTL:     2 * time.Hour,
			BcryptCost: 10,
			Log:        Log{Level: "info"},
			Cors:       Cors{AllowedOrigins: []string{"*"}},
			Storage:    Storage{Driver: DriverPostgres},
		},
	}
}

// loadPath fills output from a yaml file. Missing files are skipped so that
// secrets can come from the environment alone.
func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml and private.yaml from configFolder, applies
// environment overrides and validates the result.
func Load(configFolder string) (*Config, error) {
	cfg := Default()
	if err := loadPath(path.Join(configFolder, "public.yaml"), &cfg.Public); err != nil {
		return nil, err
	}
	if err := loadPath(path.Join(configFolder, "private.yaml"), &cfg.Private); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Public.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Public.HTTP.Port = port
	}
	if v := os.Getenv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_TTL %q: %w", v, err)
		}
		cfg.Public.JwtTTL = ttl
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Public.Log.Level = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Public.Storage.Driver = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Private.JwtKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Private.DatabaseURL = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Private.JwtKey == "" {
		return errors.New("jwt signing secret is required (private.yaml jwt_key or JWT_SECRET)")
	}
	if c.Public.JwtTTL <= 0 {
		return fmt.Errorf("jwt_ttl must be positive, got %s", c.Public.JwtTTL)
	}
	if c.Public.BcryptCost < 4 || c.Public.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 31, got %d", c.Public.BcryptCost)
	}
	if c.Public.HTTP.Port <= 0 || c.Public.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.Public.HTTP.Port)
	}
	switch c.Public.Storage.Driver {
	case DriverPostgres:
		if c.Private.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres storage driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Public.Storage.Driver)
	}
	return nil
}
