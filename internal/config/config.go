package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "CATALOG_"
	configFileEnv = envPrefix + "CONFIG_FILE"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GinMode       string `koanf:"gin_mode" validate:"required,oneof=debug release test"`
	Addr          string `koanf:"addr" validate:"required"`
	TZ            string `koanf:"tz" validate:"required"`
	LogLevel      string `koanf:"log_level" validate:"required"`
	DBDriver      string `koanf:"db_driver" validate:"required,oneof=postgres sqlite"`
	DBHost        string `koanf:"db_host" validate:"required_if=DBDriver postgres"`
	DBPort        string `koanf:"db_port" validate:"required_if=DBDriver postgres"`
	DBUser        string `koanf:"db_user" validate:"required_if=DBDriver postgres"`
	DBPass        string `koanf:"db_pass"`
	DBName        string `koanf:"db_name" validate:"required_if=DBDriver postgres"`
	DBSSLMode     string `koanf:"db_sslmode"`
	DBMaxAttempts int    `koanf:"db_max_attempts" validate:"min=1"`
	SQLitePath    string `koanf:"sqlite_path" validate:"required_if=DBDriver sqlite"`
}

func defaults() Config {
	return Config{
		GinMode:       "debug",
		Addr:          ":8080",
		TZ:            "UTC",
		LogLevel:      "info",
		DBDriver:      DriverPostgres,
		DBHost:        "localhost",
		DBPort:        "5432",
		DBUser:        "postgres",
		DBName:        "postgres",
		DBMaxAttempts: 10,
		SQLitePath:    "catalog.db",
	}
}

// Load layers, lowest precedence first: defaults, the YAML file named by
// CATALOG_CONFIG_FILE, then CATALOG_* environment variables. In debug mode a
// .env file in the working directory is loaded into the environment first,
// if present.
func Load() (*Config, error) {
	if strings.ToLower(os.Getenv(envPrefix+"GIN_MODE")) != "release" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	k := koanf.New(".")

	if path := os.Getenv(configFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	// CATALOG_DB_HOST -> db_host
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}
