// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultAuthorPassword is the password given to a freshly created default author.
const DefaultAuthorPassword = "admin123"

// Seeding defaults shared by the config layer and the command line flags.
const (
	DefaultSeedNumber      = 100
	DefaultSeedMinComments = 0
	DefaultSeedMaxComments = 5
)

// Config holds application configuration values loaded from file, environment variables
// and command line flags bound into viper.
type Config struct {
	Env string `mapstructure:"APP_ENV"`

	DBDriver                 string `mapstructure:"DB_DRIVER"`
	DBPath                   string `mapstructure:"DB_PATH"`
	DBHost                   string `mapstructure:"DB_HOST"`
	DBPort                   string `mapstructure:"DB_PORT"`
	DBUser                   string `mapstructure:"DB_USER"`
	DBPassword               string `mapstructure:"DB_PASSWORD"`
	DBName                   string `mapstructure:"DB_NAME"`
	DBSSLMode                string `mapstructure:"DB_SSLMODE"`
	DBAutoMigrate            bool   `mapstructure:"DB_AUTO_MIGRATE"`
	DBMaxOpenConns           int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`

	RedisURL string `mapstructure:"REDIS_URL"`

	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampler  float64 `mapstructure:"TRACING_SAMPLER_RATIO"`

	SeedAuthorPassword string `mapstructure:"SEED_AUTHOR_PASSWORD"`
	SeedNumber         int    `mapstructure:"SEED_NUMBER"`
	SeedDelete         bool   `mapstructure:"SEED_DELETE"`
	SeedMinComments    int    `mapstructure:"SEED_MIN_COMMENTS"`
	SeedMaxComments    int    `mapstructure:"SEED_MAX_COMMENTS"`
	SeedRandom         int64  `mapstructure:"SEED_RANDOM"`
	SeedMetricsFile    string `mapstructure:"SEED_METRICS_FILE"`
}

// LoadConfig loads application configuration from file and environment variables.
// Flags bound with viper.BindPFlag before the call take precedence over both.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; env vars and defaults are enough for local seeding.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read profile-specific config 'config.%s.yml': %w", env, err)
			}
		} else {
			log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
		}
	}

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", DriverSQLite)
	viper.SetDefault("DB_PATH", "blog.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "blog")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)
	viper.SetDefault("SEED_AUTHOR_PASSWORD", DefaultAuthorPassword)
	viper.SetDefault("SEED_NUMBER", DefaultSeedNumber)
	viper.SetDefault("SEED_DELETE", false)
	viper.SetDefault("SEED_MIN_COMMENTS", DefaultSeedMinComments)
	viper.SetDefault("SEED_MAX_COMMENTS", DefaultSeedMaxComments)
	viper.SetDefault("SEED_RANDOM", 0)
	viper.SetDefault("SEED_METRICS_FILE", "")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.DBDriver = strings.ToLower(strings.TrimSpace(config.DBDriver))
	config.DBSSLMode = strings.ToLower(strings.TrimSpace(config.DBSSLMode))
	config.Env = strings.ToLower(strings.TrimSpace(config.Env))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// IsProduction reports whether the configuration targets a production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres driver")
		}
		if c.IsProduction() {
			if c.DBPassword == "password" || c.DBPassword == "" {
				return errors.New("a strong DB_PASSWORD is required in production")
			}
			if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
				log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
			}
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}

	if c.SeedAuthorPassword == "" {
		return errors.New("SEED_AUTHOR_PASSWORD is required")
	}
	if c.TracingEnabled && c.TracingExporter != "stdout" && c.TracingExporter != "otlp" {
		return fmt.Errorf("unsupported TRACING_EXPORTER %q", c.TracingExporter)
	}

	return nil
}

// ValidateSeeding rejects seeding runs that would destroy data in production.
func (c *Config) ValidateSeeding() error {
	if c.IsProduction() && c.SeedDelete {
		return errors.New("refusing to delete existing posts in production")
	}
	return nil
}
