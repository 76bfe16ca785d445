// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported credential store drivers.
const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// EnvDevelopment is the environment name that relaxes secret checks.
const EnvDevelopment = "development"

// devJWTSecret is only used when JWT_SECRET is unset in development.
const devJWTSecret = "dev-insecure-secret"

// Config contains server configuration parameters.
type Config struct {
	Environment string   `env:"APP_ENV" envDefault:"development"`
	Port        string   `env:"PORT" envDefault:"8080"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"LOG_FORMAT" envDefault:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	Database  Database  `envPrefix:"DATABASE_"`
	Mongo     Mongo     `envPrefix:"MONGO_"`
	JWT       JWT       `envPrefix:"JWT_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	Countries Countries `envPrefix:"COUNTRIES_"`

	BcryptCost    int  `env:"BCRYPT_COST" envDefault:"10"`
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// Database selects the credential store. DSN is used by the SQL drivers only.
type Database struct {
	Driver string `env:"DRIVER" envDefault:"mongodb"`
	DSN    string `env:"DSN" envDefault:"worldexplorer.db"`
}

// Mongo contains MongoDB connection parameters.
type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"worldexplorer"`
}

// JWT contains token signing parameters.
type JWT struct {
	Secret string        `env:"SECRET"`
	Expire time.Duration `env:"EXPIRE" envDefault:"30d"`
}

// Redis contains the optional cache connection. An empty Addr disables caching.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Countries configures the upstream country data API.
type Countries struct {
	BaseURL   string        `env:"BASE_URL" envDefault:"https://restcountries.com/v3.1"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"6h"`
	RateLimit int           `env:"RATE_LIMIT" envDefault:"60"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return Parse()
}

// Parse builds the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := Config{}
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): func(v string) (any, error) {
				return ParseDuration(v)
			},
		},
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// NODE_ENV is honoured for deployments carried over from the previous stack.
	if _, ok := os.LookupEnv("APP_ENV"); !ok {
		if nodeEnv := os.Getenv("NODE_ENV"); nodeEnv != "" {
			cfg.Environment = nodeEnv
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongodb driver"))
		}
	case DriverPostgres, DriverMySQL, DriverSQLite:
		if c.Database.DSN == "" {
			errs = append(errs, fmt.Errorf("DATABASE_DSN is required for the %s driver", c.Database.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver))
	}

	if c.JWT.Secret == "" {
		if !c.IsDevelopment() {
			errs = append(errs, errors.New("JWT_SECRET is required outside development"))
		} else {
			// JWT_SECRETチェック（開発中の注意喚起）
			slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
			c.JWT.Secret = devJWTSecret
		}
	}
	if c.JWT.Expire <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE must be positive"))
	}

	return errors.Join(errs...)
}

// ParseDuration accepts time.ParseDuration syntax plus a whole-day suffix
// such as "30d", the form JWT_EXPIRE has always been written in.
func ParseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", v)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", v, err)
	}
	return d, nil
}
