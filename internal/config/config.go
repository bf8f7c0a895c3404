// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	// PoolSize caps concurrently checked-out database connections.
	PoolSize = 10
)

type Config struct {
	Driver     string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	AppPort         int
	ShutdownTimeout time.Duration
	LogLevel        string
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.AppPort)
}

// DBAddr is host:port of the database, bracketing IPv6 hosts.
func (c Config) DBAddr() string {
	return net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort))
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment take precedence over .env.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Driver:     strings.ToLower(lo.CoalesceOrEmpty(os.Getenv("DB_DRIVER"), DriverMySQL)),
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		LogLevel:   lo.CoalesceOrEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	missing := lo.Filter([]string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"}, func(k string, _ int) bool {
		return os.Getenv(k) == ""
	})
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing DB env vars: %s", strings.Join(missing, ", "))
	}

	var defPort string
	switch cfg.Driver {
	case DriverMySQL:
		defPort = "3306"
	case DriverPostgres:
		defPort = "5432"
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	var err error
	if cfg.DBPort, err = portenv("DB_PORT", defPort); err != nil {
		return Config{}, err
	}
	if cfg.AppPort, err = portenv("APP_PORT", "3000"); err != nil {
		return Config{}, err
	}
	secs, err := strconv.Atoi(lo.CoalesceOrEmpty(os.Getenv("SHUTDOWN_TIMEOUT"), "10"))
	if err != nil || secs < 0 {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", os.Getenv("SHUTDOWN_TIMEOUT"))
	}
	cfg.ShutdownTimeout = time.Duration(secs) * time.Second
	return cfg, nil
}

func portenv(key, def string) (int, error) {
	v := lo.CoalesceOrEmpty(os.Getenv(key), def)
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > 65535 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}
