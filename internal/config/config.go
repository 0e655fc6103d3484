package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/technopolitica/company-employees/internal/paging"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Paging   PagingConfig   `yaml:"paging"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	// Storage is "postgres" or "memory".
	Storage string `yaml:"storage"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type PagingConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

var ErrInvalidConfig = errors.New("invalid configuration")

func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
			RequestTimeout:    15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			Storage:           StoragePostgres,
		},
		Paging: PagingConfig{
			DefaultPageSize: paging.DefaultPageSize,
			MaxPageSize:     paging.MaxPageSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
// The result is not validated; callers apply flag overrides first.
func Load(path string) (cfg Config, err error) {
	cfg = Defaults()
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %w", err)
		return
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		err = fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return
}

func (cfg Config) Validate() error {
	var errs []error
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: must be between 0 and 65535"))
	}
	switch cfg.Server.Storage {
	case StoragePostgres:
		if cfg.Database.URL == "" {
			errs = append(errs, fmt.Errorf("database.url: required for postgres storage"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("server.storage: must be %q or %q", StoragePostgres, StorageMemory))
	}
	if cfg.Paging.DefaultPageSize < 1 {
		errs = append(errs, fmt.Errorf("paging.default_page_size: must be a positive integer"))
	}
	if cfg.Paging.MaxPageSize < cfg.Paging.DefaultPageSize {
		errs = append(errs, fmt.Errorf("paging.max_page_size: must be at least paging.default_page_size"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (cfg Config) PagingLimits() paging.Limits {
	return paging.Limits{
		DefaultPageSize: cfg.Paging.DefaultPageSize,
		MaxPageSize:     cfg.Paging.MaxPageSize,
	}
}
