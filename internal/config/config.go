package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"workerTracker/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config.yml"
	EnvPrefix   = "WORKERTRACKER"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	SQLite     SQLiteConfig     `yaml:"sqlite"`
	Logging    LoggingConfig    `yaml:"logging"`
	Repository RepositoryConfig `yaml:"repository"`
	Calendar   CalendarConfig   `yaml:"calendar"`
	Worker     WorkerConfig     `yaml:"worker"`
	HTTP       HTTPConfig       `yaml:"http"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL                string        `yaml:"url"`
	MaxConnections     int           `yaml:"max_connections"`
	MinConnections     int           `yaml:"min_connections"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type RepositoryConfig struct {
	Type string `yaml:"type"` // "inmemory", "postgres" или "sqlite"
}

type CalendarConfig struct {
	MaxRangeDays int `yaml:"max_range_days"`
}

type WorkerConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ReminderSpec string `yaml:"reminder_spec"`
}

type HTTPConfig struct {
	RateLimitRPM   int           `yaml:"rate_limit_rpm"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CORSOrigins    []string      `yaml:"cors_origins"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConnections:     10,
			MinConnections:     2,
			IdleTimeout:        5 * time.Minute,
			SlowQueryThreshold: 200 * time.Millisecond,
		},
		SQLite:     SQLiteConfig{Path: "worker_tracker.db"},
		Logging:    LoggingConfig{Development: true},
		Repository: RepositoryConfig{Type: repository.TypeInMemory},
		Calendar:   CalendarConfig{MaxRangeDays: 366},
		Worker:     WorkerConfig{Enabled: true, ReminderSpec: "@every 1m"},
		HTTP: HTTPConfig{
			RateLimitRPM:   100,
			RequestTimeout: 30 * time.Second,
			CORSOrigins:    []string{"*"},
		},
	}
}

// Load читает YAML поверх значений по умолчанию и применяет переменные окружения
// WORKERTRACKER_<СЕКЦИЯ>_<КЛЮЧ>. Отсутствие файла по умолчанию не ошибка.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}

	cfg.applyEnv(newEnv())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (c *Config) applyEnv(v *viper.Viper) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	flag := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v.IsSet(key) {
			*dst = v.GetDuration(key)
		}
	}

	str("server.port", &c.Server.Port)
	str("server.host", &c.Server.Host)
	dur("server.read_timeout", &c.Server.ReadTimeout)
	dur("server.write_timeout", &c.Server.WriteTimeout)
	dur("server.shutdown_timeout", &c.Server.ShutdownTimeout)

	str("database.url", &c.Database.URL)
	num("database.max_connections", &c.Database.MaxConnections)
	num("database.min_connections", &c.Database.MinConnections)
	dur("database.idle_timeout", &c.Database.IdleTimeout)
	dur("database.slow_query_threshold", &c.Database.SlowQueryThreshold)

	str("sqlite.path", &c.SQLite.Path)
	flag("logging.development", &c.Logging.Development)
	str("repository.type", &c.Repository.Type)
	num("calendar.max_range_days", &c.Calendar.MaxRangeDays)

	flag("worker.enabled", &c.Worker.Enabled)
	str("worker.reminder_spec", &c.Worker.ReminderSpec)

	num("http.rate_limit_rpm", &c.HTTP.RateLimitRPM)
	dur("http.request_timeout", &c.HTTP.RequestTimeout)
	if v.IsSet("http.cors_origins") {
		var origins []string
		for _, o := range strings.Split(v.GetString("http.cors_origins"), ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.HTTP.CORSOrigins = origins
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("config: server.port не задан")
	}

	switch c.Repository.Type {
	case repository.TypeInMemory:
	case repository.TypePostgres:
		if c.Database.URL == "" {
			return errors.New("config: database.url обязателен для postgres")
		}
		if c.Database.MaxConnections < 1 || c.Database.MinConnections < 0 ||
			c.Database.MinConnections > c.Database.MaxConnections {
			return fmt.Errorf("config: неверный размер пула %d..%d",
				c.Database.MinConnections, c.Database.MaxConnections)
		}
	case repository.TypeSQLite:
		if c.SQLite.Path == "" {
			return errors.New("config: sqlite.path обязателен для sqlite")
		}
	default:
		return fmt.Errorf("config: %w %q", repository.ErrUnknownType, c.Repository.Type)
	}

	if c.Calendar.MaxRangeDays < 1 {
		return fmt.Errorf("config: calendar.max_range_days должно быть >= 1, получено %d", c.Calendar.MaxRangeDays)
	}
	if c.HTTP.RateLimitRPM < 0 {
		return fmt.Errorf("config: http.rate_limit_rpm не может быть отрицательным")
	}
	if c.Worker.Enabled {
		if _, err := cron.ParseStandard(c.Worker.ReminderSpec); err != nil {
			return fmt.Errorf("config: worker.reminder_spec %q: %w", c.Worker.ReminderSpec, err)
		}
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
