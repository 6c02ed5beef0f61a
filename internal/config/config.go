package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModeDemo = "demo"
	ModeLive = "live"

	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var (
	ErrInvalidMode    = errors.New("invalid APP_MODE (must be demo or live)")
	ErrInvalidBackend = errors.New("invalid STORAGE_BACKEND (must be memory, sqlite, redis or postgres)")
	ErrMissingLiveURL = errors.New("LIVE_API_URL is required in live mode")
)

type Config struct {
	Mode     string `yaml:"mode"`
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Live     LiveConfig     `yaml:"live"`
	Demo     DemoConfig     `yaml:"demo"`
	Auth     AuthConfig     `yaml:"auth"`

	// RateLimit is requests per minute per client IP; 0 disables it.
	RateLimit int `yaml:"rate_limit"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"`
	SQLitePath string `yaml:"sqlite_path"`
	Namespace  string `yaml:"namespace"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled reports whether a Redis host was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type LiveConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type DemoConfig struct {
	Seed            int64         `yaml:"seed"`
	Freshness       time.Duration `yaml:"freshness"`
	SyncDelay       time.Duration `yaml:"sync_delay"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	Issuer        string        `yaml:"issuer"`
	TokenDuration time.Duration `yaml:"token_duration"`
}

func Default() Config {
	return Config{
		Mode:     ModeDemo,
		Port:     "8080",
		LogLevel: "info",
		Storage: StorageConfig{
			Backend:    BackendMemory,
			SQLitePath: "data/demo.db",
			Namespace:  "demo_",
		},
		Redis: RedisConfig{Port: "6379"},
		Database: DatabaseConfig{
			Driver: "pgx",
			Host:   "localhost",
			Port:   "5432",
		},
		Live: LiveConfig{Timeout: 15 * time.Second},
		Demo: DemoConfig{
			Freshness:       7 * 24 * time.Hour,
			SyncDelay:       2 * time.Second,
			RefreshInterval: time.Hour,
		},
		Auth: AuthConfig{
			Issuer:        "kanso-demo-engine",
			TokenDuration: 24 * time.Hour,
		},
	}
}

// Load layers defaults, the optional YAML file named by CONFIG_FILE, and the
// environment (a local .env is loaded first when present).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Mode, "APP_MODE")
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	setString(&cfg.Storage.Backend, "STORAGE_BACKEND")
	setString(&cfg.Storage.SQLitePath, "SQLITE_PATH")
	setString(&cfg.Storage.Namespace, "STORAGE_NAMESPACE")

	setString(&cfg.Redis.Host, "REDIS_HOST")
	setString(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Name, "DB_NAME")

	setString(&cfg.Live.BaseURL, "LIVE_API_URL")
	setString(&cfg.Live.Token, "LIVE_API_TOKEN")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.Issuer, "JWT_ISSUER")

	var errs []error
	errs = append(errs,
		setInt(&cfg.Redis.DB, "REDIS_DB"),
		setInt(&cfg.RateLimit, "RATE_LIMIT"),
		setInt64(&cfg.Demo.Seed, "DEMO_SEED"),
		setDuration(&cfg.Live.Timeout, "LIVE_API_TIMEOUT"),
		setDuration(&cfg.Demo.Freshness, "DEMO_FRESHNESS"),
		setDuration(&cfg.Demo.SyncDelay, "DEMO_SYNC_DELAY"),
		setDuration(&cfg.Demo.RefreshInterval, "DEMO_REFRESH_INTERVAL"),
		setDuration(&cfg.Auth.TokenDuration, "JWT_DURATION"),
	)
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	c.Mode = strings.ToLower(c.Mode)
	switch c.Mode {
	case ModeDemo, ModeLive:
	default:
		return ErrInvalidMode
	}

	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendRedis, BackendPostgres:
	default:
		return ErrInvalidBackend
	}

	if c.Storage.Backend == BackendRedis && !c.Redis.Enabled() {
		return errors.New("REDIS_HOST is required for the redis backend")
	}

	if c.Mode == ModeLive && c.Live.BaseURL == "" {
		return ErrMissingLiveURL
	}
	return nil
}

func (c Config) IsDemo() bool {
	return strings.EqualFold(c.Mode, ModeDemo)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = d
	return nil
}
