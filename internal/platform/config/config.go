package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBaseURL     = "https://teamboard-backend-1.onrender.com"
	DefaultRequestTimeout = 15 * time.Second

	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

type Config struct {
	APIBaseURL     string        `yaml:"api_url"`
	StateDir       string        `yaml:"state_dir"`
	Storage        string        `yaml:"storage"`
	Timezone       string        `yaml:"timezone"`
	WeekStart      string        `yaml:"week_start"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LoadOptions carries the command-line layer. Empty fields do not override.
type LoadOptions struct {
	ConfigPath string
	EnvFile    string
	APIBaseURL string
	StateDir   string
}

func Default() Config {
	return Config{
		APIBaseURL:     DefaultAPIBaseURL,
		StateDir:       filepath.Join(baseDir(), "teamboard"),
		Storage:        StorageSQLite,
		WeekStart:      "sunday",
		LogLevel:       "info",
		RequestTimeout: DefaultRequestTimeout,
	}
}

// DefaultPath is the YAML file consulted when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(baseDir(), "teamboard", "config.yaml")
}

// Load resolves flags > env > .env > YAML file > defaults.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return Config{}, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables already present in the environment.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}

	if opts.APIBaseURL != "" {
		cfg.APIBaseURL = opts.APIBaseURL
	}
	if opts.StateDir != "" {
		cfg.StateDir = opts.StateDir
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, explicit bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	file := Config{}
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	c.overlay(file)
	return nil
}

func (c *Config) mergeEnv() error {
	env := Config{
		APIBaseURL: os.Getenv("TEAMBOARD_API_URL"),
		StateDir:   os.Getenv("TEAMBOARD_STATE_DIR"),
		Storage:    os.Getenv("TEAMBOARD_STORAGE"),
		Timezone:   os.Getenv("TEAMBOARD_TIMEZONE"),
		WeekStart:  os.Getenv("TEAMBOARD_WEEK_START"),
		LogLevel:   os.Getenv("TEAMBOARD_LOG_LEVEL"),
	}
	if raw := os.Getenv("TEAMBOARD_REQUEST_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse TEAMBOARD_REQUEST_TIMEOUT: %w", err)
		}
		env.RequestTimeout = timeout
	}
	c.overlay(env)
	return nil
}

func (c *Config) overlay(other Config) {
	if other.APIBaseURL != "" {
		c.APIBaseURL = other.APIBaseURL
	}
	if other.StateDir != "" {
		c.StateDir = other.StateDir
	}
	if other.Storage != "" {
		c.Storage = other.Storage
	}
	if other.Timezone != "" {
		c.Timezone = other.Timezone
	}
	if other.WeekStart != "" {
		c.WeekStart = other.WeekStart
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.RequestTimeout != 0 {
		c.RequestTimeout = other.RequestTimeout
	}
}

func (c *Config) normalize() {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Timezone = strings.TrimSpace(c.Timezone)
}

func (c Config) Validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api url %q must be an absolute http(s) url", c.APIBaseURL)
	}
	if c.StateDir == "" {
		return fmt.Errorf("state dir is required")
	}
	switch c.Storage {
	case StorageSQLite, StorageFile:
	default:
		return fmt.Errorf("unsupported storage %q (want %s or %s)", c.Storage, StorageSQLite, StorageFile)
	}
	switch c.WeekStart {
	case "sunday", "monday":
	default:
		return fmt.Errorf("unsupported week start %q (want sunday or monday)", c.WeekStart)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c Config) DBPath() string {
	return filepath.Join(c.StateDir, "teamboard.db")
}

func (c Config) StoragePath() string {
	return filepath.Join(c.StateDir, "storage.json")
}

func (c Config) LogPath() string {
	return filepath.Join(c.StateDir, "teamboard.log")
}

// Location resolves the viewer's time zone. Empty means the host's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) WeekStartDay() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

func baseDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return dir
}
