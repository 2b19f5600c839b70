package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/plantingplanner/planner-tui/internal/messages"
)

// EnvPrefix prefixes every environment override, e.g. PLANNER_API_ENDPOINT.
const EnvPrefix = "PLANNER"

// Default configuration values
const (
	DefaultAPIEndpoint    = "http://localhost:8000/api"
	DefaultPollInterval   = 5 * time.Second
	DefaultTimeout        = 2 * time.Minute
	DefaultToastDuration  = 5 * time.Second
	DefaultStatusInterval = 30 * time.Second
	DefaultTheme          = "dark"
	DefaultLogLevel       = "info"

	appName = "planner-tui"
)

// dotEnvFiles are loaded into the process environment before config is read.
var dotEnvFiles = []string{".env"}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Config holds the application configuration
type Config struct {
	APIEndpoint    string        `mapstructure:"api_endpoint"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ToastDuration  time.Duration `mapstructure:"toast_duration"`
	StatusInterval time.Duration `mapstructure:"status_interval"`
	Language       string        `mapstructure:"language"`
	Theme          string        `mapstructure:"theme"`
	Log            LogConfig     `mapstructure:"log"`
	StateDir       string        `mapstructure:"state_dir"`

	// path is the file this config was loaded from and is saved to.
	path string
}

// GetPath returns the path to the config file
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// DefaultDataDir returns ~/.local/share/planner-tui, or "" when the home
// directory cannot be determined.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share", appName)
}

// Load reads the configuration from ~/.config/planner-tui/config.yaml.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := GetPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path, applying defaults, any .env
// file in the working directory and PLANNER_* environment overrides.
func LoadFrom(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	// Create a new viper instance to avoid state pollution
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	dataDir := DefaultDataDir()

	v.SetDefault("api_endpoint", DefaultAPIEndpoint)
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("toast_duration", DefaultToastDuration)
	v.SetDefault("status_interval", DefaultStatusInterval)
	v.SetDefault("language", string(messages.DefaultLanguage))
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("state_dir", dataDir)
	if dataDir != "" {
		v.SetDefault("log.file", filepath.Join(dataDir, appName+".log"))
	} else {
		v.SetDefault("log.file", "")
	}
}

func loadDotEnv() error {
	for _, f := range dotEnvFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIEndpoint) == "" {
		return fmt.Errorf("api_endpoint cannot be empty")
	}

	durations := []struct {
		key   string
		value time.Duration
	}{
		{"poll_interval", c.PollInterval},
		{"timeout", c.Timeout},
		{"toast_duration", c.ToastDuration},
		{"status_interval", c.StatusInterval},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be greater than 0, got %s", d.key, d.value)
		}
	}

	if !messages.IsSupported(c.Language) {
		return fmt.Errorf("unsupported language %q (supported: en, ja)", c.Language)
	}

	if c.Theme == "" {
		return fmt.Errorf("theme cannot be empty")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.Log.Level)
	}

	return nil
}

// GetTheme returns the configured theme name.
// Returns the default theme if the theme is empty.
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return DefaultTheme
	}
	return c.Theme
}

// Path returns the file the configuration is saved to.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid configuration: %w", err)
	}

	path := c.path
	if path == "" {
		var err error
		if path, err = GetPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("api_endpoint", c.APIEndpoint)
	v.Set("poll_interval", c.PollInterval.String())
	v.Set("timeout", c.Timeout.String())
	v.Set("toast_duration", c.ToastDuration.String())
	v.Set("status_interval", c.StatusInterval.String())
	v.Set("language", c.Language)
	v.Set("theme", c.Theme)
	v.Set("log.file", c.Log.File)
	v.Set("log.level", c.Log.Level)
	v.Set("state_dir", c.StateDir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	c.path = path
	return nil
}

// UpdateTheme sets the theme and persists it.
func (c *Config) UpdateTheme(theme string) error {
	if theme == "" {
		return fmt.Errorf("theme cannot be empty")
	}

	previous := c.Theme
	c.Theme = theme
	if err := c.Save(); err != nil {
		c.Theme = previous
		return err
	}
	return nil
}
