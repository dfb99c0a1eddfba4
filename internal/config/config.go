// Package config loads caseassist settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix = "CASEASSIST"

	WorkflowAdvice = "advice"
	WorkflowSearch = "search"
)

// Keys shared with flag bindings.
const (
	KeyBackendURL      = "backend_url"
	KeyHTTPTimeout     = "http_timeout"
	KeyDefaultWorkflow = "default_workflow"
	KeyLogFile         = "log.file"
	KeyLogLevel        = "log.level"
)

// legacyURLEnv are accepted when CASEASSIST_BACKEND_URL is unset.
var legacyURLEnv = []string{"BACKEND_URL", "NEXT_PUBLIC_BACKEND_URL"}

type Config struct {
	BackendURL      string        `mapstructure:"backend_url"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	DefaultWorkflow string        `mapstructure:"default_workflow"`
	Log             LogConfig     `mapstructure:"log"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func defaultConfig() *Config {
	return &Config{
		HTTPTimeout:     0,
		DefaultWorkflow: WorkflowAdvice,
		Log: LogConfig{
			File:  defaultLogPath(),
			Level: "info",
		},
	}
}

func defaultLogPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "caseassist", "caseassist.log")
}

// New returns a viper instance with defaults, env bindings and the config
// file search path set up. Callers may bind flags before calling Load.
func New(configPath string) *viper.Viper {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault(KeyBackendURL, "")
	v.SetDefault(KeyHTTPTimeout, cfg.HTTPTimeout)
	v.SetDefault(KeyDefaultWorkflow, cfg.DefaultWorkflow)
	v.SetDefault(KeyLogFile, cfg.Log.File)
	v.SetDefault(KeyLogLevel, cfg.Log.Level)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Join(homeDir, ".config", "caseassist"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (a missing file is fine) and unmarshals the
// merged settings.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.BackendURL == "" {
		for _, key := range legacyURLEnv {
			if value := strings.TrimSpace(os.Getenv(key)); value != "" {
				cfg.BackendURL = value
				break
			}
		}
	}
	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/")
	cfg.DefaultWorkflow = strings.ToLower(strings.TrimSpace(cfg.DefaultWorkflow))
	cfg.Log.File = expandPath(cfg.Log.File)
	return &cfg, nil
}

// Validate reports configuration the program cannot run with.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend URL is required (set %s_BACKEND_URL, BACKEND_URL or --backend-url)", envPrefix)
	}
	parsed, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend URL must use http or https, got %q", c.BackendURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("backend URL must have a host, got %q", c.BackendURL)
	}
	switch c.DefaultWorkflow {
	case WorkflowAdvice, WorkflowSearch:
	default:
		return fmt.Errorf("default_workflow must be %q or %q, got %q", WorkflowAdvice, WorkflowSearch, c.DefaultWorkflow)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}
	return nil
}

// expandPath expands ~ to the home directory.
func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	return path
}
