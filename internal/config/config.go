package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default values used when neither the config file nor the environment sets a key
const (
	DefaultAPIURL         = "https://api.github.com/"
	DefaultTimeout        = 15 * time.Second
	DefaultShortener      = "https://is.gd/create.php?format=simple&url=%s"
	DefaultCommitSearch   = "https://www.google.com/search?q=%s"
	DefaultTaskManagerURL = "things:///add?show-quick-entry=true&title=%s&notes=%s"
)

// Config holds the application configuration
type Config struct {
	GitHub struct {
		APIURL string
		// Token overrides the stored preference when set (GITHUB_TOKEN)
		Token   string
		Timeout time.Duration
	}
	Preferences struct {
		Path string
	}
	Shortener struct {
		// Endpoint is a URL template; %s receives the escaped link
		Endpoint string
	}
	Search struct {
		// CommitURL is a URL template; %s receives the commit SHA
		CommitURL string
	}
	TaskManager struct {
		// URL is a URL template; the first %s receives the title, the second the link
		URL string
	}
	Logging struct {
		Level      string
		JSONFormat bool
	}
}

// GetConfigDir returns the directory holding the config and preference files
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".hublaunch")
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if path := os.Getenv("HUBLAUNCH_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(GetConfigDir(), "config.json")
}

// Load reads the config file (if present) and applies HUBLAUNCH_* environment overrides
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads configuration from the given path. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("HUBLAUNCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("github.api_url", DefaultAPIURL)
	v.SetDefault("github.timeout", DefaultTimeout.String())
	v.SetDefault("preferences.path", filepath.Join(GetConfigDir(), "preferences.json"))
	v.SetDefault("shortener.endpoint", DefaultShortener)
	v.SetDefault("search.commit_url", DefaultCommitSearch)
	v.SetDefault("taskmanager.url", DefaultTaskManagerURL)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.json", false)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.GitHub.APIURL = v.GetString("github.api_url")
	cfg.GitHub.Timeout = v.GetDuration("github.timeout")
	cfg.Preferences.Path = v.GetString("preferences.path")
	cfg.Shortener.Endpoint = v.GetString("shortener.endpoint")
	cfg.Search.CommitURL = v.GetString("search.commit_url")
	cfg.TaskManager.URL = v.GetString("taskmanager.url")
	cfg.Logging.Level = v.GetString("logging.level")
	cfg.Logging.JSONFormat = v.GetBool("logging.json")

	// A token in the environment wins over the stored preference
	if envToken := os.Getenv("GITHUB_TOKEN"); envToken != "" {
		cfg.GitHub.Token = envToken
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks the values the rest of the program relies on
func validateConfig(config *Config) error {
	if config.GitHub.APIURL == "" {
		return fmt.Errorf("github api url is required")
	}
	if _, err := url.Parse(config.GitHub.APIURL); err != nil {
		return fmt.Errorf("invalid github api url: %w", err)
	}
	if !strings.HasSuffix(config.GitHub.APIURL, "/") {
		config.GitHub.APIURL += "/"
	}

	if config.GitHub.Timeout <= 0 {
		return fmt.Errorf("github timeout must be positive")
	}

	if config.Preferences.Path == "" {
		return fmt.Errorf("preferences path is required")
	}

	if !strings.Contains(config.Search.CommitURL, "%s") {
		return fmt.Errorf("search commit url must contain a %%s placeholder")
	}

	if strings.Count(config.TaskManager.URL, "%s") != 2 {
		return fmt.Errorf("task manager url must contain two %%s placeholders")
	}

	return nil
}
