package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production API host. The versioned path segment
// is appended by the client, not stored here.
const DefaultBaseURL = "https://api.boardhub.io"

// Config holds all application configuration
type Config struct {
	// API settings
	Token   string
	BaseURL string
	Timeout time.Duration

	// StrictStatus applies the response status check to POST/PUT requests
	// as well. By default only GET responses are inspected.
	StrictStatus bool

	// Export settings
	OutputDir string
}

type fileConfig struct {
	Token        string `yaml:"token"`
	BaseURL      string `yaml:"base_url"`
	TimeoutSecs  int    `yaml:"timeout"`
	StrictStatus *bool  `yaml:"strict_status"`
	OutputDir    string `yaml:"output_dir"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// LoadFromFile merges settings from a yaml config file. A missing file is
// not an error so the default path can always be attempted.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Token != "" {
		c.Token = fc.Token
	}
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.TimeoutSecs > 0 {
		c.Timeout = time.Duration(fc.TimeoutSecs) * time.Second
	}
	if fc.StrictStatus != nil {
		c.StrictStatus = *fc.StrictStatus
	}
	if fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}

	return nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	if token := os.Getenv("BOARDHUB_TOKEN"); token != "" {
		c.Token = token
	}

	if baseURL := os.Getenv("BOARDHUB_API_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}

	if timeout := os.Getenv("BOARDHUB_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.Timeout = time.Duration(t) * time.Second
		}
	}

	if strict := os.Getenv("BOARDHUB_STRICT_STATUS"); strict != "" {
		if s, err := strconv.ParseBool(strict); err == nil {
			c.StrictStatus = s
		}
	}

	if outputDir := os.Getenv("BOARDHUB_OUTPUT_DIR"); outputDir != "" {
		c.OutputDir = outputDir
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("access token cannot be empty")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL: %s", c.BaseURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	return nil
}
