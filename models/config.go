package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for a conversion run. Values come from
// an optional config.yaml; CLI flags override individual fields.
type Config struct {
	WorkerCount     int      `yaml:"workers"`
	Timeout         string   `yaml:"timeout"` // per-fetch timeout, e.g. "10s"
	UserAgent       string   `yaml:"user_agent"`
	Tags            []string `yaml:"tags"` // subset of title,h1,h2,h3,p,li
	FollowRedirects bool     `yaml:"follow_redirects"`
	DetectLanguage  bool     `yaml:"detect_language"`
	Preflight       bool     `yaml:"preflight"`   // HEAD reachability check before GET
	Readability     bool     `yaml:"readability"` // distill main content before extraction
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		WorkerCount:     4,
		Timeout:         "10s",
		UserAgent:       "sitemap2text/1.0",
		FollowRedirects: true,
		DetectLanguage:  true,
	}
}

// LoadConfig reads a YAML config file and merges it over the defaults.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	return config, nil
}

// FetchTimeout parses the configured per-fetch timeout.
func (c *Config) FetchTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout duration %q: %w", c.Timeout, err)
	}
	return d, nil
}

// TagKinds resolves the configured tag names to kinds, falling back to the
// default set when none are configured. Unknown names are rejected.
func (c *Config) TagKinds() ([]TagKind, error) {
	if len(c.Tags) == 0 {
		return DefaultTags, nil
	}
	kinds := make([]TagKind, 0, len(c.Tags))
	for _, name := range c.Tags {
		kind, ok := KindForTag(name)
		if !ok {
			return nil, fmt.Errorf("unrecognized tag %q (expected one of title,h1,h2,h3,p,li)", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
