package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultSubreddits are the communities scanned when SUBREDDITS is unset.
var DefaultSubreddits = []string{
	"SideProject",
	"SaaS",
	"entrepreneur",
	"Automate",
	"smallbusiness",
	"startups",
	"webdev",
	"dataisbeautiful",
}

// DefaultPainKeywords mark a post as a potential lead. They cover direct
// asks ("is there a tool") as well as topics adjacent to data tooling.
var DefaultPainKeywords = []string{
	"is there a tool",
	"i need",
	"looking for",
	"anyone know",
	"does anyone",
	"how do i",
	"recommend",
	"alternative to",
	"automation",
	"ai tool",
	"workflow",
	"scraping",
	"monitoring",
	"competitor analysis",
	"market research",
	"price tracking",
	"data collection",
	"web scraping",
	"browser automation",
}

// Config holds all configuration for the application
type Config struct {
	// Reddit API credentials. ClientID and ClientSecret are required for
	// any API access; Username and Password upgrade the session from
	// read-only to a script session that can post.
	ClientID     string `envconfig:"REDDIT_CLIENT_ID"`
	ClientSecret string `envconfig:"REDDIT_CLIENT_SECRET"`
	Username     string `envconfig:"REDDIT_USERNAME"`
	Password     string `envconfig:"REDDIT_PASSWORD"`

	// Scan tuning
	Subreddits []string `envconfig:"SUBREDDITS"`
	Keywords   []string `envconfig:"KEYWORDS"`
	ScanLimit  int      `envconfig:"SCAN_LIMIT"`

	// HTTP behavior
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`

	// Logging
	Debug     bool   `envconfig:"DEBUG"`
	LogFormat string `envconfig:"LOG_FORMAT"` // "text" or "json"
}

// Load reads configuration from environment variables and fills in
// defaults for anything unset. Missing credentials are not an error
// here; operations decide what an anonymous session is allowed to do.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if len(cfg.Subreddits) == 0 {
		cfg.Subreddits = DefaultSubreddits
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = DefaultPainKeywords
	}
	if cfg.ScanLimit <= 0 {
		cfg.ScanLimit = 25
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	return cfg, nil
}

// Configured reports whether API credentials are present. A client ID
// without a secret (or the reverse) counts as not configured.
func (c *Config) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// ScriptSession reports whether the session can act as a user. Without
// both username and password the API only serves public listings.
func (c *Config) ScriptSession() bool {
	return c.Username != "" && c.Password != ""
}

// UserAgent identifies the tool to the Reddit API. Reddit asks that
// user agents name the account the client acts for.
func (c *Config) UserAgent() string {
	owner := c.Username
	if owner == "" {
		owner = "fishbig"
	}
	return fmt.Sprintf("market_research_assistant:v1.0 (by /u/%s)", owner)
}
