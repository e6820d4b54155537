// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/brandgraph/internal/domain/services"
)

// DefaultConfigFile is the default config file name.
const DefaultConfigFile = "brandgraph.yaml"

// Config holds static pipeline configuration (read-only after init).
type Config struct {
	Search SearchConfig `yaml:"search,omitempty"`
	Reddit RedditConfig `yaml:"reddit,omitempty"`
	LLM    LLMConfig    `yaml:"llm,omitempty"`
	Output OutputConfig `yaml:"output,omitempty"`
}

// SearchConfig holds the parameters of one pipeline run.
type SearchConfig struct {
	Term       string `yaml:"term,omitempty"`
	Subreddit  string `yaml:"subreddit,omitempty"`
	Sort       string `yaml:"sort,omitempty"`
	TimeFilter string `yaml:"time_filter,omitempty"`
	Limit      int    `yaml:"limit,omitempty"`
	// SubjectID is the master-registry ID of the search subject, used as the
	// pivot when updating the cumulative brand-to-brand ledger.
	SubjectID int `yaml:"subject_id,omitempty"`
}

// RedditConfig holds credentials for the content source.
type RedditConfig struct {
	ClientID     string `yaml:"client_id,omitempty"`
	ClientSecret string `yaml:"client_secret,omitempty"`
	UserAgent    string `yaml:"user_agent,omitempty"`
}

// LLMConfig holds configuration for the classification service.
type LLMConfig struct {
	APIKey string `yaml:"api_key,omitempty"`
	Model  string `yaml:"model,omitempty"`
	// TokensPerMinute caps classifier usage inside one rate window.
	TokensPerMinute int `yaml:"tokens_per_minute,omitempty"`
}

// OutputConfig holds artifact locations.
type OutputConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Subreddit:  "BuyItForLife",
			Sort:       "relevance",
			TimeFilter: "all",
			Limit:      10,
		},
		Reddit: RedditConfig{
			UserAgent: "brandgraph/0.1",
		},
		LLM: LLMConfig{
			Model:           "gpt-4o-mini",
			TokensPerMinute: 80000,
		},
		Output: OutputConfig{
			Dir: "output",
		},
	}
}

// Load loads configuration from the given directory, starting from defaults,
// overlaying the yaml file when present, then environment variables.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	configFile := filepath.Join(basePath, DefaultConfigFile)
	data, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.Search.Term == "" {
		return nil, fmt.Errorf("search term is required (set SEARCH_TERM or search.term in %s)", DefaultConfigFile)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	setString(&c.Search.Term, "SEARCH_TERM")
	setString(&c.Search.Subreddit, "SUBREDDIT")
	setString(&c.Search.Sort, "SEARCH_SORT")
	setString(&c.Search.TimeFilter, "TIME_FILTER")
	setInt(&c.Search.Limit, "POST_LIMIT")
	setInt(&c.Search.SubjectID, "SEARCH_ID")

	setString(&c.Reddit.ClientID, "REDDIT_CLIENT_ID")
	setString(&c.Reddit.ClientSecret, "REDDIT_CLIENT_SECRET")
	setString(&c.Reddit.UserAgent, "REDDIT_USER_AGENT")

	setString(&c.LLM.APIKey, "OPENAI_API_KEY")
	setString(&c.LLM.Model, "OPENAI_MODEL")
	setInt(&c.LLM.TokensPerMinute, "OPENAI_TOKENS_PER_MINUTE")

	setString(&c.Output.Dir, "OUTPUT_DIR")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// RunDir returns the per-run artifact directory for the configured search:
// <output>/<normalized-term>-<normalized-subreddit>.
func (c *Config) RunDir() string {
	folder := services.Normalize(c.Search.Term) + "-" + services.Normalize(c.Search.Subreddit)
	return filepath.Join(c.Output.Dir, folder)
}

// MasterDir returns the directory holding the cumulative master artifacts.
func (c *Config) MasterDir() string {
	return c.Output.Dir
}
