package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/elix1er/ai-news-aggregator/internal/domain"
)

const (
	configPathEnv = "AINEWS_CONFIG"
	outputDirEnv  = "AINEWS_OUTPUT_DIR"
	logLevelEnv   = "AINEWS_LOG_LEVEL"

	defaultOutputDir = "ai_news_updates"
	defaultExtension = ".mdx"
	defaultLogLevel  = "info"
)

var (
	errNoOutputDir     = errors.New("output directory is empty")
	errNoSources       = errors.New("no sources configured")
	errNegativeSetting = errors.New("setting must not be negative")
)

// Config holds high-level settings required across the application.
type Config struct {
	Output   OutputConfig              `yaml:"output"`
	Logging  LoggingConfig             `yaml:"logging"`
	HTTP     HTTPConfig                `yaml:"http"`
	Fetch    FetchConfig               `yaml:"fetch"`
	Keywords []string                  `yaml:"keywords"`
	Sources  []domain.SourceDescriptor `yaml:"sources"`
}

// OutputConfig says where documents are written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"extension"`
}

// LoggingConfig selects the console log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HTTPConfig tunes the shared HTTP client. Empty user agents fall back to
// the adapters' built-in identities.
type HTTPConfig struct {
	Timeout          time.Duration `yaml:"timeout"`
	UserAgent        string        `yaml:"userAgent"`
	BrowserUserAgent string        `yaml:"browserUserAgent"`
}

// FetchConfig bounds how sources are fetched.
type FetchConfig struct {
	MaxItems      int           `yaml:"maxItems"`
	Concurrency   int           `yaml:"concurrency"`
	SourceTimeout time.Duration `yaml:"sourceTimeout"`
	RunTimeout    time.Duration `yaml:"runTimeout"`
}

// Load builds the configuration from defaults, the YAML file at path (or
// AINEWS_CONFIG when path is empty) and environment overrides.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("config: %w", errNoOutputDir)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("config: %w", errNoSources)
	}
	for i, src := range c.Sources {
		if err := src.Validate(); err != nil {
			return fmt.Errorf("config: sources[%d]: %w", i, err)
		}
	}

	checks := []struct {
		name     string
		negative bool
	}{
		{"http.timeout", c.HTTP.Timeout < 0},
		{"fetch.maxItems", c.Fetch.MaxItems < 0},
		{"fetch.concurrency", c.Fetch.Concurrency < 0},
		{"fetch.sourceTimeout", c.Fetch.SourceTimeout < 0},
		{"fetch.runTimeout", c.Fetch.RunTimeout < 0},
	}
	for _, check := range checks {
		if check.negative {
			return fmt.Errorf("config: %s: %w", check.name, errNegativeSetting)
		}
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(outputDirEnv); v != "" {
		c.Output.Dir = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}
	if override.Output.Extension != "" {
		base.Output.Extension = override.Output.Extension
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.HTTP.Timeout != 0 {
		base.HTTP.Timeout = override.HTTP.Timeout
	}
	if override.HTTP.UserAgent != "" {
		base.HTTP.UserAgent = override.HTTP.UserAgent
	}
	if override.HTTP.BrowserUserAgent != "" {
		base.HTTP.BrowserUserAgent = override.HTTP.BrowserUserAgent
	}

	if override.Fetch.MaxItems != 0 {
		base.Fetch.MaxItems = override.Fetch.MaxItems
	}
	if override.Fetch.Concurrency != 0 {
		base.Fetch.Concurrency = override.Fetch.Concurrency
	}
	if override.Fetch.SourceTimeout != 0 {
		base.Fetch.SourceTimeout = override.Fetch.SourceTimeout
	}
	if override.Fetch.RunTimeout != 0 {
		base.Fetch.RunTimeout = override.Fetch.RunTimeout
	}

	if len(override.Keywords) > 0 {
		base.Keywords = override.Keywords
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Output:  OutputConfig{Dir: defaultOutputDir, Extension: defaultExtension},
		Logging: LoggingConfig{Level: defaultLogLevel},
		HTTP:    HTTPConfig{Timeout: 20 * time.Second},
		Fetch: FetchConfig{
			MaxItems:      10,
			Concurrency:   1,
			SourceTimeout: 30 * time.Second,
			RunTimeout:    15 * time.Minute,
		},
		Keywords: DefaultKeywords(),
		Sources:  DefaultSources(),
	}
}

// DefaultKeywords is the built-in AI/ML relevance list.
func DefaultKeywords() []string {
	return []string{
		"artificial intelligence", "AI", "machine learning", "deep learning", "neural network",
		"AI ethics", "AI legislation", "AI regulation", "AI risk", "AI safety",
		"AI progress", "AI capabilities", "AI limitations", "AI hype", "AI reality",
	}
}

// DefaultSources is the built-in source registry.
func DefaultSources() []domain.SourceDescriptor {
	feed := func(url string) domain.SourceDescriptor {
		return domain.SourceDescriptor{Kind: domain.KindFeed, URL: url}
	}

	return []domain.SourceDescriptor{
		feed("https://techcrunch.com/category/artificial-intelligence/feed/"),
		feed("https://www.theverge.com/rss/ai-artificial-intelligence/index.xml"),
		{
			Kind: domain.KindScrape,
			URL:  "https://www.wired.com/category/artificial-intelligence/",
			Selectors: &domain.SelectorSet{
				Article:     "div.summary-item",
				Title:       "h3",
				Description: "div.summary-item__dek",
				Link:        "a",
			},
		},
		feed("https://blogs.nvidia.com/feed/"),
		feed("https://openai.com/blog/rss.xml"),
		feed("https://www.artificialintelligence-news.com/feed/"),
		feed("https://www.ai-trends.com/feed/"),
		feed("https://www.technologyreview.com/topic/artificial-intelligence/feed"),
		feed("https://ai.googleblog.com/feeds/posts/default"),
		feed("https://www.microsoft.com/en-us/ai/ai-blog-feed"),
		feed("https://aws.amazon.com/blogs/machine-learning/feed/"),
		feed("https://venturebeat.com/category/ai/feed/"),
		feed("https://www.zdnet.com/topic/artificial-intelligence/rss.xml"),
		feed("https://www.forbes.com/ai/feed/"),
		feed("https://www.oneusefulthingatime.com/feed"),
		feed("https://garymarcus.substack.com/feed"),
		feed("https://www.aisnakeoil.com/feed"),
		feed("https://www.sciencedaily.com/rss/computers_math/artificial_intelligence.xml"),
		feed("https://www.newscientist.com/subject/technology/feed/"),
		feed("https://www.infoworld.com/category/artificial-intelligence/index.rss"),
		feed("https://www.nature.com/subjects/artificial-intelligence.rss"),
		feed("https://www.reddit.com/r/artificial/top/.rss"),
		{
			Kind: domain.KindScrape,
			URL:  "https://aimagazine.com/ai-and-machine-learning",
			Selectors: &domain.SelectorSet{
				Article:     "div.article-card",
				Title:       "h2",
				Description: "p",
				Link:        "a",
			},
		},
	}
}
