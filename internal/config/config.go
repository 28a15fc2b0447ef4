package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings for the content store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// FeedConfig is a single RSS/Atom source inside a category.
type FeedConfig struct {
	Name   string `mapstructure:"name"`
	URL    string `mapstructure:"url"`
	Active *bool  `mapstructure:"active"` // nil means active
}

// PageConfig is a listing page scraped directly when a source has no feed.
type PageConfig struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// CategoryConfig groups feeds under a newsletter section (eats, events, ...).
type CategoryConfig struct {
	Name  string       `mapstructure:"name"`
	Feeds []FeedConfig `mapstructure:"feeds"`
	Pages []PageConfig `mapstructure:"pages"`
}

// FeedsConfig controls fetching behavior across all categories.
type FeedsConfig struct {
	Categories    []CategoryConfig `mapstructure:"categories"`
	Timeout       string           `mapstructure:"timeout"`        // per-request, duration string
	RequestDelay  string           `mapstructure:"request_delay"`  // politeness sleep between fetches
	FetchInterval string           `mapstructure:"fetch_interval"` // serve mode poll interval
	UserAgent     string           `mapstructure:"user_agent"`
	ItemsPerFeed  int              `mapstructure:"items_per_feed"`
}

// NewsletterConfig controls filtering and output layout.
type NewsletterConfig struct {
	OutputDir      string  `mapstructure:"output_dir"`
	ContentDir     string  `mapstructure:"content_dir"` // date-partitioned publication tree
	Threshold      float64 `mapstructure:"threshold"`   // minimum vibe score
	TopPerCategory int     `mapstructure:"top_per_category"`
	Title          string  `mapstructure:"title"`
	Preface        string  `mapstructure:"preface"`
	Postscript     string  `mapstructure:"postscript"`
}

// ArchiveConfig controls the publications index and retention policy.
type ArchiveConfig struct {
	HubDir           string `mapstructure:"hub_dir"`
	LookbackDays     int    `mapstructure:"lookback_days"`
	RetentionDays    int    `mapstructure:"retention_days"`
	ArchiveThreshold int    `mapstructure:"archive_threshold"`
}

// OpenAIConfig enables optional AI item summaries when an API key is set.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Config is the top-level configuration structure.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Feeds      FeedsConfig      `mapstructure:"feeds"`
	Newsletter NewsletterConfig `mapstructure:"newsletter"`
	Archive    ArchiveConfig    `mapstructure:"archive"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Feeds.Timeout == "" {
		c.Feeds.Timeout = "30s"
	}
	if c.Feeds.RequestDelay == "" {
		c.Feeds.RequestDelay = "1s"
	}
	if c.Feeds.FetchInterval == "" {
		c.Feeds.FetchInterval = "1h"
	}
	if c.Feeds.UserAgent == "" {
		c.Feeds.UserAgent = "CurationsLA/1.0 (Newsletter Aggregator; +https://la.curations.cc)"
	}
	if c.Feeds.ItemsPerFeed == 0 {
		c.Feeds.ItemsPerFeed = 10
	}
	if c.Newsletter.OutputDir == "" {
		c.Newsletter.OutputDir = "./output"
	}
	if c.Newsletter.ContentDir == "" {
		c.Newsletter.ContentDir = "./content"
	}
	if c.Newsletter.Threshold == 0 {
		c.Newsletter.Threshold = 0.3
	}
	if c.Newsletter.TopPerCategory == 0 {
		c.Newsletter.TopPerCategory = 8
	}
	if c.Archive.HubDir == "" {
		c.Archive.HubDir = "./archive_hub"
	}
	if c.Archive.LookbackDays == 0 {
		c.Archive.LookbackDays = 7
	}
	if c.Archive.RetentionDays == 0 {
		c.Archive.RetentionDays = 7
	}
	if c.Archive.ArchiveThreshold == 0 {
		c.Archive.ArchiveThreshold = 30
	}
}
