package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"curationsla/internal/config"
	"curationsla/internal/feeds"
	"curationsla/internal/scrape"
	"curationsla/worker"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	appCfg  config.Config
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "curationsla",
	Short: "CurationsLA newsletter pipeline",
	Long:  "Aggregates LA feeds, filters for good vibes, and manages the publications archive.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func initConfig() {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/curationsla")
		v.AddConfigPath("configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing config: %v\n", err)
		os.Exit(1)
	}

	appCfg.FillDefaults()
	setupLogging(appCfg.App.LogLevel)
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}

// indexPath returns the location of the publications index database.
func indexPath(cfg config.Config) string {
	return filepath.Join(cfg.Archive.HubDir, "publications.db")
}

// categoriesFromConfig converts feed config into collector categories.
func categoriesFromConfig(cfg config.Config) []worker.Category {
	cats := make([]worker.Category, 0, len(cfg.Feeds.Categories))
	for _, c := range cfg.Feeds.Categories {
		var sources []feeds.Source
		for _, f := range c.Feeds {
			if f.Active != nil && !*f.Active {
				continue
			}
			sources = append(sources, feeds.Source{Name: f.Name, URL: f.URL})
		}
		var sites []scrape.Site
		for _, p := range c.Pages {
			sites = append(sites, scrape.Site{Name: p.Name, PageURL: p.URL})
		}
		cats = append(cats, worker.Category{Name: c.Name, Sources: sources, Sites: sites})
	}
	return cats
}

// feedClientFromConfig builds the shared feed client.
func feedClientFromConfig(cfg config.Config) (*feeds.Client, error) {
	timeout, err := time.ParseDuration(cfg.Feeds.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid feeds.timeout: %w", err)
	}
	delay, err := time.ParseDuration(cfg.Feeds.RequestDelay)
	if err != nil {
		return nil, fmt.Errorf("invalid feeds.request_delay: %w", err)
	}
	return feeds.NewClient(timeout, delay, cfg.Feeds.UserAgent, cfg.Feeds.ItemsPerFeed), nil
}

// scraperFromConfig builds the listing-page scraper for feedless sources.
func scraperFromConfig(cfg config.Config) (*scrape.Scraper, error) {
	timeout, err := time.ParseDuration(cfg.Feeds.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid feeds.timeout: %w", err)
	}
	return scrape.NewScraper(timeout, cfg.Feeds.UserAgent), nil
}
