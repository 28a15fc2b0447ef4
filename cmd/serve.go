package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"curationsla/internal/redisclient"
	"curationsla/internal/storage"
	"curationsla/internal/vibes"
	"curationsla/worker"

	"github.com/spf13/cobra"
)

// serveCmd runs the feed collectors on their configured interval until
// interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the periodic feed collectors",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		client, err := feedClientFromConfig(cfg)
		if err != nil {
			return err
		}
		scraper, err := scraperFromConfig(cfg)
		if err != nil {
			return err
		}
		interval, err := time.ParseDuration(cfg.Feeds.FetchInterval)
		if err != nil {
			return fmt.Errorf("invalid feeds.fetch_interval: %w", err)
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		collector := &worker.FeedCollector{
			Client:     client,
			Scraper:    scraper,
			Store:      store,
			Scorer:     vibes.NewDefaultScorer(),
			Categories: categoriesFromConfig(cfg),
			Threshold:  cfg.Newsletter.Threshold,
			Interval:   interval,
			ScrapeMax:  cfg.Feeds.ItemsPerFeed,
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig
			slog.Info("serve: shutting down")
			cancel()
		}()

		slog.Info("serve: starting collectors", "categories", len(collector.Categories), "interval", interval)
		return worker.NewManager(collector).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
