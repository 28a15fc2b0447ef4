package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"curationsla/internal/contenthash"
	"curationsla/internal/redisclient"
	"curationsla/internal/storage"
	"curationsla/internal/vibes"

	"github.com/spf13/cobra"
)

// fetchCmd runs one collection pass: fetch feeds, filter, store to Redis.
var fetchCmd = &cobra.Command{
	Use:   "fetch [category...]",
	Short: "Fetch configured feeds once and store good-vibes items",
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

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)
		scorer := vibes.NewDefaultScorer()

		only := map[string]bool{}
		for _, a := range args {
			only[a] = true
		}

		period := time.Now().UTC().Format("2006-01-02")
		ctx := context.Background()
		for _, cat := range categoriesFromConfig(cfg) {
			if len(only) > 0 && !only[cat.Name] {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🌴 Processing %s...\n", cat.Name)
			items := client.FetchCategory(ctx, cat.Name, cat.Sources)
			for _, site := range cat.Sites {
				got, serr := scraper.Scrape(ctx, site, cat.Name, cfg.Feeds.ItemsPerFeed)
				if serr != nil {
					slog.Warn("fetch: scrape failed", "site", site.Name, "err", serr)
					continue
				}
				items = append(items, got...)
			}
			scored := vibes.Filter(scorer, items, cfg.Newsletter.Threshold)
			stored := 0
			for _, sc := range scored {
				hash := contenthash.Sum(sc.Item.Title + " " + sc.Item.Description)
				if skipped, err := store.WasSkipped(ctx, hash); err == nil && skipped {
					continue
				}
				if err := store.AddItem(ctx, period, sc); err != nil {
					slog.Error("fetch: store error", "category", cat.Name, "link", sc.Item.Link, "err", err)
					continue
				}
				stored++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %d total → %d good vibes (%d stored)\n",
				cat.Name, len(items), len(scored), stored)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
