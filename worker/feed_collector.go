package worker

import (
	"context"
	"log/slog"
	"time"

	"curationsla/internal/contenthash"
	"curationsla/internal/feeds"
	"curationsla/internal/model"
	"curationsla/internal/scrape"
	"curationsla/internal/storage"
	"curationsla/internal/vibes"
)

// Category pairs a newsletter section with its feed sources and any
// scrape-fallback pages.
type Category struct {
	Name    string
	Sources []feeds.Source
	Sites   []scrape.Site
}

// FeedCollector polls RSS sources (and scrape-fallback pages) on an interval,
// filters items for good vibes, and stores survivors into the period content
// sets.
type FeedCollector struct {
	Client     *feeds.Client
	Scraper    *scrape.Scraper
	Store      *storage.RedisStore
	Scorer     *vibes.Scorer
	Categories []Category
	Threshold  float64
	Interval   time.Duration
	ScrapeMax  int // max items per scraped page
}

func (w *FeedCollector) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = time.Hour
	}

	// initial run
	w.RunOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single collection pass over every category and returns
// how many items were stored.
func (w *FeedCollector) RunOnce(ctx context.Context) int {
	threshold := w.Threshold
	if threshold == 0 {
		threshold = vibes.DefaultThreshold
	}
	period := time.Now().UTC().Format("2006-01-02")

	total := 0
	for _, cat := range w.Categories {
		items := w.Client.FetchCategory(ctx, cat.Name, cat.Sources)
		items = append(items, w.scrapeSites(ctx, cat)...)
		scored := vibes.Filter(w.Scorer, items, threshold)
		stored := 0
		for _, sc := range scored {
			hash := contenthash.Sum(sc.Item.Title + " " + sc.Item.Description)
			if skipped, err := w.Store.WasSkipped(ctx, hash); err == nil && skipped {
				continue
			}
			if err := w.Store.AddItem(ctx, period, sc); err != nil {
				slog.Error("feed-collector: store error", "category", cat.Name, "link", sc.Item.Link, "error", err)
				continue
			}
			stored++
		}
		total += stored
		slog.Info("feed-collector: completed for category",
			"category", cat.Name, "fetched", len(items), "good_vibes", len(scored), "stored", stored, "period", period)
	}
	return total
}

// scrapeSites pulls items from listing pages configured as feed fallbacks.
// Like feed fetches, a failing page degrades to zero items.
func (w *FeedCollector) scrapeSites(ctx context.Context, cat Category) []model.ContentItem {
	if w.Scraper == nil || len(cat.Sites) == 0 {
		return nil
	}
	limit := w.ScrapeMax
	if limit <= 0 {
		limit = 10
	}
	var items []model.ContentItem
	for _, site := range cat.Sites {
		got, err := w.Scraper.Scrape(ctx, site, cat.Name, limit)
		if err != nil {
			slog.Warn("feed-collector: scrape failed", "category", cat.Name, "site", site.Name, "err", err)
			continue
		}
		slog.Info("feed-collector: scraped", "category", cat.Name, "site", site.Name, "items", len(got))
		items = append(items, got...)
	}
	return items
}
