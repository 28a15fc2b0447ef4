package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"curationsla/internal/ai"
	"curationsla/internal/archive"
	"curationsla/internal/clierr"
	"curationsla/internal/contenthash"
	"curationsla/internal/model"
	"curationsla/internal/newsletter"
	"curationsla/internal/redisclient"
	"curationsla/internal/storage"
	"curationsla/internal/vibes"

	"github.com/spf13/cobra"
)

var (
	genForce    bool
	genInputDir string
)

// generateCmd builds today's newsletter from the collected items, drops
// content already published inside the lookback window, writes the
// publication directory, and records it in the archive index.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's Good Vibes newsletter",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		out := cmd.OutOrStdout()

		now := time.Now().UTC()
		period := now.Format("2006-01-02")
		ctx := context.Background()

		// Offline mode reads raw items from JSON files instead of Redis.
		var offline map[string][]model.ScoredItem
		var store *storage.RedisStore
		if genInputDir != "" {
			var err error
			offline, err = loadOfflineItems(genInputDir, cfg.Newsletter.Threshold)
			if err != nil {
				return err
			}
		} else {
			rdb := redisclient.New(cfg.Redis)
			defer rdb.Close()
			store = storage.NewRedisStore(rdb)

			if !genForce {
				published, err := store.IsPublished(ctx, period)
				if err != nil {
					return err
				}
				if published {
					fmt.Fprintf(out, "Newsletter for %s already generated; use --force to regenerate.\n", period)
					return nil
				}
			}
		}

		idx, err := archive.Open(indexPath(cfg))
		if err != nil {
			return err
		}
		defer idx.Close()

		since := now.AddDate(0, 0, -cfg.Archive.LookbackDays)
		recent, err := idx.RecentHashes(ctx, since)
		if err != nil {
			return err
		}

		var summarizer ai.Summarizer
		if cfg.OpenAI.APIKey != "" {
			summarizer = ai.NewOpenAI(ai.Config{
				APIKey:  cfg.OpenAI.APIKey,
				Model:   cfg.OpenAI.Model,
				BaseURL: cfg.OpenAI.BaseURL,
			})
		}

		var sections []newsletter.Section
		var skippedHashes, publishedHashes []string
		totalItems, dupSkipped := 0, 0
		categoryCounts := map[string]int{}
		for _, cat := range categoriesFromConfig(cfg) {
			var scored []model.ScoredItem
			if offline != nil {
				scored = offline[cat.Name]
			} else {
				// over-fetch so duplicate drops don't leave the section short
				scored, err = store.TopItems(ctx, cat.Name, period, cfg.Newsletter.TopPerCategory*2)
				if err != nil {
					return err
				}
			}

			section := newsletter.Section{Name: strings.ToUpper(cat.Name), Icon: newsletter.Icon(cat.Name)}
			for _, sc := range scored {
				if len(section.Items) >= cfg.Newsletter.TopPerCategory {
					break
				}
				hash := contenthash.Sum(sc.Item.Title + " " + sc.Item.Description)
				if origin, ok := recent[hash]; ok {
					dupSkipped++
					skippedHashes = append(skippedHashes, hash)
					slog.Info("generate: skipping duplicate",
						"title", sc.Item.Title, "previous", origin.PublicationPath)
					continue
				}
				desc := truncate(sc.Item.Description, 150)
				if summarizer != nil {
					if d, err := summarizer.SummarizeItem(ctx, sc.Item.Title, sc.Item.Description); err == nil && d != "" {
						desc = d
					}
				}
				publishedHashes = append(publishedHashes, hash)
				section.Items = append(section.Items, newsletter.Item{
					Title:        truncate(sc.Item.Title, 80),
					URL:          sc.Item.Link,
					Description:  desc,
					Source:       sc.Item.Source,
					Neighborhood: sc.Neighborhood,
					VibeScore:    sc.VibeScore,
				})
			}
			categoryCounts[cat.Name] = len(section.Items)
			totalItems += len(section.Items)
			sections = append(sections, section)
		}

		title := strings.TrimSpace(newsletter.ExpandVars(cfg.Newsletter.Title, now))
		if title == "" {
			title = fmt.Sprintf("CurationsLA Good Vibes — %s", now.Format("Monday, January 2, 2006"))
		}
		slug := "good-vibes-" + now.Format("20060102")
		content, err := newsletter.Render(newsletter.Data{
			Title:      title,
			Slug:       slug,
			Datetime:   now.Format("2006-01-02 15:04"),
			Preface:    newsletter.ExpandVars(cfg.Newsletter.Preface, now),
			Postscript: newsletter.ExpandVars(cfg.Newsletter.Postscript, now),
			Sections:   sections,
		})
		if err != nil {
			return err
		}

		leaf := publicationDir(cfg.Newsletter.ContentDir, now)
		if err := os.MkdirAll(leaf, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %v", clierr.ErrStore, leaf, err)
		}
		mdPath := filepath.Join(leaf, fmt.Sprintf("newsletter-%s.md", strings.ToLower(now.Format("Monday"))))
		if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("%w: write %s: %v", clierr.ErrStore, mdPath, err)
		}
		if err := writeStats(leaf, period, totalItems, dupSkipped, categoryCounts); err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Generated: %s (%d items, %d duplicates skipped)\n", mdPath, totalItems, dupSkipped)

		// register the raw feed-text hashes alongside the extracted block
		// hashes, so tomorrow's lookup matches items in either form
		count, err := idx.ArchivePublication(ctx, now, leaf, relTo(cfg.Newsletter.ContentDir, leaf), publishedHashes...)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "📁 Archived publication %s (%d content blocks)\n", period, count)

		if store != nil {
			for _, hash := range skippedHashes {
				if err := store.MarkSkipped(ctx, hash); err != nil {
					slog.Warn("generate: mark skipped failed", "hash", hash, "err", err)
				}
			}
			if err := store.MarkPublished(ctx, period); err != nil {
				slog.Warn("generate: mark published failed", "period", period, "err", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&genForce, "force", "f", false, "regenerate even if already published today")
	generateCmd.Flags().StringVar(&genInputDir, "input-dir", "", "read content items from JSON files in this directory instead of Redis")
}

// loadOfflineItems reads every *.json file in dir as a []model.ContentItem,
// scores and filters the lot, and groups survivors by category.
func loadOfflineItems(dir string, threshold float64) (map[string][]model.ScoredItem, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: glob %s: %v", clierr.ErrStore, dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no item files in %s", clierr.ErrNotFound, dir)
	}

	var items []model.ContentItem
	for _, path := range matches {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", clierr.ErrStore, path, err)
		}
		var batch []model.ContentItem
		if err := json.Unmarshal(b, &batch); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", clierr.ErrParse, path, err)
		}
		items = append(items, batch...)
	}

	byCategory := map[string][]model.ScoredItem{}
	for _, sc := range vibes.Filter(vibes.NewDefaultScorer(), items, threshold) {
		byCategory[sc.Item.Category] = append(byCategory[sc.Item.Category], sc)
	}
	return byCategory, nil
}

// publicationDir lays out the date-partitioned content tree:
// content/<year>/<month>/week-NN/<date>.
func publicationDir(contentDir string, now time.Time) string {
	week := fmt.Sprintf("week-%02d", (now.Day()-1)/7+1)
	return filepath.Join(contentDir, now.Format("2006"), now.Format("01"), week, now.Format("2006-01-02"))
}

func relTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

type stats struct {
	Date              string         `json:"date"`
	TotalItems        int            `json:"total_items"`
	DuplicatesSkipped int            `json:"duplicates_skipped"`
	Categories        map[string]int `json:"categories"`
}

func writeStats(leaf, period string, total, dups int, categories map[string]int) error {
	b, err := json.MarshalIndent(stats{
		Date:              period,
		TotalItems:        total,
		DuplicatesSkipped: dups,
		Categories:        categories,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal stats: %v", clierr.ErrStore, err)
	}
	path := filepath.Join(leaf, "stats.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", clierr.ErrStore, path, err)
	}
	return nil
}
