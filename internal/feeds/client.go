// Package feeds fetches and parses RSS/Atom sources for the newsletter.
// Fetch failures never propagate as errors: a failing source degrades to an
// empty result and a logged warning.
package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"curationsla/internal/model"
)

// Source is one feed to poll within a category.
type Source struct {
	Name string
	URL  string
}

// Client fetches feeds with a fixed per-request timeout and a politeness
// delay between consecutive requests.
type Client struct {
	httpClient *http.Client
	userAgent  string
	delay      time.Duration
	perFeed    int
}

// NewClient builds a feed client. perFeed caps how many entries are taken
// from each feed (most recent first, as feeds order them).
func NewClient(timeout, delay time.Duration, userAgent string, perFeed int) *Client {
	if perFeed <= 0 {
		perFeed = 10
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		delay:      delay,
		perFeed:    perFeed,
	}
}

// FetchCategory polls every source in a category sequentially, sleeping the
// politeness delay between requests. Failed sources contribute zero items.
func (c *Client) FetchCategory(ctx context.Context, category string, sources []Source) []model.ContentItem {
	var items []model.ContentItem
	for i, src := range sources {
		if i > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return items
			case <-time.After(c.delay):
			}
		}
		got, err := c.Fetch(ctx, category, src)
		if err != nil {
			slog.Warn("feeds: fetch failed", "category", category, "source", src.Name, "err", err)
			continue
		}
		slog.Info("feeds: fetched", "category", category, "source", src.Name, "items", len(got))
		items = append(items, got...)
	}
	return items
}

// Fetch retrieves one feed and converts its entries to content items.
func (c *Client) Fetch(ctx context.Context, category string, src Source) ([]model.ContentItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	entries, err := parseFeed(body)
	if err != nil {
		return nil, err
	}
	if len(entries) > c.perFeed {
		entries = entries[:c.perFeed]
	}

	items := make([]model.ContentItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, model.ContentItem{
			Title:       strings.TrimSpace(e.title),
			Description: stripHTML(e.description),
			Link:        strings.TrimSpace(e.link),
			Source:      src.Name,
			Category:    category,
			PublishedAt: strings.TrimSpace(e.published),
		})
	}
	return items, nil
}

type entry struct {
	title       string
	link        string
	description string
	published   string
}

// rssFeed and atomFeed mirror the subset of elements the newsletter needs.
type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []struct {
			Title       string `xml:"title"`
			Link        string `xml:"link"`
			Description string `xml:"description"`
			PubDate     string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

type atomFeed struct {
	XMLName xml.Name `xml:"feed"`
	Entries []struct {
		Title string `xml:"title"`
		Links []struct {
			Href string `xml:"href,attr"`
			Rel  string `xml:"rel,attr"`
		} `xml:"link"`
		Summary string `xml:"summary"`
		Content string `xml:"content"`
		Updated string `xml:"updated"`
	} `xml:"entry"`
}

// parseFeed tries RSS then Atom. The XMLName fields make Unmarshal reject a
// mismatched root element, so a feed that parses but has no entries is an
// empty result, not a format error.
func parseFeed(body []byte) ([]entry, error) {
	var rss rssFeed
	if err := xml.Unmarshal(body, &rss); err == nil {
		out := make([]entry, 0, len(rss.Channel.Items))
		for _, it := range rss.Channel.Items {
			out = append(out, entry{title: it.Title, link: it.Link, description: it.Description, published: it.PubDate})
		}
		return out, nil
	}

	var atom atomFeed
	if err := xml.Unmarshal(body, &atom); err == nil {
		out := make([]entry, 0, len(atom.Entries))
		for _, e := range atom.Entries {
			link := ""
			for _, l := range e.Links {
				if l.Rel == "" || l.Rel == "alternate" {
					link = l.Href
					break
				}
			}
			desc := e.Summary
			if desc == "" {
				desc = e.Content
			}
			out = append(out, entry{title: e.Title, link: link, description: desc, published: e.Updated})
		}
		return out, nil
	}

	return nil, fmt.Errorf("unrecognized feed format")
}

// stripHTML drops tags from feed descriptions, which frequently embed markup.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
