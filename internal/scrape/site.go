// Package scrape extracts articles directly from LA news site pages, used as
// a fallback when a source's RSS feed is broken or missing.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"curationsla/internal/model"
)

// Site describes one scrapeable listing page.
type Site struct {
	Name    string
	PageURL string
}

// Scraper pulls article teasers out of listing pages.
type Scraper struct {
	client    *http.Client
	userAgent string
}

// NewScraper wires an HTTP client with the given timeout.
func NewScraper(timeout time.Duration, userAgent string) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Scrape fetches a listing page and extracts up to limit article teasers.
// It looks for <article> containers (falling back to heading links) and reads
// the first heading, link, and paragraph of each.
func (s *Scraper) Scrape(ctx context.Context, site Site, category string, limit int) ([]model.ContentItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, site.PageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	base, err := url.Parse(site.PageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	var items []model.ContentItem
	doc.Find("article").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if limit > 0 && len(items) >= limit {
			return false
		}
		title := strings.TrimSpace(sel.Find("h1, h2, h3").First().Text())
		href, _ := sel.Find("a[href]").First().Attr("href")
		if title == "" || href == "" {
			return true
		}
		link := href
		if u, err := url.Parse(href); err == nil {
			link = base.ResolveReference(u).String()
		}
		items = append(items, model.ContentItem{
			Title:       title,
			Description: strings.TrimSpace(sel.Find("p").First().Text()),
			Link:        link,
			Source:      site.Name,
			Category:    category,
			PublishedAt: time.Now().UTC().Format(time.RFC3339),
		})
		return true
	})
	return items, nil
}
