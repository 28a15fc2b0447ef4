package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>LA Eats</title>
    <item>
      <title>New Bakery Opens in Echo Park</title>
      <link>https://example.com/bakery</link>
      <description>&lt;p&gt;A neighborhood bakery debuts this weekend.&lt;/p&gt;</description>
      <pubDate>Fri, 28 Aug 2026 06:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Farmers Market Expands</title>
      <link>https://example.com/market</link>
      <description>Twenty new vendors join.</description>
      <pubDate>Thu, 27 Aug 2026 06:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

const atomBody = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>LA Events</title>
  <entry>
    <title>Free Concert Series</title>
    <link rel="alternate" href="https://example.com/concert"/>
    <summary>Outdoor concerts at Grand Park.</summary>
    <updated>2026-08-28T06:00:00Z</updated>
  </entry>
</feed>`

func TestFetchRSS(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssBody))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0, "test-agent", 10)
	items, err := c.Fetch(context.Background(), "eats", Source{Name: "LA Eats", URL: srv.URL})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	first := items[0]
	if first.Title != "New Bakery Opens in Echo Park" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Link != "https://example.com/bakery" {
		t.Errorf("Link = %q", first.Link)
	}
	if first.Description != "A neighborhood bakery debuts this weekend." {
		t.Errorf("Description = %q (HTML should be stripped)", first.Description)
	}
	if first.Category != "eats" || first.Source != "LA Eats" {
		t.Errorf("Category/Source = %q/%q", first.Category, first.Source)
	}
}

func TestFetchAtom(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(atomBody))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0, "test-agent", 10)
	items, err := c.Fetch(context.Background(), "events", Source{Name: "LA Events", URL: srv.URL})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Link != "https://example.com/concert" {
		t.Errorf("Link = %q", items[0].Link)
	}
}

func TestFetchLimitsPerFeed(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssBody))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0, "test-agent", 1)
	items, err := c.Fetch(context.Background(), "eats", Source{Name: "LA Eats", URL: srv.URL})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items, want 1 (per-feed cap)", len(items))
	}
}

func TestFetchCategoryDegradesOnFailure(t *testing.T) {
	t.Parallel()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssBody))
	}))
	defer good.Close()

	c := NewClient(5*time.Second, 0, "test-agent", 10)
	items := c.FetchCategory(context.Background(), "eats", []Source{
		{Name: "broken", URL: bad.URL},
		{Name: "working", URL: good.URL},
	})
	// the broken source contributes zero items; the working one still lands
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for _, it := range items {
		if it.Source != "working" {
			t.Errorf("item attributed to %q", it.Source)
		}
	}
}

func TestFetchEmptyFeedIsNotAnError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>Quiet Day</title></channel></rss>`))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0, "test-agent", 10)
	items, err := c.Fetch(context.Background(), "eats", Source{Name: "quiet", URL: srv.URL})
	if err != nil {
		t.Fatalf("well-formed empty feed treated as malformed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items from an empty channel", len(items))
	}
}

func TestFetchRejectsGarbage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not xml at all"))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0, "test-agent", 10)
	if _, err := c.Fetch(context.Background(), "eats", Source{Name: "x", URL: srv.URL}); err == nil {
		t.Errorf("expected error for non-feed body")
	}
}
