package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const listingPage = `<!DOCTYPE html>
<html><body>
<article class="post">
  <h2 class="headline">New Mural Unveiled in Highland Park</h2>
  <a href="/news/mural">Read more</a>
  <p class="excerpt">Local artists finish a block-long mural celebrating the neighborhood.</p>
</article>
<article class="post">
  <h3>Brewery Expansion Announced</h3>
  <a href="https://other.example.com/brewery">Read more</a>
  <p>A beloved brewery doubles its taproom.</p>
</article>
<article class="post">
  <div>no heading or link here</div>
</article>
</body></html>`

func TestScrape(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	s := NewScraper(5*time.Second, "test-agent")
	items, err := s.Scrape(context.Background(), Site{Name: "LAist", PageURL: srv.URL + "/news"}, "community", 10)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Title != "New Mural Unveiled in Highland Park" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Link != srv.URL+"/news/mural" {
		t.Errorf("relative link not resolved: %q", first.Link)
	}
	if first.Source != "LAist" || first.Category != "community" {
		t.Errorf("Source/Category = %q/%q", first.Source, first.Category)
	}
	if items[1].Link != "https://other.example.com/brewery" {
		t.Errorf("absolute link altered: %q", items[1].Link)
	}
}

func TestScrapeRespectsLimit(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	s := NewScraper(5*time.Second, "test-agent")
	items, err := s.Scrape(context.Background(), Site{Name: "LAist", PageURL: srv.URL}, "community", 1)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items, want 1", len(items))
	}
}

func TestScrapeErrorStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewScraper(5*time.Second, "test-agent")
	if _, err := s.Scrape(context.Background(), Site{Name: "x", PageURL: srv.URL}, "community", 5); err == nil {
		t.Errorf("expected error for non-200 page")
	}
}
