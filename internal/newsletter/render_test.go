package newsletter

import (
	"strings"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	t.Parallel()
	out, err := Render(Data{
		Title:    "CurationsLA Good Vibes — Friday",
		Slug:     "good-vibes-20260828",
		Datetime: "2026-08-28 06:00",
		Preface:  "Happy Friday, Los Angeles!",
		Sections: []Section{
			{
				Name: "EATS",
				Icon: Icon("eats"),
				Items: []Item{
					{
						Title:        "New Bakery Opens",
						URL:          "https://example.com/bakery",
						Description:  "Fresh sourdough this weekend.",
						Source:       "LAist",
						Neighborhood: "Echo Park",
						VibeScore:    0.8,
					},
				},
			},
			{Name: "SPORTS", Icon: Icon("sports")},
		},
		Postscript: "See you tomorrow!",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		`title: "CurationsLA Good Vibes — Friday"`,
		"slug: good-vibes-20260828",
		"Happy Friday, Los Angeles!",
		"#### 🍟 **EATS**",
		"**[New Bakery Opens](https://example.com/bakery)**",
		"📍 Echo Park — Fresh sourdough this weekend.",
		"*via LAist*",
		"*No SPORTS updates today. Check back tomorrow!*",
		"See you tomorrow!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered newsletter missing %q\n---\n%s", want, out)
		}
	}
}

func TestIconFallback(t *testing.T) {
	t.Parallel()
	if Icon("eats") != "🍟" {
		t.Errorf("Icon(eats) = %q", Icon("eats"))
	}
	if Icon("mystery") != "✨" {
		t.Errorf("Icon(mystery) = %q", Icon("mystery"))
	}
}

func TestExpandVars(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
	got := ExpandVars("Good Vibes for {.DayName}, {.CurrentDate}", now)
	want := "Good Vibes for Friday, 2026-08-28"
	if got != want {
		t.Errorf("ExpandVars = %q, want %q", got, want)
	}
	if ExpandVars("", now) != "" {
		t.Errorf("ExpandVars should pass empty strings through")
	}
}
