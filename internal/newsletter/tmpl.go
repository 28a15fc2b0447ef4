package newsletter

import (
	"bytes"
	_ "embed"
	"text/template"
)

// Item is one rendered content entry.
type Item struct {
	Title        string
	URL          string
	Description  string
	Source       string
	Neighborhood string
	VibeScore    float64
}

// Section is one newsletter category with its icon and items.
type Section struct {
	Name  string
	Icon  string
	Items []Item
}

// Data drives the newsletter template.
type Data struct {
	Title      string
	Slug       string
	Datetime   string
	Preface    string
	Postscript string
	Sections   []Section
}

//go:embed newsletter.tmpl
var newsletterTpl string

var compiled = template.Must(template.New("newsletter").Parse(newsletterTpl))

// Render produces the newsletter markdown.
func Render(d Data) (string, error) {
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// sectionIcons maps categories to their newsletter icons.
var sectionIcons = map[string]string{
	"eats":          "🍟",
	"events":        "📆",
	"community":     "🌴",
	"development":   "🏡",
	"business":      "💼",
	"entertainment": "🎬",
	"sports":        "🏈",
	"goodies":       "🤙",
}

// Icon returns the icon for a category, with a sparkle fallback.
func Icon(category string) string {
	if ic, ok := sectionIcons[category]; ok {
		return ic
	}
	return "✨"
}
