package briefing

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"osint-desk/internal/model"

	"gopkg.in/yaml.v3"
)

// Item is one event line in a brief.
type Item struct {
	ID          int64
	Headline    string
	URL         string
	Source      string
	Category    string
	Level       string
	Score       float64
	Timestamp   string
	Explanation string
}

// Data is everything a brief renders.
type Data struct {
	Title    string
	Slug     string
	Datetime string
	Preface  string
	Summary  string
	Items    []Item
}

type frontmatter struct {
	Title    string `yaml:"title"`
	Slug     string `yaml:"slug"`
	Datetime string `yaml:"datetime"`
	Count    int    `yaml:"count"`
	Summary  string `yaml:"summary,omitempty"`
}

//go:embed brief.tmpl
var briefTpl string

var compiled = template.Must(template.New("brief").Funcs(template.FuncMap{
	"score": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"quote": quote,
}).Parse(briefTpl))

// quote renders s as a markdown blockquote, one "> " prefix per line.
func quote(s string) string {
	lines := strings.Split(strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n")), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("> "+l, " ")
	}
	return strings.Join(lines, "\n")
}

// Render produces markdown with a YAML frontmatter block.
func Render(d Data) (string, error) {
	fm, err := yaml.Marshal(frontmatter{
		Title:    d.Title,
		Slug:     d.Slug,
		Datetime: d.Datetime,
		Count:    len(d.Items),
		Summary:  d.Summary,
	})
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Select picks up to n events, highest credibility first, newer ids first on ties.
// A non-empty level keeps only that credibility level.
func Select(events []model.Event, n int, level string) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if level != "" && !strings.EqualFold(ev.CredibilityLevel, level) {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CredibilityScore != out[j].CredibilityScore {
			return out[i].CredibilityScore > out[j].CredibilityScore
		}
		return out[i].ID > out[j].ID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Items converts events into brief items.
func Items(events []model.Event) []Item {
	items := make([]Item, 0, len(events))
	for _, ev := range events {
		src := ev.SourceName
		if ev.SourceHandle != "" && ev.SourceHandle != src {
			src = fmt.Sprintf("%s (%s)", src, ev.SourceHandle)
		}
		items = append(items, Item{
			ID:          ev.ID,
			Headline:    ev.Headline,
			URL:         ev.SourceLink,
			Source:      src,
			Category:    ev.Category,
			Level:       ev.CredibilityLevel,
			Score:       ev.CredibilityScore,
			Timestamp:   ev.Timestamp,
			Explanation: ev.GPTExplanation,
		})
	}
	return items
}
