package ingest

import (
	"math"
	"regexp"
	"strings"

	"osint-desk/internal/model"
)

// relevancePattern gates rows before transformation. It is deliberately broader than
// the category rules (kashmir, ladakh, attack...) and the two lists are kept apart.
var relevancePattern = regexp.MustCompile(`(army|navy|air force|iaf|drdo|isro|border|security|surveillance|radar|missile|exercise|attack|encounter|awacs|kashmir|ladakh|coast|patrol|intel|intelligence)`)

type categoryRule struct {
	category string
	re       *regexp.Regexp
}

// categoryRules are evaluated in order; the first match wins.
var categoryRules = []categoryRule{
	{"Defense", regexp.MustCompile(`(navy|air force|army|missile|radar|sonar|exercise|patrol|drdo|iaf|bsf|coast guard)`)},
	{"Intelligence", regexp.MustCompile(`(cyber|hack|malware|framework|command|intel|intelligence|fusion|signal)`)},
	{"Security", regexp.MustCompile(`(border|security|awacs|surveillance|threat)`)},
	{"Infrastructure", regexp.MustCompile(`(tunnel|road|infrastructure|bridge)`)},
	{"Technology", regexp.MustCompile(`(satellite|space|isro|technology|tracking)`)},
}

// DefaultCategory is used when no category rule matches.
const DefaultCategory = "Security"

// IsRelevant reports whether text mentions any OSINT keyword, case-insensitively.
func IsRelevant(text string) bool {
	return relevancePattern.MatchString(strings.ToLower(text))
}

// Category classifies text with the ordered category rules.
func Category(text string) string {
	t := strings.ToLower(text)
	for _, r := range categoryRules {
		if r.re.MatchString(t) {
			return r.category
		}
	}
	return DefaultCategory
}

// Credibility scores engagement as 0.55 + 0.003/retweet + 0.0008/like, clamped to
// [0.30, 0.95] and rounded to two decimals. The level is bucketed from the rounded score.
func Credibility(retweets, likes float64) (float64, string) {
	score := retweets*0.003 + likes*0.0008 + 0.55
	score = math.Max(0.3, math.Min(0.95, score))
	score = math.Round(score*100) / 100
	return score, Level(score)
}

// Level buckets a credibility score.
func Level(score float64) string {
	switch {
	case score >= 0.8:
		return model.LevelHigh
	case score >= 0.6:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

// Headline collapses whitespace and truncates to 120 characters, ellipsis included.
func Headline(text string) string {
	clean := strings.Join(strings.Fields(text), " ")
	r := []rune(clean)
	if len(r) <= 120 {
		return clean
	}
	return string(r[:117]) + "..."
}
