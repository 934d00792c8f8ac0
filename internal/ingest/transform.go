package ingest

import (
	"math"
	"strings"
	"time"

	"osint-desk/internal/model"

	"github.com/spf13/cast"
)

const (
	defaultRegion = "National"
	unknownAuthor = "Unknown"
	isoMillis     = "2006-01-02T15:04:05.000Z"
)

// Transformer maps resolved CSV rows into events.
type Transformer struct {
	Region string           // region tag for every record; "National" when empty
	Now    func() time.Time // clock for rows without createdAt; time.Now when nil
}

// Transform builds an event from a row. The returned event has no id yet and still
// carries its TweetID for deduplication.
func (t Transformer) Transform(r Row) model.Event {
	region := t.Region
	if region == "" {
		region = defaultRegion
	}
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	author := r.Author
	if author == "" {
		author = r.Handle
	}
	if author == "" {
		author = unknownAuthor
	}

	retweets := number(r.Retweets)
	likes := number(r.Likes)
	score, level := Credibility(retweets, likes)

	return model.Event{
		TweetID:          r.TweetID,
		Headline:         Headline(r.Text),
		SourceName:       author,
		SourceHandle:     r.Handle,
		IsVerified:       false,
		Text:             r.Text,
		Timestamp:        NormalizeTimestamp(r.CreatedAt, now()),
		VerifiedCount:    count(retweets),
		CrowdCount:       count(number(r.Replies)) + count(number(r.Quotes)),
		SourceLink:       r.URL,
		CredibilityScore: score,
		CredibilityLevel: level,
		Region:           region,
		Category:         Category(r.Text),
	}
}

// NormalizeTimestamp turns "2025-11-05 16:49:55" into "2025-11-05T16:49:55Z".
// Only the first space is replaced. An empty value becomes now in UTC.
func NormalizeTimestamp(s string, now time.Time) string {
	if s == "" {
		return now.UTC().Format(isoMillis)
	}
	t := strings.Replace(s, " ", "T", 1)
	if strings.HasSuffix(t, "Z") {
		return t
	}
	return t + "Z"
}

// number coerces an engagement counter; anything non-numeric counts as zero.
func number(s string) float64 {
	v, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func count(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(v)
}
