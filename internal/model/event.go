package model

import (
	"encoding/json"
	"fmt"
)

// Credibility levels assigned to events.
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
)

// Event is one normalized OSINT record as persisted in the dataset and rendered by the dashboard.
type Event struct {
	ID               int64   `json:"id"`
	TweetID          string  `json:"_tweetId,omitempty"` // import-time dedup key, cleared before persisting
	Headline         string  `json:"headline"`
	SourceName       string  `json:"sourceName"`
	SourceHandle     string  `json:"sourceHandle"`
	SourceAvatar     string  `json:"sourceAvatar"`
	IsVerified       bool    `json:"isVerified"`
	Text             string  `json:"text"`
	Timestamp        string  `json:"timestamp"`
	VerifiedCount    int     `json:"verifiedCount"`
	CrowdCount       int     `json:"crowdCount"`
	SourceLink       string  `json:"sourceLink"`
	CredibilityScore float64 `json:"credibilityScore"`
	CredibilityLevel string  `json:"credibilityLevel"`
	GPTExplanation   string  `json:"gptExplanation"`
	Region           string  `json:"region"`
	Category         string  `json:"category"`

	// Raw holds the stored bytes of a record loaded from the dataset. Stores write
	// it back instead of the fields above, so existing records keep unknown keys
	// and their original values.
	Raw json.RawMessage `json:"-"`
}

// ImportSummary reports the outcome of one import run.
type ImportSummary struct {
	Imported int // new records written
	Relevant int // rows that passed the relevance filter
	Total    int // records in the dataset after the merge
}

// Line renders the operator-facing summary for the dataset named file.
func (s ImportSummary) Line(file string) string {
	return fmt.Sprintf("Imported %d items (from %d relevant), %s now has %d items.", s.Imported, s.Relevant, file, s.Total)
}
