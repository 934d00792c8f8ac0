package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Column names of the TwExtract export.
const (
	ColID       = "id"
	ColText     = "tweetText"
	ColURL      = "tweetURL"
	ColAuthor   = "tweetAuthor"
	ColHandle   = "handle"
	ColRetweets = "retweetCount"
	ColReplies  = "replyCount"
	ColQuotes   = "quoteCount"
	ColLikes    = "likeCount"
	ColCreated  = "createdAt"
)

var requiredColumns = []string{ColID, ColText, ColURL}

// Header maps column names to field positions. It is built once per file.
type Header struct {
	width int
	index map[string]int
}

// Row is a data row resolved against a Header. Absent optional columns are empty strings.
type Row struct {
	TweetID   string
	Text      string
	URL       string
	Author    string
	Handle    string
	Retweets  string
	Replies   string
	Quotes    string
	Likes     string
	CreatedAt string
}

// NewHeader validates the header row. The first occurrence of a duplicated name wins.
func NewHeader(cols []string) (Header, error) {
	h := Header{width: len(cols), index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		if _, ok := h.index[c]; !ok {
			h.index[c] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := h.index[name]; !ok {
			return Header{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return h, nil
}

// Width is the number of header columns.
func (h Header) Width() int { return h.width }

// Fits reports whether a data row has exactly as many fields as the header.
func (h Header) Fits(fields []string) bool { return len(fields) == h.width }

func (h Header) get(fields []string, name string) string {
	i, ok := h.index[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// Row resolves fields by column name.
func (h Header) Row(fields []string) Row {
	return Row{
		TweetID:   h.get(fields, ColID),
		Text:      h.get(fields, ColText),
		URL:       h.get(fields, ColURL),
		Author:    h.get(fields, ColAuthor),
		Handle:    h.get(fields, ColHandle),
		Retweets:  h.get(fields, ColRetweets),
		Replies:   h.get(fields, ColReplies),
		Quotes:    h.get(fields, ColQuotes),
		Likes:     h.get(fields, ColLikes),
		CreatedAt: h.get(fields, ColCreated),
	}
}
