// Package dashboard models the toolbar filters of the events dashboard as an
// immutable value, independent of how the feed is rendered.
package dashboard

import (
	"strings"

	"osint-desk/internal/model"
)

// Toolbar option values.
const (
	AllSources     = "All sources"
	TrustedOnly    = "Trusted only"
	CrowdOnly      = "Crowd only"
	AllCredibility = "All credibility"
)

var sourceOptions = []string{AllSources, TrustedOnly, CrowdOnly}

var credibilityOptions = []string{AllCredibility, model.LevelHigh, model.LevelMedium, model.LevelLow}

// State is a snapshot of the filter toolbar. The zero value filters nothing.
type State struct {
	Source      string
	Credibility string
	Date        string // YYYY-MM-DD or empty
	Search      string
}

// Default is the toolbar as first shown.
func Default() State {
	return State{Source: AllSources, Credibility: AllCredibility}
}

// ActionKind names a toolbar change.
type ActionKind int

const (
	SetSource ActionKind = iota
	SetCredibility
	SetDate
	SetSearch
	Reset
)

// Action is one toolbar change.
type Action struct {
	Kind  ActionKind
	Value string
}

// Update returns the state after applying a; s is not modified.
func Update(s State, a Action) State {
	switch a.Kind {
	case SetSource:
		s.Source = option(sourceOptions, a.Value, AllSources)
	case SetCredibility:
		s.Credibility = option(credibilityOptions, a.Value, AllCredibility)
	case SetDate:
		s.Date = strings.TrimSpace(a.Value)
	case SetSearch:
		s.Search = a.Value
	case Reset:
		return Default()
	}
	return s
}

// option matches v case-insensitively against opts.
func option(opts []string, v, def string) string {
	v = strings.TrimSpace(v)
	for _, o := range opts {
		if strings.EqualFold(o, v) {
			return o
		}
	}
	return def
}

// Matches reports whether ev passes every active filter.
func (s State) Matches(ev model.Event) bool {
	switch s.Source {
	case TrustedOnly:
		if !ev.IsVerified {
			return false
		}
	case CrowdOnly:
		if ev.IsVerified {
			return false
		}
	}
	if s.Credibility != "" && s.Credibility != AllCredibility && !strings.EqualFold(s.Credibility, ev.CredibilityLevel) {
		return false
	}
	if s.Date != "" && !strings.HasPrefix(ev.Timestamp, s.Date) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(s.Search)); q != "" {
		hay := strings.ToLower(ev.Headline + "\n" + ev.Text + "\n" + ev.SourceName + "\n" + ev.SourceHandle)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

// Apply returns the events that pass s, keeping their order.
func Apply(s State, events []model.Event) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if s.Matches(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// FromValues builds a state from raw toolbar values, as sent by a client.
func FromValues(source, credibility, date, search string) State {
	s := Default()
	if source != "" {
		s = Update(s, Action{Kind: SetSource, Value: source})
	}
	if credibility != "" {
		s = Update(s, Action{Kind: SetCredibility, Value: credibility})
	}
	s = Update(s, Action{Kind: SetDate, Value: date})
	s = Update(s, Action{Kind: SetSearch, Value: search})
	return s
}
