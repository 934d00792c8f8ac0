package briefing

import (
	"strconv"
	"strings"
	"time"
)

// ExpandVars substitutes placeholders in config-provided text (title, preface).
//
// Supported variables:
// - {.CurrentDate} => YYYY-MM-DD (UTC)
// - {.Count}       => number of items in the brief
func ExpandVars(s string, now time.Time, count int) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	r := strings.NewReplacer(
		"{.CurrentDate}", now.UTC().Format("2006-01-02"),
		"{.Count}", strconv.Itoa(count),
	)
	return r.Replace(s)
}

