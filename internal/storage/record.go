package storage

import (
	"encoding/json"

	"osint-desk/internal/model"

	"github.com/spf13/cast"
)

// decodeRecord reads one stored record leniently. Values of the wrong JSON type
// are coerced where possible and left zero otherwise. A record that is not an
// object, or whose id is null, missing or not numeric, comes back with ID 0.
// The stored bytes are kept in Raw.
func decodeRecord(raw json.RawMessage) model.Event {
	ev := model.Event{Raw: raw}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return ev
	}
	if v, ok := m["id"]; ok && v != nil {
		if id, err := cast.ToInt64E(v); err == nil {
			ev.ID = id
		}
	}
	str := func(k string) string { return cast.ToString(m[k]) }
	ev.TweetID = str("_tweetId")
	ev.Headline = str("headline")
	ev.SourceName = str("sourceName")
	ev.SourceHandle = str("sourceHandle")
	ev.SourceAvatar = str("sourceAvatar")
	ev.IsVerified = cast.ToBool(m["isVerified"])
	ev.Text = str("text")
	ev.Timestamp = str("timestamp")
	ev.VerifiedCount = cast.ToInt(m["verifiedCount"])
	ev.CrowdCount = cast.ToInt(m["crowdCount"])
	ev.SourceLink = str("sourceLink")
	ev.CredibilityScore = cast.ToFloat64(m["credibilityScore"])
	ev.CredibilityLevel = str("credibilityLevel")
	ev.GPTExplanation = str("gptExplanation")
	ev.Region = str("region")
	ev.Category = str("category")
	return ev
}

// encodable is what ReplaceAll writes for ev: the stored bytes when it was loaded,
// the typed fields otherwise.
func encodable(ev model.Event) any {
	if len(ev.Raw) > 0 {
		return ev.Raw
	}
	return ev
}
