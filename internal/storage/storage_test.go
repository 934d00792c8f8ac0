package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"osint-desk/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "mockData.json"))
	events, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFileStoreRoundTripFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockData.json")
	s := NewFileStore(path)
	ctx := context.Background()
	in := []model.Event{{ID: 2, Headline: "Army <drill>", SourceLink: "https://x.com/a?b=1&c=2", CredibilityScore: 0.62, CredibilityLevel: "Medium"}}
	require.NoError(t, s.ReplaceAll(ctx, in))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"id\": 2,"), out)
	assert.Contains(t, out, `"headline": "Army <drill>"`)
	assert.Contains(t, out, `"sourceLink": "https://x.com/a?b=1&c=2"`)
	assert.NotContains(t, out, "_tweetId")

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].Raw)
	got[0].Raw = nil
	assert.Equal(t, in, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestFileStoreEmptyDatasetWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockData.json")
	require.NoError(t, NewFileStore(path).ReplaceAll(context.Background(), nil))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))
}

func TestFileStoreNullIDDecodesAsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockData.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": null, "headline": "bad"}, {"headline": "no id"}, {"id": 4}]`), 0o644))
	events, err := NewFileStore(path).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, int64(0), events[0].ID)
	assert.Equal(t, int64(0), events[1].ID)
	assert.Equal(t, int64(4), events[2].ID)
}

func TestFileStoreKeepsStoredRecordsVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockData.json")
	stored := `[{"id":1,"headline":"h","sourceLink":"https://x.com/1?a=1&b=<2>","lat":28.6,"tags":["a"]}]`
	require.NoError(t, os.WriteFile(path, []byte(stored), 0o644))
	s := NewFileStore(path)
	ctx := context.Background()

	events, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "https://x.com/1?a=1&b=<2>", events[0].SourceLink)

	added := model.Event{ID: 2, Headline: "new", SourceLink: "https://x.com/2"}
	require.NoError(t, s.ReplaceAll(ctx, append([]model.Event{added}, events...)))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0]["headline"])
	assert.Equal(t, map[string]any{
		"id":         float64(1),
		"headline":   "h",
		"sourceLink": "https://x.com/1?a=1&b=<2>",
		"lat":        28.6,
		"tags":       []any{"a"},
	}, got[1])
	assert.Contains(t, string(b), `"sourceLink": "https://x.com/1?a=1&b=<2>"`)
}

func TestFileStoreCoercesLooseValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockData.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"7","verifiedCount":1.5,"isVerified":"true"},{"id":"x7"},5,null]`), 0o644))
	events, err := NewFileStore(path).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, int64(7), events[0].ID)
	assert.Equal(t, 1, events[0].VerifiedCount)
	assert.True(t, events[0].IsVerified)
	for _, ev := range events[1:] {
		assert.Equal(t, int64(0), ev.ID)
	}
}

func TestFileStoreInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockData.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	_, err := NewFileStore(path).LoadAll(context.Background())
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	repo := NewMemoryStore(model.Event{ID: 1, Headline: "one"}, model.Event{ID: 2, Headline: "two"})
	ev, ok, err := Find(context.Background(), repo, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", ev.Headline)

	_, ok, err = Find(context.Background(), repo, 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreCopies(t *testing.T) {
	repo := NewMemoryStore(model.Event{ID: 1})
	events, _ := repo.LoadAll(context.Background())
	events[0].ID = 99
	again, _ := repo.LoadAll(context.Background())
	assert.Equal(t, int64(1), again[0].ID)
}

func TestRedisLockKey(t *testing.T) {
	l := NewRedisLock(nil, "mockData.json", 0)
	assert.Equal(t, "osint:lock:import:mockData.json", l.Key())
	assert.Equal(t, 2*time.Minute, l.ttl)
	assert.NotEmpty(t, l.token)
}
