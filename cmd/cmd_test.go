package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"osint-desk/internal/config"
	"osint-desk/internal/dashboard"
	"osint-desk/internal/model"
	"osint-desk/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "id,tweetText,tweetURL,tweetAuthor,handle,retweetCount,replyCount,quoteCount,likeCount,createdAt\r\n" +
	"101,\"Army conducts radar exercise near border\",https://x.com/a,Desk,@desk,10,1,2,50,2025-11-05 16:49:55\r\n" +
	"102,\"Cricket, again\",https://x.com/b,Fan,@fan,1,0,0,1,2025-11-05 17:00:00\r\n" +
	"103,\"ISRO satellite tracking\nsecond line\",https://x.com/c,Space,@space,100,0,0,0,2025-11-05 18:00:00\r\n" +
	"104,short row\r\n"

func testConfig(t *testing.T) config.Config {
	t.Helper()
	var cfg config.Config
	cfg.Briefing.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.FillDefaults()
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func fixedClock() time.Time { return time.Date(2025, 11, 6, 8, 0, 0, 0, time.UTC) }

func TestImportArgsRequired(t *testing.T) {
	assert.Equal(t, errNoCSVPath, importCmd.Args(importCmd, nil))
	assert.NoError(t, importCmd.Args(importCmd, []string{"x.csv"}))
}

func TestRunImportEndToEnd(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "export.csv", sampleCSV)
	out := filepath.Join(dir, "mockData.json")
	writeFile(t, dir, "mockData.json", `[
  {"id": null, "headline": "broken"},
  {"id": 5, "headline": "seed", "sourceLink": "https://x.com/seed", "lat": 28.6}
]`)

	var buf bytes.Buffer
	err := runImport(context.Background(), &buf, testConfig(t), csvPath, importOptions{Output: out, Now: fixedClock})
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 items (from 2 relevant), mockData.json now has 3 items.\n", buf.String())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "_tweetId")
	var events []model.Event
	require.NoError(t, json.Unmarshal(b, &events))
	require.Len(t, events, 3)

	assert.Equal(t, int64(6), events[0].ID)
	assert.Equal(t, "Army conducts radar exercise near border", events[0].Headline)
	assert.Equal(t, "Defense", events[0].Category)
	assert.Equal(t, "Desk", events[0].SourceName)
	assert.Equal(t, "2025-11-05T16:49:55Z", events[0].Timestamp)
	assert.Equal(t, 3, events[0].CrowdCount)

	assert.Equal(t, int64(7), events[1].ID)
	assert.Equal(t, "ISRO satellite tracking\nsecond line", events[1].Text)
	assert.Equal(t, "ISRO satellite tracking second line", events[1].Headline)
	assert.Equal(t, "Technology", events[1].Category)
	assert.Equal(t, "High", events[1].CredibilityLevel)

	assert.Equal(t, int64(5), events[2].ID)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(b, &records))
	assert.Equal(t, map[string]any{
		"id":         float64(5),
		"headline":   "seed",
		"sourceLink": "https://x.com/seed",
		"lat":        28.6,
	}, records[2], "existing record must be written back unchanged")

	// Second run imports nothing and keeps the total.
	buf.Reset()
	require.NoError(t, runImport(context.Background(), &buf, testConfig(t), csvPath, importOptions{Output: out, Now: fixedClock}))
	assert.Equal(t, "Imported 0 items (from 2 relevant), mockData.json now has 3 items.\n", buf.String())
}

func TestRunImportOnlyIrrelevantRows(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "export.csv", "id,tweetText,tweetURL\n1,weather report,https://x.com/w\n")
	var buf bytes.Buffer
	err := runImport(context.Background(), &buf, testConfig(t), csvPath, importOptions{Output: filepath.Join(dir, "mockData.json")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "Imported 0 items (from 0 relevant)"), buf.String())
}

func TestRunImportEmptyCSV(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "mockData.json")
	for _, content := range []string{"", "id,tweetText,tweetURL\n", "id,tweetText,tweetURL\n\n", "id,tweetText,tweetURL\r\n\r\n\r\n"} {
		csvPath := writeFile(t, dir, "empty.csv", content)
		err := runImport(context.Background(), &bytes.Buffer{}, testConfig(t), csvPath, importOptions{Output: out})
		assert.ErrorIs(t, err, errEmptyCSV)
	}
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "dataset must not be written")
}

func TestRunImportMissingColumn(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "bad.csv", "id,text\n1,army\n")
	err := runImport(context.Background(), &bytes.Buffer{}, testConfig(t), csvPath, importOptions{Output: filepath.Join(dir, "m.json")})
	assert.ErrorContains(t, err, "tweetURL")
}

type fakeLocker struct {
	acquireErr error
	acquired   int
	released   int
}

func (f *fakeLocker) Acquire(ctx context.Context) error {
	if f.acquireErr != nil {
		return f.acquireErr
	}
	f.acquired++
	return nil
}

func (f *fakeLocker) Release(ctx context.Context) error {
	f.released++
	return nil
}

func TestRunImportLocking(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "export.csv", sampleCSV)
	out := filepath.Join(dir, "mockData.json")

	l := &fakeLocker{}
	require.NoError(t, runImport(context.Background(), &bytes.Buffer{}, testConfig(t), csvPath, importOptions{Output: out, Locker: l}))
	assert.Equal(t, 1, l.acquired)
	assert.Equal(t, 1, l.released)

	busy := &fakeLocker{acquireErr: storage.ErrLocked}
	err := runImport(context.Background(), &bytes.Buffer{}, testConfig(t), csvPath, importOptions{Output: out, Locker: busy})
	assert.True(t, errors.Is(err, storage.ErrLocked))
	assert.Equal(t, 0, busy.released)
}

func TestListEvents(t *testing.T) {
	repo := storage.NewMemoryStore(
		model.Event{ID: 2, Headline: "Navy drill", CredibilityLevel: "High", CredibilityScore: 0.85, Category: "Defense"},
		model.Event{ID: 1, Headline: "Border patrol", CredibilityLevel: "Low", CredibilityScore: 0.55, Category: "Security"},
	)
	var buf bytes.Buffer
	state := dashboard.Update(dashboard.Default(), dashboard.Action{Kind: dashboard.SetCredibility, Value: "High"})
	require.NoError(t, listEvents(context.Background(), &buf, repo, state))
	assert.Equal(t, "#2 [High 0.85] Defense Navy drill\n1 of 2 events\n", buf.String())
}

func TestWriteBrief(t *testing.T) {
	cfg := testConfig(t)
	repo := storage.NewMemoryStore(
		model.Event{ID: 1, Headline: "Low one", CredibilityLevel: "Low", CredibilityScore: 0.4},
		model.Event{ID: 2, Headline: "Top one", CredibilityLevel: "High", CredibilityScore: 0.9, SourceLink: "https://x.com/t"},
	)
	var buf bytes.Buffer
	path, err := writeBrief(context.Background(), &buf, cfg, repo, 1, "", nil, fixedClock())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Briefing.OutputDir, "brief-20251106.md"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(b)
	assert.Contains(t, doc, "title: OSINT brief 2025-11-06")
	assert.Contains(t, doc, "[Top one](https://x.com/t)")
	assert.NotContains(t, doc, "Low one")
}

func TestWriteBriefEmpty(t *testing.T) {
	cfg := testConfig(t)
	var buf bytes.Buffer
	path, err := writeBrief(context.Background(), &buf, cfg, storage.NewMemoryStore(), 5, "", nil, fixedClock())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Contains(t, buf.String(), "No events found")
	_, err = os.Stat(cfg.Briefing.OutputDir)
	assert.True(t, os.IsNotExist(err))
}
