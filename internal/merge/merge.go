package merge

import (
	"context"
	"fmt"
	"log/slog"

	"osint-desk/internal/model"
	"osint-desk/internal/storage"
)

// Enricher fills derived fields on records about to be written.
// It runs only on records that survived deduplication.
type Enricher interface {
	Enrich(ctx context.Context, ev *model.Event)
}

// Engine merges freshly transformed events into a repository.
type Engine struct {
	Repo     storage.Repository
	Enricher Enricher // optional
}

// Merge combines existing records with incoming ones and returns the merged dataset
// (new records first) and the records that were added.
//
// Existing records without an id are dropped. Incoming records whose source link or
// tweet id is already known are skipped; so are repeats within incoming. Survivors
// get sequential ids after the highest existing id and lose their tweet id.
func Merge(existing, incoming []model.Event) (merged, added []model.Event) {
	kept := make([]model.Event, 0, len(existing))
	links := map[string]struct{}{}
	tweetIDs := map[string]struct{}{}
	var maxID int64
	for _, e := range existing {
		if e.ID == 0 {
			continue
		}
		kept = append(kept, e)
		if e.SourceLink != "" {
			links[e.SourceLink] = struct{}{}
		}
		if e.TweetID != "" {
			tweetIDs[e.TweetID] = struct{}{}
		}
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	nextID := maxID + 1
	for _, it := range incoming {
		if _, dup := links[it.SourceLink]; dup {
			continue
		}
		if _, dup := tweetIDs[it.TweetID]; dup {
			continue
		}
		if it.SourceLink != "" {
			links[it.SourceLink] = struct{}{}
		}
		if it.TweetID != "" {
			tweetIDs[it.TweetID] = struct{}{}
		}
		it.ID = nextID
		nextID++
		it.TweetID = ""
		added = append(added, it)
	}

	merged = make([]model.Event, 0, len(added)+len(kept))
	merged = append(merged, added...)
	merged = append(merged, kept...)
	return merged, added
}

// Import loads the dataset, merges incoming into it and writes the result back once.
func (e *Engine) Import(ctx context.Context, incoming []model.Event) (model.ImportSummary, error) {
	existing, err := e.Repo.LoadAll(ctx)
	if err != nil {
		return model.ImportSummary{}, fmt.Errorf("load dataset: %w", err)
	}
	merged, added := Merge(existing, incoming)
	if e.Enricher != nil {
		// added and merged share no backing array; patch both
		for i := range added {
			e.Enricher.Enrich(ctx, &added[i])
			merged[i] = added[i]
		}
	}
	if err := e.Repo.ReplaceAll(ctx, merged); err != nil {
		return model.ImportSummary{}, fmt.Errorf("write dataset: %w", err)
	}
	sum := model.ImportSummary{Imported: len(added), Relevant: len(incoming), Total: len(merged)}
	slog.Info("merge: dataset updated", "imported", sum.Imported, "relevant", sum.Relevant, "total", sum.Total, "purged", len(existing)+len(added)-len(merged))
	return sum, nil
}

