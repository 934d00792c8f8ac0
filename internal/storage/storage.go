package storage

import (
	"context"

	"osint-desk/internal/model"
)

// Repository holds the whole event dataset. Implementations replace the dataset
// wholesale on write; there is no incremental append on disk.
type Repository interface {
	// LoadAll returns every stored record in stored order. An absent dataset is empty.
	LoadAll(ctx context.Context) ([]model.Event, error)
	// ReplaceAll overwrites the dataset with events.
	ReplaceAll(ctx context.Context, events []model.Event) error
}

// Find returns the record with the given id.
func Find(ctx context.Context, repo Repository, id int64) (model.Event, bool, error) {
	events, err := repo.LoadAll(ctx)
	if err != nil {
		return model.Event{}, false, err
	}
	for _, ev := range events {
		if ev.ID == id {
			return ev, true, nil
		}
	}
	return model.Event{}, false, nil
}
