package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"osint-desk/internal/model"
)

// FileStore keeps the dataset as a pretty-printed JSON array in a single file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path is the dataset file location.
func (s *FileStore) Path() string { return s.path }

// LoadAll reads the dataset. Only the top level must be a JSON array; each record
// is decoded leniently and keeps its stored bytes. Records whose id is null or
// missing decode with ID 0.
func (s *FileStore) LoadAll(ctx context.Context) ([]model.Event, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", s.path, err)
	}
	events := make([]model.Event, 0, len(raws))
	for _, raw := range raws {
		events = append(events, decodeRecord(raw))
	}
	return events, nil
}

// ReplaceAll writes events with two-space indentation. Loaded records are written
// from their stored bytes, re-indented only. The file is written to a temporary
// sibling first and renamed over the old one.
func (s *FileStore) ReplaceAll(ctx context.Context, events []model.Event) error {
	out := make([]any, 0, len(events))
	for _, ev := range events {
		out = append(out, encodable(ev))
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
