package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const DefaultFile = "watchlist.json"

// FileStore keeps the list as a flat JSON array of strings.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFile
	}
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("watchlist file unreadable, using defaults", "path", s.path, "error", err)
		}
		return defaults()
	}

	var symbols []string
	if err := json.Unmarshal(data, &symbols); err != nil {
		slog.Warn("watchlist file corrupt, using defaults", "path", s.path, "error", err)
		return defaults()
	}
	return dedupe(symbols)
}

// Save writes a temp file and renames it over the old list.
func (s *FileStore) Save(ctx context.Context, symbols []string) error {
	data, err := json.Marshal(symbols)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".watchlist-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
