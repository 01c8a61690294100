package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/lodviz/pkg/errors"
)

// FileStore is a file-based chart store. Charts are stored as JSON files
// named by ID in a single directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates the directory if needed. If baseDir is empty,
// defaults to ~/.local/share/lodviz/charts.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "lodviz", "charts")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Path returns the base directory for chart files.
func (s *FileStore) Path() string { return s.baseDir }

func (s *FileStore) chartPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(_ context.Context, id string) (*Chart, error) {
	if err := errors.ValidateChartID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.chartPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read chart file: %w", err)
	}
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse chart %s: %w", id, err)
	}
	return &c, nil
}

func (s *FileStore) Put(_ context.Context, c *Chart) error {
	if err := validate(c); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := s.chartPath(c.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write chart file: %w", err)
	}
	if err := os.Rename(tmp, s.chartPath(c.ID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write chart file: %w", err)
	}
	return nil
}

// List reads every chart file. Unreadable files are skipped.
func (s *FileStore) List(_ context.Context, limit int) ([]*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read chart dir: %w", err)
	}
	out := []*Chart{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var c Chart
		if err := json.Unmarshal(data, &c); err != nil {
			continue
		}
		out = append(out, c.Summary())
	}
	sortNewest(out)
	return out[:min(len(out), listLimit(limit))], nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := errors.ValidateChartID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.chartPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove chart file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
