// Package storage persists computed charts so the API can serve them by ID.
//
// A [Chart] holds the JSON-encoded pipeline result together with the
// metadata needed to list charts. Three [Store] backends exist:
//   - [MemoryStore]: in-process map for tests and single-instance servers
//   - [FileStore]: one JSON file per chart for local use
//   - [MongoStore]: a MongoDB collection for shared deployments
//
// # Usage
//
//	chart, err := storage.NewChart(res.Title, string(res.Mark), res.CacheInfo.Key, res)
//	if err != nil {
//	    return err
//	}
//	if err := store.Put(ctx, chart); err != nil {
//	    return err
//	}
//
//	got, err := store.Get(ctx, chart.ID)
//	if errors.Is(err, errors.ErrCodeChartNotFound) {
//	    // unknown ID
//	}
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/lodviz/pkg/errors"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Chart is one stored chart.
type Chart struct {
	ID        string          `json:"id"`
	Title     string          `json:"title,omitempty"`
	Mark      string          `json:"mark"`
	CacheKey  string          `json:"cache_key,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Result    json.RawMessage `json:"result"`
}

// NewChart encodes result and assigns a fresh UUID.
func NewChart(title, mark, cacheKey string, result any) (*Chart, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode chart result: %w", err)
	}
	return &Chart{
		ID:        uuid.NewString(),
		Title:     title,
		Mark:      mark,
		CacheKey:  cacheKey,
		CreatedAt: time.Now().UTC(),
		Result:    raw,
	}, nil
}

// Summary returns the chart without its result, for listings.
func (c *Chart) Summary() *Chart {
	cp := *c
	cp.Result = nil
	return &cp
}

// Store is the interface for chart storage backends.
type Store interface {
	// Get returns the chart with the given ID, or an error with code
	// ErrCodeChartNotFound.
	Get(ctx context.Context, id string) (*Chart, error)

	// Put stores a chart, replacing any chart with the same ID.
	Put(ctx context.Context, chart *Chart) error

	// List returns up to limit charts, newest first, without results.
	List(ctx context.Context, limit int) ([]*Chart, error)

	// Delete removes a chart. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
}

func validate(c *Chart) error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidInput, "chart is required")
	}
	return errors.ValidateChartID(c.ID)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
