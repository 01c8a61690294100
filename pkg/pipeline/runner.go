package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lodviz/pkg/cache"
	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/downsample"
	"github.com/matzehuels/lodviz/pkg/core/stats"
	"github.com/matzehuels/lodviz/pkg/core/table"
	"github.com/matzehuels/lodviz/pkg/errors"
	"github.com/matzehuels/lodviz/pkg/observability"
)

// Runner executes pipeline work with caching. The CLI and the API server
// each hold one.
//
// The Runner is stateless apart from its cache and logger, so one Runner
// can serve concurrent requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the DefaultKeyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute computes the chart for t, serving it from the cache when the
// same table and options were computed before.
func (r *Runner) Execute(ctx context.Context, t *table.DataTable, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidTable, "table is required")
	}

	tableHash, hashErr := cache.HashJSON(t)
	if hashErr != nil {
		r.Logger.Debug("table not cacheable", "err", hashErr)
		res, err := Compute(ctx, t, opts)
		if err != nil {
			return nil, err
		}
		r.logComputed(res, t.Len())
		return res, nil
	}

	key := r.Keyer.ChartKey(tableHash, opts.ChartKeyOpts())
	if !opts.Refresh {
		var cached Result
		if r.load(ctx, "chart", key, &cached) {
			cached.CacheInfo = CacheInfo{Hit: true, Key: key}
			r.Logger.Debug("chart served from cache", "mark", cached.Mark)
			return &cached, nil
		}
	}

	res, err := Compute(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	res.CacheInfo.Key = key
	r.store(ctx, "chart", key, res, cache.TTLChart)
	r.logComputed(res, t.Len())
	return res, nil
}

func (r *Runner) logComputed(res *Result, rows int) {
	r.Logger.Info("computed chart",
		"mark", res.Mark,
		"rows", rows,
		"duration", res.Timing.Total.Round(time.Microsecond))
}

// Downsample reduces points with the given options, caching the result.
// It reports whether the result came from the cache.
func (r *Runner) Downsample(ctx context.Context, points []data.DataPoint, opts DownsampleOptions) ([]data.DataPoint, bool, error) {
	algo, err := downsample.ParseAlgorithm(string(opts.Algorithm))
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "downsample")
	}
	if err := errors.ValidateThreshold(opts.Threshold, MinThreshold); err != nil {
		return nil, false, err
	}

	var key string
	if seriesHash, err := cache.HashJSON(points); err != nil {
		r.Logger.Debug("series not cacheable", "err", err)
	} else {
		key = r.Keyer.DownsampleKey(seriesHash, cache.DownsampleKeyOpts{
			Algorithm: string(algo),
			Threshold: opts.Threshold,
		})
		var cached []data.DataPoint
		if r.load(ctx, "downsample", key, &cached) {
			return cached, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, observability.StageDownsample)
	start := time.Now()
	out := algo.Apply(points, opts.Threshold)
	hooks.OnDownsample(ctx, string(algo), len(points), len(out))
	hooks.OnStageComplete(ctx, observability.StageDownsample, time.Since(start), nil)

	if key != "" {
		r.store(ctx, "downsample", key, out, cache.TTLDownsample)
	}
	r.Logger.Info("downsampled", "algorithm", algo, "in", len(points), "out", len(out))
	return out, false, nil
}

// StatsResult summarizes a sample and bins it into a histogram.
type StatsResult struct {
	Summary   stats.Summary `json:"summary"`
	Rule      stats.Rule    `json:"rule"`
	Histogram []stats.Bin   `json:"histogram"`
}

// Stats summarizes values and bins them with rule, caching the result.
func (r *Runner) Stats(ctx context.Context, values []float64, rule stats.Rule) (*StatsResult, bool, error) {
	var key string
	if valuesHash, err := cache.HashJSON(values); err != nil {
		r.Logger.Debug("values not cacheable", "err", err)
	} else {
		key = r.Keyer.StatsKey(valuesHash, rule.String())
		var cached StatsResult
		if r.load(ctx, "stats", key, &cached) {
			return &cached, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, observability.StageStats)
	start := time.Now()
	res := &StatsResult{
		Summary:   stats.Summarize(values),
		Rule:      rule,
		Histogram: stats.Histogram(values, rule),
	}
	hooks.OnStageComplete(ctx, observability.StageStats, time.Since(start), nil)

	if key != "" {
		r.store(ctx, "stats", key, res, cache.TTLStats)
	}
	return res, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// load decodes a cached value into v. Cache errors and undecodable entries
// count as misses.
func (r *Runner) load(ctx context.Context, keyType, key string, v any) bool {
	raw, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		r.Logger.Debug("discarding cache entry", "type", keyType, "err", err)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// store writes v to the cache. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("cache encode failed", "type", keyType, "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, raw, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(raw))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
