package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level, except HTTP
// responses which are logged at info level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to log.Default() when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnStageStart(_ context.Context, stage string) {
	h.Logger.Debug("stage started", "stage", stage)
}

func (h *LogHooks) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("stage failed", "stage", stage, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("stage finished", "stage", stage, "duration", d)
}

func (h *LogHooks) OnDownsample(_ context.Context, algorithm string, in, out int) {
	h.Logger.Debug("downsampled", "algorithm", algorithm, "in", in, "out", out)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.Logger.Error("request failed", "method", method, "route", route, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
