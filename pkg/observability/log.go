package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, errors at warn.
// It implements PipelineHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, mode string, blockCount int) {
	h.Logger.Debug("layout started", "mode", mode, "blocks", blockCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, mode string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "mode", mode, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout complete", "mode", mode, "duration", d)
}

func (h *LogHooks) OnPackStart(_ context.Context, groupCount int) {
	h.Logger.Debug("pack started", "groups", groupCount)
}

func (h *LogHooks) OnPackComplete(_ context.Context, blockCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("pack failed", "blocks", blockCount, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("pack complete", "blocks", blockCount, "duration", d)
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
	h.Logger.Warn("request failed", "method", method, "route", route, "err", err)
}
