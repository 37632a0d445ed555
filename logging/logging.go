// Package logging sets up the structured logger and the rate limiter used
// to report index corruption (§7, "Indexing failure") without flooding the
// host application's log sink. Grounded on the teacher's go.uber.org/zap,
// gopkg.in/natefinch/lumberjack.v2 and golang.org/x/time/rate dependencies.
package logging

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileLogger builds a *zap.Logger that writes JSON lines through a
// lumberjack rolling file, for embedders that want file output instead of
// stderr. Most callers should just use zap.NewNop() or their own *zap.Logger
// and never touch this.
func NewFileLogger(path string, maxSizeMB int) *zap.Logger {
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zap.InfoLevel)
	return zap.New(core)
}

// RateLimitedWarner throttles a repeated warning with a token bucket: up to
// burst warnings may be logged at once, and the allowance refills at a rate
// of burst per window. It is not a strict burst-per-window cap: a window
// that starts with a full bucket can log up to about twice burst warnings.
// Suppressed warnings are counted, and the count is attached as a
// "suppressed" field to the next warning the limiter allows. This covers
// Open Question (2) in §9, with "10 messages per 5 minutes" as the
// configurable figures.
type RateLimitedWarner struct {
	log     *zap.Logger
	limiter *rate.Limiter

	mu         sync.Mutex
	suppressed int
}

// NewRateLimitedWarner returns a warner allowing burst events per window.
// The teacher's erigon repo and the wider pack use golang.org/x/time/rate
// for exactly this shape of "N per interval" throttle.
func NewRateLimitedWarner(log *zap.Logger, burst int, window time.Duration) *RateLimitedWarner {
	if log == nil {
		log = zap.NewNop()
	}
	// rate.NewLimiter takes events/sec; burst events across window means
	// the refill rate is burst/window, with the full burst available
	// immediately.
	r := rate.Limit(float64(burst) / window.Seconds())
	return &RateLimitedWarner{
		log:     log,
		limiter: rate.NewLimiter(r, burst),
	}
}

// Warn logs msg with fields if the limiter allows it, otherwise counts the
// suppression silently. The count of dropped warnings is reported, and
// reset, on the next allowed Warn; there is no separate flush.
func (w *RateLimitedWarner) Warn(msg string, fields ...zap.Field) {
	if w.limiter.Allow() {
		w.mu.Lock()
		suppressed := w.suppressed
		w.suppressed = 0
		w.mu.Unlock()
		if suppressed > 0 {
			fields = append(fields, zap.Int("suppressed", suppressed))
		}
		w.log.Warn(msg, fields...)
		return
	}
	w.mu.Lock()
	w.suppressed++
	w.mu.Unlock()
}
