// Package ratelimit caps how many summarizer calls one process may make
// per day. Cache hits are free and tracked separately.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/denverdino/news-aggregator/internal/logger"
)

type Budget struct {
	mu        sync.Mutex
	used      int
	max       int // 0 = unlimited
	cacheHits int
	resetTime time.Time
}

func NewBudget(maxPerDay int) *Budget {
	return &Budget{
		max:       maxPerDay,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// Allow reports whether another summarizer call fits the budget without
// consuming it.
func (b *Budget) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()
	return b.max <= 0 || b.used < b.max
}

// Use consumes one summarizer call from the budget.
func (b *Budget) Use() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()

	if b.max > 0 && b.used >= b.max {
		return fmt.Errorf("daily summary budget exhausted (%d/%d)", b.used, b.max)
	}
	b.used++
	return nil
}

// RecordCacheHit notes a summary served from cache instead of a call.
func (b *Budget) RecordCacheHit() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cacheHits++
}

func (b *Budget) GetStats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	return map[string]interface{}{
		"summaries_used":  b.used,
		"summaries_limit": b.max,
		"cache_hits":      b.cacheHits,
		"reset_time":      b.resetTime.Format(time.RFC3339),
	}
}

// checkReset rolls the counters over once the daily window has passed.
// Callers must hold the mutex.
func (b *Budget) checkReset() {
	if time.Now().After(b.resetTime) {
		logger.Info("summary budget reset", "used", b.used, "cache_hits", b.cacheHits)
		b.used = 0
		b.cacheHits = 0
		b.resetTime = time.Now().Add(24 * time.Hour)
	}
}
