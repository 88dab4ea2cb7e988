// Package schedule drives repeated pipeline runs from a cron expression.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/denverdino/news-aggregator/internal/logger"
)

// Loop runs fn at every activation of spec until ctx is cancelled.
// spec accepts standard cron fields plus the @daily/@hourly shorthands.
// Runs do not overlap: the next activation is computed after fn returns.
func Loop(ctx context.Context, spec string, fn func()) error {
	expr, err := cronexpr.Parse(spec)
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	for {
		next := expr.Next(time.Now())
		if next.IsZero() {
			return fmt.Errorf("schedule %q has no future activation", spec)
		}
		logger.Info("next run scheduled", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			fn()
		}
	}
}
