package internal

import (
	"context"
	"time"
)

// DefaultQueryTimeout bounds a single request's storage work.
const DefaultQueryTimeout = 5 * time.Second

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = DefaultQueryTimeout
	}
	return context.WithTimeout(ctx, duration)
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"
