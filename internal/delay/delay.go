package delay

import (
	"context"
	"time"
)

// Sleep suspends the caller for ms milliseconds or until ctx is done.
// A non-positive duration returns immediately.
func Sleep(ctx context.Context, ms int) error {
	if ms <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
