package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/catatsuy/containers_rule/internal/delay"
	"github.com/catatsuy/containers_rule/internal/message"
	"github.com/catatsuy/containers_rule/internal/metrics"
	"github.com/catatsuy/containers_rule/internal/random"
)

// Runner repeatedly sleeps for a random interval and prints how long it slept.
type Runner struct {
	outStream io.Writer
	logger    *slog.Logger
	metrics   *metrics.Metrics

	// count limits the number of iterations; 0 means run until ctx is done.
	count int

	sleep     func(ctx context.Context, ms int) error
	randomInt func(min, max int) int
}

// NewRunner creates a Runner writing one line per iteration to outStream.
// A nil logger discards diagnostics and a nil m gets a private registry.
func NewRunner(outStream io.Writer, logger *slog.Logger, m *metrics.Metrics) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if m == nil {
		m = metrics.New()
	}

	return &Runner{
		outStream: outStream,
		logger:    logger,
		metrics:   m,
		sleep:     delay.Sleep,
		randomInt: random.Int,
	}
}

// SetCount stops Run after n iterations. n <= 0 restores the unbounded loop.
func (r *Runner) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	r.count = n
}

// Run loops until ctx is cancelled or the configured count is reached.
// Cancellation is a normal stop and returns nil; a failed write is returned.
func (r *Runner) Run(ctx context.Context) error {
	for i := 0; r.count == 0 || i < r.count; i++ {
		if _, err := r.Step(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				r.logger.Debug("loop stopped", "reason", err, "iterations", i)
				return nil
			}
			return err
		}
	}

	r.logger.Debug("loop finished", "iterations", r.count)
	return nil
}

// Step runs a single iteration and returns the sampled delay.
// Nothing is written if ctx is done before the delay elapses.
func (r *Runner) Step(ctx context.Context) (int, error) {
	sleepTime := r.randomInt(random.Min, random.Max)
	r.logger.Debug("sleeping", "ms", sleepTime)

	if err := r.sleep(ctx, sleepTime); err != nil {
		return sleepTime, err
	}

	if _, err := fmt.Fprintln(r.outStream, message.Format(sleepTime)); err != nil {
		return sleepTime, fmt.Errorf("failed to write message: %w", err)
	}
	r.metrics.Observe(sleepTime)

	return sleepTime, nil
}
