package scheduler

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on each tick until ctx is done.
// Errors are logged and do not stop the loop.
func Every(ctx context.Context, logger *log.Logger, interval time.Duration, name string, task Task) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix(name)

	t := time.NewTicker(interval)
	defer t.Stop()

	run := func() {
		if err := task(ctx); err != nil {
			logger.Error("task failed", "err", err)
		}
	}

	// run immediately
	run()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
