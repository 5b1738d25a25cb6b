package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher reloads a library on a cron schedule. It covers sources the
// file watcher cannot see, such as a formula database edited by another
// process on another host.
type Refresher struct {
	lib      *Library
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewRefresher creates a scheduled refresher for the given library.
//
// Common cron expressions:
//   - "@every 5m"    - Every five minutes
//   - "0 * * * *"    - Hourly on the hour
//   - "0 4 * * *"    - Daily at 4 AM
func NewRefresher(lib *Library, schedule string, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		lib:      lib,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "refresher"),
	}
}

// Start begins scheduled reloading. An empty schedule is a no-op.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("refresh schedule not configured, skipping refresher")
		return nil
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", r.schedule, err)
	}

	_, err := r.cron.AddFunc(r.schedule, func() {
		r.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	r.cron.Start()
	r.running = true

	r.logger.Info("library refresher started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// runRefresh executes one reload cycle.
func (r *Refresher) runRefresh(ctx context.Context) {
	r.logger.Debug("starting scheduled library refresh")

	failures, err := r.lib.Load(ctx)
	if err != nil {
		r.logger.Error("scheduled refresh failed", "error", err)
		return
	}

	r.logger.Info("scheduled refresh completed",
		"revision", r.lib.Revision(),
		"formula_count", r.lib.Len(),
		"failed_count", len(failures),
	)
}

// Stop stops the refresher and waits for any running reload to complete.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil && r.running {
		ctx := r.cron.Stop()
		<-ctx.Done()
		r.running = false
		r.logger.Info("library refresher stopped")
	}
}

// IsRunning returns true if the refresher is running.
func (r *Refresher) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// NextRun returns the next scheduled refresh time.
func (r *Refresher) NextRun() *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
