// Package jobs holds the background loops that run alongside the HTTP
// server under the same lifecycle.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"
)

// SweepRunner periodically flips overdue confirmed reservations to no_show.
// The sweep statement is atomic per run, so overlapping runs and manual
// seating cannot double-apply.
type SweepRunner struct {
	sweep    commands.SweepCommands
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewSweepRunner(sweep commands.SweepCommands, cfg config.JobsConfig) *SweepRunner {
	return &SweepRunner{
		sweep:    sweep,
		interval: cfg.SweepInterval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (r *SweepRunner) Start() {
	go r.loop()
}

// Stop blocks until an in-flight sweep finishes.
func (r *SweepRunner) Stop() {
	close(r.stop)
	<-r.done
}

func (r *SweepRunner) loop() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.runOnce()
		}
	}
}

func (r *SweepRunner) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := r.sweep.SweepOverdue(ctx); err != nil {
		slog.ErrorContext(ctx, "no-show sweep failed", "error", err)
	}
}
