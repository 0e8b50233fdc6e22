package service

import (
	"context"
	"log/slog"
	"time"
)

// SweepWorker periodically re-dispatches pending events that were created but
// never delivered, compensating for background dispatches lost to process
// teardown. Deployments driving action=dispatch from an external cron can
// leave the worker disabled.
type SweepWorker struct {
	dispatcher *Dispatcher
	interval   time.Duration
	stopChan   chan struct{}
}

// NewSweepWorker creates a SweepWorker.
func NewSweepWorker(dispatcher *Dispatcher, interval time.Duration) *SweepWorker {
	return &SweepWorker{
		dispatcher: dispatcher,
		interval:   interval,
		stopChan:   make(chan struct{}),
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is called.
func (w *SweepWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("Sweep worker started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Sweep worker stopped by context")
			return
		case <-w.stopChan:
			slog.Info("Sweep worker stopped")
			return
		case <-ticker.C:
			if _, err := w.dispatcher.DispatchPending(ctx); err != nil {
				slog.Error("Failed to sweep pending events", slog.Any("err", err))
			}
		}
	}
}

// Stop stops the sweep worker.
func (w *SweepWorker) Stop() {
	close(w.stopChan)
}
