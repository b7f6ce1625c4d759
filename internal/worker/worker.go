// Package worker regenerates the calendar feed on a cron schedule and when
// the settings change.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-kronometer/internal/config"
)

// Job is one unit of work run by the worker.
type Job func(ctx context.Context) error

// Worker runs Refresh at start, on every schedule tick and after every
// successful Reload.
type Worker struct {
	Refresh Job
	// Reload is called for each signal on Reloads. A failed reload keeps the
	// previous state and skips the refresh.
	Reload  Job
	Reloads <-chan struct{}

	schedule cron.Schedule
	spec     string
}

// New parses spec as a standard five-field cron expression or descriptor.
func New(spec string, refresh, reload Job, reloads <-chan struct{}) (*Worker, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", config.ErrCronSpec, spec, err)
	}
	w := NewWithSchedule(schedule, refresh, reload, reloads)
	w.spec = spec
	return w, nil
}

// NewWithSchedule builds a worker around an already parsed schedule.
func NewWithSchedule(schedule cron.Schedule, refresh, reload Job, reloads <-chan struct{}) *Worker {
	return &Worker{
		Refresh:  refresh,
		Reload:   reload,
		Reloads:  reloads,
		schedule: schedule,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	w.refresh(ctx, log)

	timer := time.NewTimer(w.untilNext())
	defer timer.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeySchedule, w.spec)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case _, ok := <-w.Reloads:
			if !ok {
				w.Reloads = nil
				continue
			}
			log.Info(config.MsgReload)
			if w.Reload != nil {
				if err := w.Reload(ctx); err != nil {
					log.Error(config.MsgReloadFailed, config.LogKeyError, err)
					continue
				}
			}
			w.refresh(ctx, log)

		case <-timer.C:
			w.refresh(ctx, log)
			timer.Reset(w.untilNext())
		}
	}
}

func (w *Worker) untilNext() time.Duration {
	now := time.Now()
	d := w.schedule.Next(now).Sub(now)
	if d < 0 {
		d = 0
	}
	return d
}

func (w *Worker) refresh(ctx context.Context, log *slog.Logger) {
	if w.Refresh == nil || ctx.Err() != nil {
		return
	}
	start := time.Now()
	log.Debug(config.MsgRefresh)
	if err := w.Refresh(ctx); err != nil {
		log.Error(config.ErrExport, config.LogKeyError, err)
		return
	}
	log.Debug(config.MsgRefresh, config.LogKeyDuration, time.Since(start).Milliseconds())
}
