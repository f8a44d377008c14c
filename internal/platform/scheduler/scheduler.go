// Package scheduler runs periodic background work on a robfig/cron runner.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduledTask is a single periodic job.
type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
}

// Every runs taskFunc every interval until Cancel is called.
// A run still in progress when the next one is due is skipped, not queued.
// cron's "@every" has one-second resolution, so shorter intervals run once a second.
func Every(interval time.Duration, taskFunc func()) (*ScheduledTask, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler: interval must be positive, got %v", interval)
	}
	return NewScheduledTask("@every "+interval.String(), taskFunc)
}

// NewScheduledTask registers taskFunc under cronSpec and starts the runner.
func NewScheduledTask(cronSpec string, taskFunc func()) (*ScheduledTask, error) {
	logger := cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug))
	c := cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	cancel := make(chan struct{})
	task := &ScheduledTask{
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-cancel:
			return
		default:
			taskFunc()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Cancel stops future runs and waits for a running one to finish or ctx to expire.
func (s *ScheduledTask) Cancel(ctx context.Context) {
	s.cron.Remove(s.cronID)
	close(s.cancel)
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
