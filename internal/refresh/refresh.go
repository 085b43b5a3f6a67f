// Package refresh keeps the served notes current: it reloads the notes file on
// a cron schedule, rebuilds the feed, and tells listeners when the day changes.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-dashtyar/internal/config"
	"github.com/tartampluch/go-dashtyar/internal/feed"
	"github.com/tartampluch/go-dashtyar/internal/notes"
	"github.com/tartampluch/go-dashtyar/internal/server"
)

// Refresher wires a notes source to the server. Server, OnSnapshot and
// OnDayChange are optional.
type Refresher struct {
	Source notes.Source
	Feed   *feed.Generator
	Server *server.DashboardServer

	// OnSnapshot runs on the scheduler goroutine after every successful load.
	OnSnapshot func(*notes.Snapshot)
	// OnDayChange runs at local midnight.
	OnDayChange func()

	mu   sync.Mutex
	last *notes.Snapshot
}

// Run loads the notes once and publishes them. On error the previous
// snapshot stays in place.
func (r *Refresher) Run() (*notes.Snapshot, error) {
	start := time.Now()

	snap, err := r.Source.Load()
	if err != nil {
		return nil, err
	}

	gen := r.Feed
	if gen == nil {
		gen = &feed.Generator{}
	}
	data, err := gen.Build(snap)
	if err != nil {
		return nil, err
	}

	if r.Server != nil {
		r.Server.Update(data, snap)
	}

	r.mu.Lock()
	r.last = snap
	r.mu.Unlock()

	if r.OnSnapshot != nil {
		r.OnSnapshot(snap)
	}

	slog.Info(config.MsgRefreshRun,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyCount, len(snap.Notes),
		config.LogKeyDated, snap.Days(),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return snap, nil
}

// Last returns the most recent snapshot, or nil before the first success.
func (r *Refresher) Last() *notes.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Schedule runs r on spec, and OnDayChange at midnight, until ctx is done.
// It does not run r immediately.
func (r *Refresher) Schedule(ctx context.Context, spec string) error {
	logger := cronLogger{}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := c.AddFunc(spec, r.runLogged); err != nil {
		return fmt.Errorf("%s: %q: %w", config.ErrSchedulerAdd, spec, err)
	}
	if r.OnDayChange != nil {
		if _, err := c.AddFunc(config.MidnightCron, r.OnDayChange); err != nil {
			return fmt.Errorf("%s: %q: %w", config.ErrSchedulerAdd, config.MidnightCron, err)
		}
	}

	c.Start()
	slog.Info(config.MsgSchedulerStart,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeySpec, spec,
	)

	<-ctx.Done()
	<-c.Stop().Done()

	slog.Info(config.MsgSchedulerStop, config.LogKeyComponent, config.CompWorker)
	return nil
}

func (r *Refresher) runLogged() {
	if _, err := r.Run(); err != nil {
		slog.Error(config.ErrRefresh,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err,
		)
	}
}

// cronLogger routes cron's own messages to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug(msg, append([]any{config.LogKeyComponent, config.CompWorker}, keysAndValues...)...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error(msg, append([]any{config.LogKeyComponent, config.CompWorker, config.LogKeyError, err}, keysAndValues...)...)
}
