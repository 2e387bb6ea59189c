package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nerrad567/speedportmon/internal/infrastructure/logging"
	"github.com/nerrad567/speedportmon/internal/speedport"
)

// State is the poll loop lifecycle state.
type State int32

const (
	// StateRunning is the initial state: cycles are executed.
	StateRunning State = iota

	// StateStopped is entered once the context is cancelled. It is final.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Fetcher obtains one snapshot from the router.
type Fetcher interface {
	Fetch(ctx context.Context) (speedport.Snapshot, error)
}

// Writer persists one snapshot.
type Writer interface {
	Write(ctx context.Context, snap speedport.Snapshot) error
}

// Publisher forwards a snapshot to a secondary consumer. Failures are
// logged and never affect the cycle.
type Publisher interface {
	PublishSnapshot(snap speedport.Snapshot) error
}

// ErrCyclePanic wraps a panic recovered from inside a cycle.
var ErrCyclePanic = errors.New("monitor: cycle panicked")

// Options configures a Loop.
type Options struct {
	Fetcher  Fetcher
	Writer   Writer
	Interval time.Duration

	// Publisher is optional.
	Publisher Publisher

	// Logger is optional; nothing is logged when nil.
	Logger *logging.Logger
}

// Loop drives fetch, write and sleep until its context is cancelled.
//
// Thread Safety: Run must be called from a single goroutine and only once.
// State may be read from any goroutine.
type Loop struct {
	fetcher   Fetcher
	writer    Writer
	publisher Publisher
	interval  time.Duration
	log       *logging.Logger

	state atomic.Int32
}

// New creates a Loop in StateRunning.
func New(opts Options) (*Loop, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("monitor: fetcher required")
	}
	if opts.Writer == nil {
		return nil, errors.New("monitor: writer required")
	}
	if opts.Interval <= 0 {
		return nil, errors.New("monitor: interval must be > 0")
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &Loop{
		fetcher:   opts.Fetcher,
		writer:    opts.Writer,
		publisher: opts.Publisher,
		interval:  opts.Interval,
		log:       log.With("component", "monitor"),
	}, nil
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Run executes cycles until ctx is cancelled, sleeping Interval after every
// cycle whether it succeeded or not.
//
// Cancellation interrupts a sleep immediately. A write in flight at that
// moment is abandoned.
//
// Returns:
//   - error: always nil; cancellation is the normal way to stop
func (l *Loop) Run(ctx context.Context) error {
	defer l.state.Store(int32(StateStopped))

	for {
		if ctx.Err() != nil {
			l.log.Info("stopped by user")
			return nil
		}

		err := l.safeCycle(ctx)

		if ctx.Err() != nil {
			l.log.Info("stopped by user")
			return nil
		}

		if err != nil {
			l.log.Error("cycle failed", "error", err, "retry_in", l.interval)
		} else {
			l.log.Info("sleeping", "interval", l.interval)
		}

		if !l.sleep(ctx) {
			l.log.Info("stopped by user")
			return nil
		}
	}
}

// safeCycle runs one cycle and converts a panic into an error.
func (l *Loop) safeCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCyclePanic, r)
		}
	}()
	return l.RunOnce(ctx)
}

// RunOnce performs a single cycle without sleeping.
//
// A fetch failure is logged and replaced by an empty snapshot, so the
// writer is always called. The returned error is the writer's.
func (l *Loop) RunOnce(ctx context.Context) error {
	snap, err := l.fetcher.Fetch(ctx)
	if err != nil {
		l.log.Error("fetching router status failed", "error", err)
		snap = speedport.Snapshot{}
	}

	l.log.Info("snapshot", "dsl", snap.String())

	if l.publisher != nil {
		if pubErr := l.publisher.PublishSnapshot(snap); pubErr != nil {
			l.log.Warn("publishing snapshot failed", "error", pubErr)
		}
	}

	if err := l.writer.Write(ctx, snap); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	l.log.Debug("snapshot written")
	return nil
}

// sleep waits for the interval. It returns false if ctx was cancelled first.
func (l *Loop) sleep(ctx context.Context) bool {
	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
