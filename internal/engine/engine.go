package engine

import (
	"context"
	"sync"
	"time"

	game_log "github.com/ingyamilmolinar/vscroll/internal/log"
	"github.com/ingyamilmolinar/vscroll/internal/scene"
	"github.com/ingyamilmolinar/vscroll/internal/scroll"
)

// Event is published after every frame the Runner steps.
type Event struct {
	Frame int64
	Stats scene.Stats
}

// Stepper is the part of a scene the Runner drives.
type Stepper interface {
	Step(b scroll.Bounds, now time.Time)
	Bounds() scroll.Bounds
	Stats() scene.Stats
}

// Runner steps a scene on its own goroutine at a fixed tick rate. It is the
// headless counterpart of ebiten's update loop.
type Runner struct {
	Events chan Event

	sc       Stepper
	interval time.Duration
	now      func() time.Time
	logger   *game_log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

type Option func(*Runner)

// WithClock sets the clock handed to every Step.
func WithClock(now func() time.Time) Option { return func(r *Runner) { r.now = now } }

// NewRunner starts stepping sc tps times per second until ctx is done or
// Close is called.
func NewRunner(ctx context.Context, sc Stepper, tps int, logger *game_log.Logger, opts ...Option) *Runner {
	if tps <= 0 {
		tps = 60
	}
	ctx, cancel := context.WithCancel(ctx)
	r := &Runner{
		Events:   make(chan Event, 16),
		sc:       sc,
		interval: time.Second / time.Duration(tps),
		now:      time.Now,
		logger:   logger.Tag("ENGINE"),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(r)
	}
	go r.run()
	return r
}

func (r *Runner) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	r.logger.Debugf("runner started at %v per tick", r.interval)
	for {
		select {
		case <-ticker.C:
			r.sc.Step(r.sc.Bounds(), r.now())
			st := r.sc.Stats()
			select {
			case r.Events <- Event{Frame: st.Frames, Stats: st}:
			default:
			}
		case <-r.ctx.Done():
			r.logger.Debugf("runner stopped")
			return
		}
	}
}

// Done is closed once the run loop has exited.
func (r *Runner) Done() <-chan struct{} { return r.done }

// Close stops the run loop and waits for it to exit. Safe to call twice.
func (r *Runner) Close() {
	r.once.Do(r.cancel)
	<-r.done
}
