// Package refresh drives the periodic fetch-and-replace of the asset list.
//
// A Scheduler fetches immediately on Start and then once per interval. Each
// fetch is stamped with a generation number; a result is applied only when it
// is newer than the last applied one, so a slow response can never overwrite
// fresher data. Failures keep the previous asset list (stale-but-available)
// and record a fixed message; the cause is only logged.
//
// After Stop returns the scheduler neither mutates its state nor notifies its
// listener again, even when a fetch that was in flight completes later.
package refresh

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/cryptoboard/internal/market"
)

// DefaultInterval is the refresh period.
const DefaultInterval = 60 * time.Second

// FailureMessage is the only error text exposed to the presentation layer.
const FailureMessage = "Failed to fetch cryptos"

// Lifecycle errors.
var (
	ErrAlreadyStarted = errors.New("scheduler already started")
	ErrStopped        = errors.New("scheduler stopped")
)

// Fetcher is the data source polled by the scheduler.
type Fetcher interface {
	FetchAssets(ctx context.Context) ([]market.Asset, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]market.Asset, error)

// FetchAssets calls f.
func (f FetcherFunc) FetchAssets(ctx context.Context) ([]market.Asset, error) {
	return f(ctx)
}

// Listener receives a snapshot after every state change. Calls are
// serialized. A Listener must not call Stop.
type Listener func(State)

// Options configures a Scheduler. Zero values select defaults.
type Options struct {
	Interval time.Duration
	Now      func() time.Time
	Listener Listener
	Logger   zerolog.Logger
}

// Scheduler is a cancellable repeating fetch task.
type Scheduler struct {
	fetcher  Fetcher
	interval time.Duration
	now      func() time.Time
	listener Listener
	logger   zerolog.Logger

	// notifyMu serializes listener calls and orders them against Stop.
	notifyMu sync.Mutex

	// mu guards everything below.
	mu       sync.Mutex
	state    State
	issued   uint64
	applied  uint64
	inFlight int
	started  bool
	stopped  bool
	cancel   context.CancelFunc

	group errgroup.Group
}

// New creates a Scheduler in the initial loading state. Nothing is fetched until Start.
func New(fetcher Fetcher, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Listener == nil {
		opts.Listener = func(State) {}
	}

	return &Scheduler{
		fetcher:  fetcher,
		interval: opts.Interval,
		now:      opts.Now,
		listener: opts.Listener,
		logger:   opts.Logger.With().Str("component", "refresh").Logger(),
		state:    State{Loading: true},
	}
}

// Interval returns the refresh period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// State returns the current snapshot.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start fires the first fetch immediately and then one per interval until
// Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.logger.Info().Dur("interval", s.interval).Msg("refresh scheduler started")
	s.group.Go(func() error {
		s.run(runCtx)
		return nil
	})
	return nil
}

// Stop cancels the timer and in-flight fetches and waits for them to return.
// It is safe to call more than once and before Start.
func (s *Scheduler) Stop() {
	s.notifyMu.Lock()
	s.mu.Lock()
	wasRunning := s.started && !s.stopped
	s.stopped = true
	cancel := s.cancel
	s.mu.Unlock()
	s.notifyMu.Unlock()

	if cancel != nil {
		cancel()
	}
	_ = s.group.Wait()

	if wasRunning {
		s.logger.Info().Msg("refresh scheduler stopped")
	}
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.trigger(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

// trigger starts one refresh cycle on its own goroutine. Cycles may overlap
// when a fetch outlives the interval.
func (s *Scheduler) trigger(ctx context.Context) {
	gen, ok := s.begin()
	if !ok {
		return
	}

	s.group.Go(func() error {
		log := s.logger.With().
			Str("cycle_id", ulid.Make().String()).
			Uint64("generation", gen).
			Logger()

		start := s.now()
		assets, err := s.fetcher.FetchAssets(log.WithContext(ctx))
		log.Debug().Dur("duration_ms", s.now().Sub(start)).Msg("fetch returned")

		s.finish(ctx, gen, assets, err, log)
		return nil
	})
}

// begin enters Loading and issues the next generation.
func (s *Scheduler) begin() (uint64, bool) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return 0, false
	}
	s.issued++
	gen := s.issued
	s.inFlight++
	s.state.Loading = true
	snap := s.state
	s.mu.Unlock()

	s.listener(snap)
	return gen, true
}

// finish applies the outcome of generation gen unless the scheduler was
// stopped or a newer generation has already been applied. A result that
// arrives after ctx was cancelled is dropped but still ends its cycle.
func (s *Scheduler) finish(ctx context.Context, gen uint64, assets []market.Asset, err error, log zerolog.Logger) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		log.Debug().Msg("discarding result after stop")
		return
	}

	s.inFlight--
	switch {
	case ctx.Err() != nil:
		log.Debug().Msg("discarding result after cancellation")
	case gen <= s.applied:
		log.Debug().Uint64("applied", s.applied).Msg("discarding stale result")
	case err != nil:
		s.applied = gen
		s.state.Cycle = gen
		s.state.Err = FailureMessage
		s.state.Failures++
		log.Warn().Err(err).Int("consecutive_failures", s.state.Failures).Msg("refresh failed, keeping previous assets")
	default:
		s.applied = gen
		s.state.Cycle = gen
		s.state.Assets = assets
		s.state.Err = ""
		s.state.Failures = 0
		s.state.LastUpdated = s.now()
		log.Info().Int("assets", len(assets)).Msg("refresh succeeded")
	}
	s.state.Loading = s.inFlight > 0
	snap := s.state
	s.mu.Unlock()

	s.listener(snap)
}
