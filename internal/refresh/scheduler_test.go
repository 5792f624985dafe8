package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/cryptoboard/internal/market"
)

var (
	btcOnly = []market.Asset{{ID: "bitcoin", Name: "Bitcoin", CurrentPrice: 61000}}
	ethOnly = []market.Asset{{ID: "ethereum", Name: "Ethereum", CurrentPrice: 3000}}
)

var errUpstream = errors.New("upstream exploded")

// recorder collects listener snapshots.
type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) listen(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *recorder) last() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return State{}
	}
	return r.states[len(r.states)-1]
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestScheduler(f Fetcher, rec *recorder, interval time.Duration) *Scheduler {
	return New(f, Options{
		Interval: interval,
		Now:      fixedClock(time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)),
		Listener: rec.listen,
		Logger:   zerolog.Nop(),
	})
}

func TestNew_InitialState(t *testing.T) {
	s := New(FetcherFunc(func(context.Context) ([]market.Asset, error) { return nil, nil }), Options{})

	st := s.State()
	assert.True(t, st.Loading)
	assert.Empty(t, st.Assets)
	assert.False(t, st.HasError())
	assert.False(t, st.HasData())
	assert.Equal(t, DefaultInterval, s.Interval())
}

func TestStart_FetchesImmediately(t *testing.T) {
	rec := &recorder{}
	var calls atomic.Int32
	fetcher := FetcherFunc(func(context.Context) ([]market.Asset, error) {
		calls.Add(1)
		return btcOnly, nil
	})

	s := newTestScheduler(fetcher, rec, time.Hour)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.Eventually(t, func() bool { return s.State().Cycle == 1 }, time.Second, time.Millisecond)

	st := s.State()
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, st.Loading)
	assert.Equal(t, btcOnly, st.Assets)
	assert.Empty(t, st.Err)
	assert.Equal(t, time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC), st.LastUpdated)
	assert.True(t, st.HasData())
}

func TestStart_Twice(t *testing.T) {
	s := newTestScheduler(FetcherFunc(func(context.Context) ([]market.Asset, error) { return nil, nil }), &recorder{}, time.Hour)
	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)

	s.Stop()
	assert.ErrorIs(t, s.Start(context.Background()), ErrStopped)
}

func TestScheduler_RefreshesEveryInterval(t *testing.T) {
	var calls atomic.Int32
	fetcher := FetcherFunc(func(context.Context) ([]market.Asset, error) {
		calls.Add(1)
		return btcOnly, nil
	})

	s := newTestScheduler(fetcher, &recorder{}, 5*time.Millisecond)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, time.Millisecond)
}

func TestScheduler_FailureKeepsPreviousAssets(t *testing.T) {
	var calls atomic.Int32
	fetcher := FetcherFunc(func(context.Context) ([]market.Asset, error) {
		if calls.Add(1) == 1 {
			return btcOnly, nil
		}
		return nil, errUpstream
	})

	rec := &recorder{}
	s := newTestScheduler(fetcher, rec, 5*time.Millisecond)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.Eventually(t, func() bool {
		st := s.State()
		return st.Failures >= 1 && st.HasData()
	}, 2*time.Second, time.Millisecond)

	st := s.State()
	assert.Equal(t, FailureMessage, st.Err)
	assert.True(t, st.HasError())
	assert.Equal(t, btcOnly, st.Assets, "stale-but-available")
	assert.True(t, st.HasData())
}

func TestFinish_SuccessClearsError(t *testing.T) {
	rec := &recorder{}
	s := newTestScheduler(nil, rec, time.Hour)
	log := zerolog.Nop()
	ctx := context.Background()

	gen, ok := s.begin()
	require.True(t, ok)
	s.finish(ctx, gen, nil, errUpstream, log)
	assert.Equal(t, FailureMessage, s.State().Err)
	assert.Equal(t, 1, s.State().Failures)

	gen, _ = s.begin()
	s.finish(ctx, gen, ethOnly, nil, log)

	st := s.State()
	assert.Empty(t, st.Err)
	assert.Zero(t, st.Failures)
	assert.Equal(t, ethOnly, st.Assets)
}

func TestFinish_LoadingTracksEachCycle(t *testing.T) {
	rec := &recorder{}
	s := newTestScheduler(nil, rec, time.Hour)
	ctx := context.Background()

	gen, _ := s.begin()
	assert.True(t, rec.last().Loading)

	s.finish(ctx, gen, nil, errUpstream, zerolog.Nop())
	assert.False(t, rec.last().Loading, "loading cleared on failure too")
	assert.Equal(t, 2, rec.count())
}

func TestFinish_StaleGenerationIsDiscarded(t *testing.T) {
	rec := &recorder{}
	s := newTestScheduler(nil, rec, time.Hour)
	log := zerolog.Nop()
	ctx := context.Background()

	slow, _ := s.begin()
	fast, _ := s.begin()

	s.finish(ctx, fast, ethOnly, nil, log)
	assert.True(t, s.State().Loading, "slow fetch still in flight")

	s.finish(ctx, slow, btcOnly, nil, log)

	st := s.State()
	assert.Equal(t, ethOnly, st.Assets)
	assert.Equal(t, fast, st.Cycle)
	assert.False(t, st.Loading)
}

func TestFinish_StaleFailureDoesNotOverrideNewerSuccess(t *testing.T) {
	s := newTestScheduler(nil, &recorder{}, time.Hour)
	ctx := context.Background()

	slow, _ := s.begin()
	fast, _ := s.begin()
	s.finish(ctx, fast, ethOnly, nil, zerolog.Nop())
	s.finish(ctx, slow, nil, errUpstream, zerolog.Nop())

	assert.False(t, s.State().HasError())
}

func TestStop_DiscardsLateResult(t *testing.T) {
	rec := &recorder{}
	s := newTestScheduler(nil, rec, time.Hour)

	gen, ok := s.begin()
	require.True(t, ok)
	before := s.State()
	notified := rec.count()

	s.Stop()
	s.finish(context.Background(), gen, btcOnly, nil, zerolog.Nop())

	assert.Equal(t, before, s.State())
	assert.Equal(t, notified, rec.count())

	_, ok = s.begin()
	assert.False(t, ok)
}

func TestStop_WithFetchInFlight(t *testing.T) {
	started := make(chan struct{})
	fetcher := FetcherFunc(func(ctx context.Context) ([]market.Asset, error) {
		close(started)
		<-ctx.Done()
		// a response that arrives after teardown
		return btcOnly, nil
	})

	rec := &recorder{}
	s := newTestScheduler(fetcher, rec, time.Hour)
	require.NoError(t, s.Start(context.Background()))

	<-started
	notified := rec.count()
	before := s.State()

	s.Stop()

	assert.Equal(t, notified, rec.count(), "no notification after Stop")
	assert.Equal(t, before, s.State(), "no mutation after Stop")
	assert.Empty(t, s.State().Assets)
}

func TestStop_ParentContextCancelled(t *testing.T) {
	started := make(chan struct{})
	fetcher := FetcherFunc(func(ctx context.Context) ([]market.Asset, error) {
		close(started)
		<-ctx.Done()
		return btcOnly, nil
	})

	rec := &recorder{}
	s := newTestScheduler(fetcher, rec, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	<-started
	require.True(t, s.State().Loading)
	cancel()

	require.Eventually(t, func() bool { return !s.State().Loading }, time.Second, time.Millisecond,
		"cancelled cycle must not leave the scheduler loading")

	st := s.State()
	assert.Empty(t, st.Assets, "late result is not applied")
	assert.False(t, st.HasError(), "cancellation is not reported as a failure")
	assert.Zero(t, st.Cycle)
	assert.False(t, rec.last().Loading)
}

func TestFinish_CancelledContextEndsCycle(t *testing.T) {
	rec := &recorder{}
	s := newTestScheduler(nil, rec, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	gen, _ := s.begin()
	cancel()
	s.finish(ctx, gen, btcOnly, nil, zerolog.Nop())

	st := s.State()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Assets)
	assert.Zero(t, st.Cycle)
}

func TestStop_BeforeStart(t *testing.T) {
	s := newTestScheduler(nil, &recorder{}, time.Hour)
	s.Stop()
	s.Stop()
	assert.ErrorIs(t, s.Start(context.Background()), ErrStopped)
}
