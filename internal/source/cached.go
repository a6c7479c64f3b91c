package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"dashboard/internal/domain"
	"dashboard/internal/domain/models"
	"dashboard/internal/metrics"
	"dashboard/internal/utils"
)

// State tells whether a snapshot holds records yet.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
)

// Snapshot is the collection the dashboard currently serves. Records must be
// treated as read-only; they are shared between callers.
type Snapshot struct {
	State     State
	Records   []models.User
	FetchedAt time.Time
	// Err is the last load failure. A ready snapshot keeps serving its
	// previous records when a refresh fails.
	Err error
}

func (s Snapshot) Ready() bool { return s.State == StateReady }

// Failed reports a snapshot whose loads have all failed so far.
func (s Snapshot) Failed() bool { return !s.Ready() && s.Err != nil }

const (
	defaultTTL         = time.Minute
	defaultLoadTimeout = 15 * time.Second
)

// Cached wraps a Source with a refreshing in-memory snapshot. Loads are
// de-duplicated; readers never wait on the network through Snapshot.
type Cached struct {
	src         Source
	store       SnapshotStore
	metrics     *metrics.Metrics
	ttl         time.Duration
	retryDelay  time.Duration
	interval    time.Duration
	loadTimeout time.Duration
	now         func() time.Time

	group      singleflight.Group
	refreshing atomic.Bool

	mu       sync.RWMutex
	snap     Snapshot
	failedAt time.Time
}

// Option configures a Cached source.
type Option func(*Cached)

// WithTTL sets how old a snapshot may get before a read triggers a refresh.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cached) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRetryDelay sets how long reads wait after a failed load before
// triggering another one. It defaults to the TTL.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Cached) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

// WithRefreshInterval sets the period used by Run.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Cached) { c.interval = d }
}

// WithStore mirrors snapshots into a shared store.
func WithStore(store SnapshotStore) Option {
	return func(c *Cached) { c.store = store }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cached) { c.metrics = m }
}

// WithClock replaces time.Now; used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cached) {
		if now != nil {
			c.now = now
		}
	}
}

func NewCached(src Source, opts ...Option) *Cached {
	c := &Cached{
		src:         src,
		ttl:         defaultTTL,
		loadTimeout: defaultLoadTimeout,
		now:         time.Now,
		snap:        Snapshot{State: StatePending},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.retryDelay <= 0 {
		c.retryDelay = c.ttl
	}
	return c
}

// Snapshot returns the current snapshot without blocking. A pending or stale
// snapshot starts a background load unless the last load failed less than
// the retry delay ago.
func (c *Cached) Snapshot(ctx context.Context) Snapshot {
	snap := c.current()
	if (!snap.Ready() || c.stale(snap)) && !c.backingOff() {
		c.refreshAsync()
	}
	return snap
}

// Refresh reloads from the source, bypassing the shared store.
func (c *Cached) Refresh(ctx context.Context) (Snapshot, error) {
	return c.load(ctx, true)
}

// Run refreshes on the configured interval until ctx is done. It does nothing
// when no interval is set.
func (c *Cached) Run(ctx context.Context) {
	if c.interval <= 0 {
		return
	}
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			loadCtx, cancel := context.WithTimeout(ctx, c.loadTimeout)
			if _, err := c.load(loadCtx, true); err != nil && !errors.Is(err, context.Canceled) {
				utils.LogError("", "source", "scheduled_refresh", err)
			}
			cancel()
		}
	}
}

func (c *Cached) current() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func (c *Cached) backingOff() bool {
	c.mu.RLock()
	failedAt := c.failedAt
	c.mu.RUnlock()
	return !failedAt.IsZero() && c.now().Sub(failedAt) < c.retryDelay
}

func (c *Cached) stale(s Snapshot) bool {
	return s.Ready() && c.now().Sub(s.FetchedAt) >= c.ttl
}

func (c *Cached) refreshAsync() {
	if !c.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.refreshing.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), c.loadTimeout)
		defer cancel()
		if _, err := c.load(ctx, false); err != nil {
			utils.LogError("", "source", "background_refresh", err)
		}
	}()
}

func (c *Cached) load(ctx context.Context, force bool) (Snapshot, error) {
	key := "load"
	if force {
		key = "refresh"
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if !force {
			if snap, ok := c.loadFromStore(ctx); ok {
				return snap, nil
			}
		}
		return c.loadFromSource(ctx)
	})
	if err != nil {
		return c.current(), err
	}
	return v.(Snapshot), nil
}

func (c *Cached) loadFromStore(ctx context.Context) (Snapshot, bool) {
	if c.store == nil {
		return Snapshot{}, false
	}
	stored, ok, err := c.store.Load(ctx)
	if err != nil {
		utils.LogError("", "source", "store_load", err)
		return Snapshot{}, false
	}
	if !ok || c.now().Sub(stored.FetchedAt) >= c.ttl {
		return Snapshot{}, false
	}
	if cur := c.current(); cur.Ready() && !stored.FetchedAt.After(cur.FetchedAt) {
		return Snapshot{}, false
	}
	c.metrics.ObserveSourceLoad(c.src.Name(), "store", 0)
	return c.set(stored.Records, stored.FetchedAt), true
}

func (c *Cached) loadFromSource(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	records, err := c.src.List(ctx)
	if err != nil {
		c.metrics.ObserveSourceLoad(c.src.Name(), "error", time.Since(start))
		err = domain.UnavailableError{Source: c.src.Name(), Err: err}
		c.setErr(err)
		return Snapshot{}, err
	}
	c.metrics.ObserveSourceLoad(c.src.Name(), "ok", time.Since(start))

	snap := c.set(records, c.now())
	utils.LogEvent("", "source", "load", fmt.Sprintf("source=%s records=%d", c.src.Name(), len(records)))

	if c.store != nil {
		if err := c.store.Save(ctx, StoredSnapshot{Records: records, FetchedAt: snap.FetchedAt}, c.ttl); err != nil {
			utils.LogError("", "source", "store_save", err)
		}
	}
	return snap, nil
}

func (c *Cached) set(records []models.User, at time.Time) Snapshot {
	if records == nil {
		records = []models.User{}
	}
	c.mu.Lock()
	c.snap = Snapshot{State: StateReady, Records: records, FetchedAt: at}
	c.failedAt = time.Time{}
	snap := c.snap
	c.mu.Unlock()

	c.metrics.SetSnapshotRecords(len(records))
	return snap
}

func (c *Cached) setErr(err error) {
	c.mu.Lock()
	c.snap.Err = err
	c.failedAt = c.now()
	c.mu.Unlock()
}
