package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/puzzleworks/daily-riddle/internal/puzzle"
	"github.com/puzzleworks/daily-riddle/internal/schedule"
	"github.com/puzzleworks/daily-riddle/internal/verify"
)

// StoreFactory yields the session store scoped to one device.
type StoreFactory func(deviceID string) SessionStore

// ManagerOptions configures the engine manager.
type ManagerOptions struct {
	SettleDelay time.Duration
	Now         func() time.Time // defaults to time.Now
	Scheduler   Scheduler        // defaults to TimerScheduler
}

// Manager hands out one engine per device for the current local day. When the
// day rolls over, the old engine is discarded wholesale: any settle timers it
// still has pending mutate only the discarded instance, which supersedes them
// without explicit cancellation.
type Manager struct {
	pool     *puzzle.Pool
	stores   StoreFactory
	verifier *verify.Verifier
	sched    Scheduler
	settle   time.Duration
	now      func() time.Time
	logger   zerolog.Logger

	orders schedule.OrderCache

	mu      sync.Mutex
	engines map[string]*Engine
}

// NewManager builds the manager over the immutable pool.
func NewManager(pool *puzzle.Pool, stores StoreFactory, verifier *verify.Verifier, opts ManagerOptions, logger zerolog.Logger) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	return &Manager{
		pool:     pool,
		stores:   stores,
		verifier: verifier,
		sched:    opts.Scheduler,
		settle:   opts.SettleDelay,
		now:      opts.Now,
		logger:   logger,
		engines:  make(map[string]*Engine),
	}
}

// EngineFor returns the device's engine for today, resuming persisted
// progress or resetting it if the stored date is stale.
func (m *Manager) EngineFor(ctx context.Context, deviceID string) (*Engine, error) {
	now := m.now()
	today := schedule.DateKey(now)

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.engines[deviceID]; ok && e.Date() == today {
		return e, nil
	}

	offset := schedule.DayOffset(now)
	order := m.orders.Get(m.pool.IDs(), schedule.MasterSeed)
	set := make([]puzzle.Puzzle, 0, schedule.PuzzlesPerDay)
	for _, id := range schedule.DailySet(offset, order) {
		p, ok := m.pool.Get(id)
		if !ok {
			return nil, fmt.Errorf("master order references unknown puzzle %d", id)
		}
		set = append(set, p)
	}

	store := m.stores(deviceID)
	sess, err := store.Load(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("load day session: %w", err)
	}

	e := NewEngine(offset, set, sess, store, m.verifier, m.sched, m.settle, m.logger.With().Str("device", deviceID).Logger())
	m.engines[deviceID] = e
	return e, nil
}

// Now exposes the manager's clock for countdown rendering.
func (m *Manager) Now() time.Time {
	return m.now()
}
