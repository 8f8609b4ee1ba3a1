// Package mongo contains the concrete persistence layer over the remote
// document store, including the connection manager that keeps one logical
// client session alive across transient network failures.
package mongo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	driver "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/singleflight"
)

// Status is the connection lifecycle state.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusDegraded     Status = "degraded"
	StatusClosed       Status = "closed"
)

// Sentinel errors surfaced by the connection manager.
var (
	// ErrRetriesExhausted means one full connect attempt sequence failed.
	// The caller may retry; the next triggered connect restarts the attempt
	// counter from zero.
	ErrRetriesExhausted = errors.New("document store connection retries exhausted")
	// ErrClosed means the manager has been shut down.
	ErrClosed = errors.New("connection manager is closed")
	// ErrNotConnected means no live session exists right now.
	ErrNotConnected = errors.New("document store is not connected")
)

// Conn is one logical client session against the document store. The manager
// owns it exclusively; callers receive it scoped to one operation and must
// not retain it across reconnects.
type Conn interface {
	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Collection(name string) *driver.Collection
}

// Dialer establishes client sessions. Abstracted so the connection state
// machine is testable without a running server.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// Options tunes the retry and liveness behavior of the manager.
type Options struct {
	// MaxRetries bounds the dial+probe attempts of one connect sequence.
	MaxRetries int
	// RetryDelay is the base backoff; attempt n sleeps RetryDelay * n.
	// Linear rather than exponential: the store is expected back within
	// seconds, not minutes.
	RetryDelay time.Duration
	// ConnectTimeout bounds each individual dial and liveness probe.
	ConnectTimeout time.Duration
	// HealthCheckInterval throttles liveness probes; a probe younger than
	// this vouches for the link without a fresh round trip.
	HealthCheckInterval time.Duration
}

// Snapshot is a read-only view of the connection state for diagnostics.
// Reading it never mutates the manager.
type Snapshot struct {
	Status         Status
	AttemptCount   int
	LastVerifiedAt time.Time
	LastProbeRTT   time.Duration
}

// ConnectionManager owns the single logical handle to the document store and
// runs the retry/backoff state machine plus a supervised background healer.
// All state transitions happen in short critical sections; no lock is held
// across a network call.
type ConnectionManager struct {
	dialer Dialer
	opts   Options
	logger *slog.Logger

	// Collapses concurrent connect callers into one in-flight attempt
	// sequence, so N waiters never produce N parallel dials.
	sf singleflight.Group

	mu             sync.Mutex
	status         Status
	attemptCount   int
	lastVerifiedAt time.Time
	lastProbeRTT   time.Duration
	conn           Conn

	healCh     chan struct{}
	stopCh     chan struct{}
	healerOnce sync.Once
	stopOnce   sync.Once
	wg         sync.WaitGroup

	// healCtx bounds every background reconnect; Close cancels it so
	// shutdown never waits out a retry sequence.
	healCtx    context.Context
	healCancel context.CancelFunc
}

// NewConnectionManager creates a manager in the Disconnected state. Nothing
// is dialed until Connect or Acquire is called.
func NewConnectionManager(dialer Dialer, opts Options, logger *slog.Logger) *ConnectionManager {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 5
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.HealthCheckInterval <= 0 {
		opts.HealthCheckInterval = 60 * time.Second
	}

	healCtx, healCancel := context.WithCancel(context.Background())

	return &ConnectionManager{
		dialer:     dialer,
		opts:       opts,
		logger:     logger,
		status:     StatusDisconnected,
		healCh:     make(chan struct{}, 1),
		stopCh:     make(chan struct{}),
		healCtx:    healCtx,
		healCancel: healCancel,
	}
}

// Connect establishes the client session. Idempotent: returns immediately
// when already connected. Concurrent callers share one attempt sequence.
func (cm *ConnectionManager) Connect(ctx context.Context) error {
	cm.mu.Lock()
	switch {
	case cm.status == StatusClosed:
		cm.mu.Unlock()

		return errors.WithStack(ErrClosed)
	case cm.status == StatusConnected && cm.conn != nil:
		cm.mu.Unlock()

		return nil
	}
	cm.mu.Unlock()

	_, err, _ := cm.sf.Do("connect", func() (any, error) {
		return nil, cm.runConnectSequence(ctx)
	})

	return err
}

// runConnectSequence performs up to MaxRetries dial+probe attempts with
// linear backoff. Exhaustion transitions to Disconnected and surfaces
// ErrRetriesExhausted; it never crashes the process.
func (cm *ConnectionManager) runConnectSequence(ctx context.Context) error {
	cm.mu.Lock()
	if cm.status == StatusConnected && cm.conn != nil {
		cm.mu.Unlock()

		return nil
	}
	if cm.status == StatusClosed {
		cm.mu.Unlock()

		return errors.WithStack(ErrClosed)
	}
	cm.status = StatusConnecting
	cm.attemptCount = 0
	cm.mu.Unlock()

	backoff := retry.WithMaxRetries(uint64(cm.opts.MaxRetries-1), retry.BackoffFunc(func() (time.Duration, bool) {
		cm.mu.Lock()
		n := cm.attemptCount
		cm.mu.Unlock()

		return cm.opts.RetryDelay * time.Duration(n), false
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		cm.mu.Lock()
		cm.attemptCount++
		attempt := cm.attemptCount
		cm.mu.Unlock()

		dialCtx, cancel := context.WithTimeout(ctx, cm.opts.ConnectTimeout)
		defer cancel()

		conn, dialErr := cm.dialer.Dial(dialCtx)
		if dialErr != nil {
			cm.logger.Error("Failed to dial document store",
				slog.Int("attempt", attempt),
				slog.Int("maxRetries", cm.opts.MaxRetries),
				slog.Any("error", dialErr))

			return retry.RetryableError(dialErr)
		}

		// Round-trip liveness probe before the handle goes live.
		if pingErr := conn.Ping(dialCtx); pingErr != nil {
			_ = conn.Disconnect(context.WithoutCancel(ctx))
			cm.logger.Error("Liveness probe failed after dial",
				slog.Int("attempt", attempt),
				slog.Int("maxRetries", cm.opts.MaxRetries),
				slog.Any("error", pingErr))

			return retry.RetryableError(pingErr)
		}

		cm.mu.Lock()
		// Closed is terminal. A dial that completes after Close must not
		// resurrect the manager; release the fresh session instead.
		if cm.status == StatusClosed {
			cm.mu.Unlock()
			_ = conn.Disconnect(context.WithoutCancel(ctx))

			return errors.WithStack(ErrClosed)
		}
		old := cm.conn
		cm.conn = conn
		cm.status = StatusConnected
		cm.lastVerifiedAt = time.Now()
		cm.mu.Unlock()

		if old != nil {
			_ = old.Disconnect(context.WithoutCancel(ctx))
		}

		cm.logger.Info("Connected to document store", slog.Int("attempts", attempt))

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrClosed) {
			return err
		}

		cm.mu.Lock()
		if cm.status != StatusClosed {
			cm.status = StatusDisconnected
		}
		cm.mu.Unlock()

		cm.logger.Error("Could not establish document store connection",
			slog.Int("maxRetries", cm.opts.MaxRetries),
			slog.Any("error", err))

		return errors.Wrapf(ErrRetriesExhausted, "after %d attempts: %v", cm.opts.MaxRetries, err)
	}

	return nil
}

// Acquire returns the live connection, dialing first when necessary. When the
// last verified probe is older than the configured interval, a background
// health check is scheduled without blocking the caller.
func (cm *ConnectionManager) Acquire(ctx context.Context) (Conn, error) {
	cm.mu.Lock()
	if cm.status == StatusClosed {
		cm.mu.Unlock()

		return nil, errors.WithStack(ErrClosed)
	}
	if cm.status == StatusConnected && cm.conn != nil {
		conn := cm.conn
		stale := time.Since(cm.lastVerifiedAt) > cm.opts.HealthCheckInterval
		cm.mu.Unlock()

		if stale {
			go func() {
				cm.HealthCheck(context.Background())
			}()
		}

		return conn, nil
	}
	cm.mu.Unlock()

	if err := cm.Connect(ctx); err != nil {
		return nil, err
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.status != StatusConnected || cm.conn == nil {
		return nil, errors.WithStack(ErrRetriesExhausted)
	}

	return cm.conn, nil
}

// HealthCheck verifies the link with a lightweight round trip, recording the
// response time. Probes are throttled: one performed within the configured
// interval vouches for the link. On failure the status drops to Degraded and
// the supervised healer is woken; the failure never propagates to the caller.
func (cm *ConnectionManager) HealthCheck(ctx context.Context) bool {
	cm.mu.Lock()
	if cm.status != StatusConnected && cm.status != StatusDegraded {
		cm.mu.Unlock()

		return false
	}
	conn := cm.conn
	if conn == nil {
		cm.mu.Unlock()

		return false
	}
	if cm.status == StatusConnected && time.Since(cm.lastVerifiedAt) < cm.opts.HealthCheckInterval {
		cm.mu.Unlock()

		return true
	}
	cm.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, cm.opts.ConnectTimeout)
	defer cancel()

	start := time.Now()
	if err := conn.Ping(probeCtx); err != nil {
		cm.logger.Warn("Liveness probe failed, scheduling background reconnect", slog.Any("error", err))

		cm.mu.Lock()
		if cm.status == StatusConnected {
			cm.status = StatusDegraded
		}
		cm.mu.Unlock()

		cm.ensureHealer()
		select {
		case cm.healCh <- struct{}{}:
		default:
		}

		return false
	}
	rtt := time.Since(start)

	cm.mu.Lock()
	cm.lastVerifiedAt = time.Now()
	cm.lastProbeRTT = rtt
	if cm.status == StatusDegraded {
		cm.status = StatusConnected
	}
	cm.mu.Unlock()

	cm.logger.Debug("Liveness probe succeeded", slog.Duration("rtt", rtt))

	return true
}

// ensureHealer starts the supervised background healer on first use. It runs
// until Close and owns all reconnection triggered by failed health checks.
func (cm *ConnectionManager) ensureHealer() {
	cm.healerOnce.Do(func() {
		cm.wg.Add(1)
		go cm.heal()
	})
}

func (cm *ConnectionManager) heal() {
	defer cm.wg.Done()
	for {
		select {
		case <-cm.stopCh:
			return
		case <-cm.healCh:
			cm.mu.Lock()
			if cm.status != StatusDegraded {
				cm.mu.Unlock()

				continue
			}
			old := cm.conn
			cm.conn = nil
			cm.status = StatusDisconnected
			cm.mu.Unlock()

			if old != nil {
				_ = old.Disconnect(context.Background())
			}

			// A failed reconnect is logged, never propagated: the caller that
			// observed the degraded link has already been answered. healCtx
			// is cancelled by Close, so a retry sequence in flight here never
			// outlives the manager.
			if err := cm.Connect(cm.healCtx); err != nil {
				cm.logger.Error("Background reconnect failed", slog.Any("error", err))

				continue
			}
			cm.logger.Info("Background reconnect succeeded")
		}
	}
}

// Close releases the client session and stops the healer. A second call is a
// no-op.
func (cm *ConnectionManager) Close(ctx context.Context) error {
	cm.mu.Lock()
	if cm.status == StatusClosed {
		cm.mu.Unlock()

		return nil
	}
	cm.status = StatusClosed
	conn := cm.conn
	cm.conn = nil
	cm.mu.Unlock()

	cm.stopOnce.Do(func() {
		close(cm.stopCh)
		cm.healCancel()
	})
	cm.wg.Wait()

	if conn != nil {
		return errors.Wrap(conn.Disconnect(ctx), "failed to disconnect document store client")
	}

	return nil
}

// Live returns the current session only while Connected. Unlike Acquire it
// never dials and never schedules a liveness probe, so diagnostics reads
// stay free of side effects.
func (cm *ConnectionManager) Live() (Conn, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	switch {
	case cm.status == StatusClosed:
		return nil, errors.WithStack(ErrClosed)
	case cm.status != StatusConnected || cm.conn == nil:
		return nil, errors.WithStack(ErrNotConnected)
	}

	return cm.conn, nil
}

// Snapshot returns the current diagnostics view without side effects.
func (cm *ConnectionManager) Snapshot() Snapshot {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return Snapshot{
		Status:         cm.status,
		AttemptCount:   cm.attemptCount,
		LastVerifiedAt: cm.lastVerifiedAt,
		LastProbeRTT:   cm.lastProbeRTT,
	}
}
