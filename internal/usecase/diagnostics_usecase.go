package usecase

import (
	"context"
	"time"
)

// StoreReport is the health endpoint's view of the document store.
type StoreReport struct {
	State          string
	AttemptCount   int
	LastVerifiedAt time.Time
	LastProbeRTT   time.Duration

	// Counts are present only while the store is connected.
	UserCount     *int64
	LoginLogCount *int64
}

// HealthReport summarizes service health for operators.
type HealthReport struct {
	Service string
	Store   StoreReport
}

// DiagnosticsUsecase defines the read-only health reporting operations.
// Reporting never mutates connection state; reconnection is owned by the
// store's own supervision.
type DiagnosticsUsecase interface {
	Health(ctx context.Context) *HealthReport
}
