package service

import "time"

// StoreStatus is a read-only view of the document store connection for
// diagnostics. Producing it must not mutate connection state.
type StoreStatus struct {
	State          string
	AttemptCount   int
	LastVerifiedAt time.Time
	LastProbeRTT   time.Duration
}

// StoreMonitor exposes the connection state to the health endpoint without
// granting access to the connection itself.
type StoreMonitor interface {
	Status() StoreStatus
}
