package mongo

import (
	"context"

	"github.com/JustKota/FrvttaeProyect/internal/domain/repository"
	"github.com/JustKota/FrvttaeProyect/internal/errors"

	driver "go.mongodb.org/mongo-driver/mongo"
)

// classifyStoreError maps driver failures to the repository sentinels so
// callers can tell a retryable outage apart from a final answer. Unknown
// errors pass through wrapped.
func classifyStoreError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if driver.IsNetworkError(err) || driver.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(repository.ErrStoreUnavailable, "%s: %v", msg, err)
	}

	return errors.Wrap(err, msg)
}

// wrapUnavailable marks a connection manager failure as the retryable
// store-unavailable sentinel.
func wrapUnavailable(err error) error {
	return errors.Wrapf(repository.ErrStoreUnavailable, "%v", err)
}
