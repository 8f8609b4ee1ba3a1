package repository

import (
	"context"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
)

// AuditLogRepository is the append-only repository over login audit entries.
type AuditLogRepository interface {
	// Append writes one entry. Entries are never mutated or deleted.
	Append(ctx context.Context, entry *entity.AuditLogEntry) error

	// List returns entries ordered by timestamp, newest first.
	List(ctx context.Context, limit int64) ([]*entity.AuditLogEntry, error)

	// Count returns the number of stored audit entries.
	Count(ctx context.Context) (int64, error)
}
