package usecase

import (
	"context"
	"time"
)

// LoginRecord is one audit trail entry as exposed to administrators.
type LoginRecord struct {
	Username  string
	Method    string
	Timestamp time.Time
}

// AdminUsecase defines administrator-only operations over accounts and the
// login audit trail.
type AdminUsecase interface {
	ListLoginRecords(ctx context.Context, limit int64) ([]LoginRecord, error)
	DeleteUser(ctx context.Context, username string) error
}
