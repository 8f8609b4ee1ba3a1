package mongo

import (
	"context"
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	"github.com/JustKota/FrvttaeProyect/internal/domain/repository"
	"github.com/JustKota/FrvttaeProyect/internal/infra/persistence/model"

	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const loginLogsCollection = "login_logs"

// auditRepository implements repository.AuditLogRepository over the
// append-only login_logs collection. No update or delete path exists.
type auditRepository struct {
	cm *ConnectionManager
}

// NewAuditLogRepository is the constructor for auditRepository.
func NewAuditLogRepository(cm *ConnectionManager) repository.AuditLogRepository {
	return &auditRepository{cm: cm}
}

func (repo *auditRepository) collection(ctx context.Context) (*driver.Collection, error) {
	conn, err := repo.cm.Acquire(ctx)
	if err != nil {
		return nil, wrapUnavailable(err)
	}

	return conn.Collection(loginLogsCollection), nil
}

// Append writes one entry with the server clock as its timestamp.
func (repo *auditRepository) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	coll, err := repo.collection(ctx)
	if err != nil {
		return err
	}

	logM := model.FromAuditDomain(entry)
	if logM.Timestamp.IsZero() {
		logM.Timestamp = time.Now()
	}

	if _, err := coll.InsertOne(ctx, logM); err != nil {
		return classifyStoreError(err, "failed to append audit log entry")
	}

	return nil
}

// List returns entries ordered newest first.
func (repo *auditRepository) List(ctx context.Context, limit int64) ([]*entity.AuditLogEntry, error) {
	coll, err := repo.collection(ctx)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		findOpts = findOpts.SetLimit(limit)
	}

	cursor, err := coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, classifyStoreError(err, "failed to list audit log entries")
	}
	defer cursor.Close(ctx)

	var entries []*entity.AuditLogEntry
	for cursor.Next(ctx) {
		var logM model.LoginLogModel
		if err := cursor.Decode(&logM); err != nil {
			return nil, classifyStoreError(err, "failed to decode audit log entry")
		}
		entries = append(entries, model.ToAuditDomain(&logM))
	}
	if err := cursor.Err(); err != nil {
		return nil, classifyStoreError(err, "failed to iterate audit log entries")
	}

	return entries, nil
}

// Count returns the number of stored audit entries. It reads through Live so
// a diagnostics call never dials or schedules a probe as a side effect.
func (repo *auditRepository) Count(ctx context.Context) (int64, error) {
	conn, err := repo.cm.Live()
	if err != nil {
		return 0, wrapUnavailable(err)
	}
	coll := conn.Collection(loginLogsCollection)

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, classifyStoreError(err, "failed to count audit log entries")
	}

	return n, nil
}
