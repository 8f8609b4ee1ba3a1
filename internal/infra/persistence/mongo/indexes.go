package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique username index. Uniqueness is enforced at
// the storage layer so two concurrent registrations cannot both pass the
// application-level existence check and insert.
func EnsureIndexes(ctx context.Context, cm *ConnectionManager) error {
	conn, err := cm.Acquire(ctx)
	if err != nil {
		return wrapUnavailable(err)
	}

	_, err = conn.Collection(usersCollection).Indexes().CreateOne(ctx, driver.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return classifyStoreError(err, "failed to create unique username index")
}
