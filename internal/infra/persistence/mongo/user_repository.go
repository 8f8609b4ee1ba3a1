package mongo

import (
	"context"
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	"github.com/JustKota/FrvttaeProyect/internal/domain/repository"
	"github.com/JustKota/FrvttaeProyect/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

// userRepository implements repository.UserRepository over the document store.
// Every operation acquires the connection for exactly one logical step; the
// handle is never held across unrelated operations.
type userRepository struct {
	cm *ConnectionManager
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(cm *ConnectionManager) repository.UserRepository {
	return &userRepository{cm: cm}
}

func (repo *userRepository) collection(ctx context.Context) (*driver.Collection, error) {
	conn, err := repo.cm.Acquire(ctx)
	if err != nil {
		return nil, wrapUnavailable(err)
	}

	return conn.Collection(usersCollection), nil
}

// FindByUsername retrieves one user record by its unique username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.UserRecord, error) {
	coll, err := repo.collection(ctx)
	if err != nil {
		return nil, err
	}

	var userM model.UserModel
	if err := coll.FindOne(ctx, bson.M{"username": username}).Decode(&userM); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}

		return nil, classifyStoreError(err, "failed to find user by username")
	}

	return model.ToUserDomain(&userM), nil
}

// Insert persists a new record. A duplicate username surfaces as
// ErrUsernameTaken via the unique index.
func (repo *userRepository) Insert(ctx context.Context, rec *entity.UserRecord) (string, error) {
	coll, err := repo.collection(ctx)
	if err != nil {
		return "", err
	}

	userM := model.FromUserDomain(rec)
	if userM.CreatedAt.IsZero() {
		userM.CreatedAt = time.Now()
	}

	res, err := coll.InsertOne(ctx, userM)
	if err != nil {
		if driver.IsDuplicateKeyError(err) {
			return "", errors.WithStack(repository.ErrUsernameTaken)
		}

		return "", classifyStoreError(err, "failed to insert user")
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	rec.ID = oid.Hex()
	rec.CreatedAt = userM.CreatedAt

	return rec.ID, nil
}

// Update applies a partial update to the record with the given username.
func (repo *userRepository) Update(ctx context.Context, username string, fields entity.UserUpdate) error {
	set := bson.M{}
	if fields.Email != nil {
		set["email"] = *fields.Email
	}
	if fields.Role != nil {
		set["role"] = fields.Role.String()
	}
	if len(set) == 0 {
		return nil
	}

	coll, err := repo.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx, bson.M{"username": username}, bson.M{"$set": set})
	if err != nil {
		return classifyStoreError(err, "failed to update user")
	}
	if res.MatchedCount == 0 {
		return errors.WithStack(repository.ErrUserNotFound)
	}

	return nil
}

// SetRole persists the role for a record. Writing the same value twice is
// harmless, which keeps the legacy-role normalization idempotent under
// concurrent logins.
func (repo *userRepository) SetRole(ctx context.Context, username string, role entity.Role) error {
	coll, err := repo.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"role": role.String()}})
	if err != nil {
		return classifyStoreError(err, "failed to set user role")
	}
	if res.MatchedCount == 0 {
		return errors.WithStack(repository.ErrUserNotFound)
	}

	return nil
}

// Delete removes the record with the given username.
func (repo *userRepository) Delete(ctx context.Context, username string) error {
	coll, err := repo.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return classifyStoreError(err, "failed to delete user")
	}
	if res.DeletedCount == 0 {
		return errors.WithStack(repository.ErrUserNotFound)
	}

	return nil
}

// Count returns the number of stored user records. It reads through Live so
// a diagnostics call never dials or schedules a probe as a side effect.
func (repo *userRepository) Count(ctx context.Context) (int64, error) {
	conn, err := repo.cm.Live()
	if err != nil {
		return 0, wrapUnavailable(err)
	}
	coll := conn.Collection(usersCollection)

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, classifyStoreError(err, "failed to count users")
	}

	return n, nil
}
