// Package model contains the bson persistence models and their mappers to
// pure domain entities.
package model

import (
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserModel is the bson document stored in the users collection. Optional
// fields are omitted when empty; legacy documents may lack role and kind
// entirely, which maps to the entity zero values and is healed on first use.
type UserModel struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email,omitempty"`
	PasswordHash string             `bson:"password,omitempty"`
	Role         string             `bson:"role,omitempty"`
	Kind         string             `bson:"kind,omitempty"`
	FaceEncoding []float64          `bson:"face_encoding,omitempty"`
	FaceImage    []byte             `bson:"face_image,omitempty"`
	FederatedID  string             `bson:"federated_id,omitempty"`
	CreatedAt    time.Time          `bson:"created_at,omitempty"`
}

// ToUserDomain converts a stored document to a domain UserRecord.
func ToUserDomain(data *UserModel) *entity.UserRecord {
	if data == nil {
		return nil
	}

	rec := &entity.UserRecord{
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		Kind:         entity.PrincipalKind(data.Kind),
		FaceImage:    data.FaceImage,
		FederatedID:  data.FederatedID,
		CreatedAt:    data.CreatedAt,
	}
	if !data.ID.IsZero() {
		rec.ID = data.ID.Hex()
	}
	if len(data.FaceEncoding) > 0 {
		rec.FaceEmbedding = entity.Embedding(data.FaceEncoding)
	}

	return rec
}

// FromUserDomain converts a domain UserRecord to its bson document form.
// The id is left for the store to assign.
func FromUserDomain(data *entity.UserRecord) *UserModel {
	if data == nil {
		return nil
	}

	return &UserModel{
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
		Kind:         data.Kind.String(),
		FaceEncoding: data.FaceEmbedding,
		FaceImage:    data.FaceImage,
		FederatedID:  data.FederatedID,
		CreatedAt:    data.CreatedAt,
	}
}
