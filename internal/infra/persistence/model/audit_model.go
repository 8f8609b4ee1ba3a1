package model

import (
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginLogModel is the bson document stored in the login_logs collection.
type LoginLogModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	LoginType string             `bson:"login_type"`
	Timestamp time.Time          `bson:"timestamp"`
}

// ToAuditDomain converts a stored document to a domain AuditLogEntry.
func ToAuditDomain(data *LoginLogModel) *entity.AuditLogEntry {
	if data == nil {
		return nil
	}

	entry := &entity.AuditLogEntry{
		Username:  data.Username,
		Method:    entity.LoginMethod(data.LoginType),
		Timestamp: data.Timestamp,
	}
	if !data.ID.IsZero() {
		entry.ID = data.ID.Hex()
	}

	return entry
}

// FromAuditDomain converts a domain AuditLogEntry to its bson document form.
func FromAuditDomain(data *entity.AuditLogEntry) *LoginLogModel {
	if data == nil {
		return nil
	}

	return &LoginLogModel{
		Username:  data.Username,
		LoginType: string(data.Method),
		Timestamp: data.Timestamp,
	}
}
