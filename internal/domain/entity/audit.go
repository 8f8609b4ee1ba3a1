// Package entity contains the core business objects of the project.
package entity

import "time"

// LoginMethod enumerates the authentication flows that produce audit entries.
type LoginMethod string

const (
	// MethodPasswordAndFace is the combined password + biometric login flow.
	MethodPasswordAndFace LoginMethod = "password_and_face"
	// MethodFederated is the external-identity login flow.
	MethodFederated LoginMethod = "federated"
)

// AuditLogEntry is an append-only record of a completed login decision.
// Entries are written only after the authentication outcome is final and
// are never mutated or deleted.
type AuditLogEntry struct {
	ID        string
	Username  string
	Method    LoginMethod
	Timestamp time.Time // Server clock at creation time.
}
