// Package entity contains the core business objects of the project.
package entity

// Role represents the authorization level a user holds in the system.
type Role string

const (
	// RoleNormal indicates a regular account.
	RoleNormal Role = "normal"
	// RoleAdmin indicates an administrative account.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a known value. Legacy records carry the
// zero value, which is not valid and must be healed to RoleNormal.
func (r Role) IsValid() bool {
	switch r {
	case RoleNormal, RoleAdmin:
		return true
	default:
		return false
	}
}

// PrincipalKind distinguishes how a principal is allowed to authenticate.
// A federated principal has no password hash and no face embedding, and is
// rejected from password or face login outright rather than failing on
// missing fields.
type PrincipalKind string

const (
	// KindPassword is a locally registered account (password + face biometric).
	KindPassword PrincipalKind = "password"
	// KindFederated is an account created through an external identity provider.
	KindFederated PrincipalKind = "federated"
)

// String returns the string representation of the PrincipalKind.
func (k PrincipalKind) String() string {
	return string(k)
}
