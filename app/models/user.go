package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the two-variant capability attached to a user account.
// The zero value is a regular customer.
type Role string

const (
	RoleRegular Role = ""
	RoleAdmin   Role = "admin"
)

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User is an account record. Email is the natural key: a user is created on
// first sign-in and never duplicated, enforced by a lookup before insert
// rather than a unique index.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name"           json:"name"`
	Email string             `bson:"email"          json:"email"`
	Role  Role               `bson:"role,omitempty" json:"role,omitempty"`
}
