package models

import (
	"time"
)

// Role is the authorization level of an account
type Role string

const (
	RoleStudent   Role = "student"
	RoleEventHead Role = "eventHead"
	RoleAdmin     Role = "admin"
)

// ValidRoles maps every recognized role
var ValidRoles = map[Role]bool{
	RoleStudent:   true,
	RoleEventHead: true,
	RoleAdmin:     true,
}

// rank orders roles for the elevation-preserving sync rule
var rank = map[Role]int{
	RoleStudent:   0,
	RoleEventHead: 1,
	RoleAdmin:     2,
}

// AtLeast reports whether r grants at least the privileges of other
func (r Role) AtLeast(other Role) bool {
	return rank[r] >= rank[other]
}

// CanPublishImmediately reports whether submissions by this role skip the
// moderation queue
func (r Role) CanPublishImmediately() bool {
	return r == RoleAdmin || r == RoleEventHead
}

// User is the internal account record reconciled from an external identity.
// Mutated only by the account reconciler.
type User struct {
	ID          string    `json:"id" db:"id"`
	SubjectID   string    `json:"subjectId" db:"subject_id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"displayName,omitempty" db:"display_name"`
	PhotoURL    string    `json:"photoURL,omitempty" db:"photo_url"`
	Role        Role      `json:"role" db:"role"`
	LastLoginAt time.Time `json:"lastLoginAt" db:"last_login_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSnapshot is a point-in-time denormalized copy of a user, embedded into
// a submission at submit time and at approval time. It is a historical
// record: never re-derived from the live user afterwards.
type UserSnapshot struct {
	SubjectID string `json:"subjectId,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role,omitempty"`
}
