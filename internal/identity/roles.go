package identity

import (
	"strings"

	"github.com/campus-events-api/internal/models"
)

// RoleResolver maps a verified email to a role using the configured
// privilege lists. Comparison is case-insensitive; list entries are trimmed
// of whitespace at construction. Admin takes precedence over eventHead.
type RoleResolver struct {
	admins     map[string]bool
	eventHeads map[string]bool
}

// NewRoleResolver builds a resolver from the raw privilege lists
func NewRoleResolver(adminEmails, eventHeadEmails []string) *RoleResolver {
	return &RoleResolver{
		admins:     emailSet(adminEmails),
		eventHeads: emailSet(eventHeadEmails),
	}
}

// Resolve returns the role the privilege lists grant to the given email
func (r *RoleResolver) Resolve(email string) models.Role {
	normalized := strings.ToLower(strings.TrimSpace(email))
	switch {
	case r.admins[normalized]:
		return models.RoleAdmin
	case r.eventHeads[normalized]:
		return models.RoleEventHead
	default:
		return models.RoleStudent
	}
}

func emailSet(emails []string) map[string]bool {
	set := make(map[string]bool, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			set[email] = true
		}
	}
	return set
}
