// Package authz centralizes the role and ownership predicates so every
// mutating endpoint applies the same rule.
package authz

import (
	"github.com/google/uuid"
	"ice.edu/helpinghand/internal/entity"
)

// IsStaff reports whether the role may create content (books, notes,
// notices) and upload files.
func IsStaff(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleTeacher
}

// IsAdmin reports whether the role may manage deals, social links, settings,
// subjects and user accounts.
func IsAdmin(role string) bool {
	return role == entity.RoleAdmin
}

// CanModify reports whether the actor may update or delete a row owned by
// ownerID: admins always can, everyone else only their own rows.
func CanModify(actor *entity.User, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.Role == entity.RoleAdmin || actor.ID == ownerID
}
