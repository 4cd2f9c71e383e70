// Package permission decides who may touch what.
//
// Three tiers exist above anonymous: user, moderator, admin. Catalog
// resources (categories, genres, titles) are world-readable and
// admin-writable; user administration is admin-only; reviews and comments
// are world-readable, writable by any authenticated user and mutable by
// the author, a moderator or an admin. The author/moderator/admin rule is
// expressed as an OR of independent checks rather than per-endpoint
// conditionals.
package permission

import "reviewhub/internal/http-api/models"

// Actor is the identity a request acts under. The zero value is anonymous.
type Actor struct {
	ID            string
	Role          models.Role
	Authenticated bool
}

// ActorFor builds an Actor from an authenticated user. A nil user yields
// the anonymous actor.
func ActorFor(u *models.User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{ID: u.ID, Role: u.Role, Authenticated: true}
}

// Check is a single permission predicate. ownerID identifies the resource
// owner for ownership-based checks; role-based checks ignore it.
type Check func(actor Actor, ownerID string) bool

// AnyOf combines checks with OR semantics: the first satisfied check
// allows, and no check takes precedence over another.
func AnyOf(checks ...Check) Check {
	return func(actor Actor, ownerID string) bool {
		for _, check := range checks {
			if check(actor, ownerID) {
				return true
			}
		}
		return false
	}
}

// IsAuthor allows the resource owner.
func IsAuthor(actor Actor, ownerID string) bool {
	return actor.Authenticated && ownerID != "" && actor.ID == ownerID
}

// IsModerator allows moderators regardless of ownership.
func IsModerator(actor Actor, _ string) bool {
	return actor.Authenticated && actor.Role == models.RoleModerator
}

// IsAdmin allows admins regardless of ownership.
func IsAdmin(actor Actor, _ string) bool {
	return actor.Authenticated && actor.Role == models.RoleAdmin
}

// CanModifyContent gates updates and deletes on reviews and comments.
var CanModifyContent = AnyOf(IsAuthor, IsModerator, IsAdmin)
