// Package authz holds the single ownership predicate applied to every
// mutating operation on notes, reviews, doubts and answers.
package authz

import "github.com/google/uuid"

// Owned is implemented by every model that has an immutable owner.
type Owned interface {
	OwnedBy() uuid.UUID
}

// IsOwner reports whether callerID owns the entity. A nil caller never owns
// anything.
func IsOwner(entity Owned, callerID uuid.UUID) bool {
	if callerID == uuid.Nil {
		return false
	}
	return entity.OwnedBy() == callerID
}
