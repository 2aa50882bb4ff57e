package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is one rating+comment per (user, note) pair; the unique index is
// the invariant, the service upserts against it.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_note_user" json:"note_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_note_user" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Note      Note      `gorm:"foreignKey:NoteID" json:"-"`
}

func (r *Review) OwnedBy() uuid.UUID { return r.UserID }
