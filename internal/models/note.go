package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Moderation statuses for a note.
const (
	NoteStatusPending  = "pending"
	NoteStatusApproved = "approved"
	NoteStatusRejected = "rejected"
)

// Note is an uploaded study-notes file plus its metadata and aggregates.
// RatingSum/RatingCount are maintained transactionally with every review
// write so the average never drifts from the review rows.
type Note struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Subject       string         `gorm:"size:100;not null;index" json:"subject"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	FileURL       string         `gorm:"not null" json:"file_url"`
	FileKey       string         `gorm:"size:512;not null" json:"-"`
	FileName      string         `gorm:"size:255" json:"file_name"`
	FileSize      int64          `json:"file_size"`
	DownloadCount int            `gorm:"default:0" json:"download_count"`
	RatingSum     int            `gorm:"default:0" json:"-"`
	RatingCount   int            `gorm:"default:0" json:"rating_count"`
	Summary       string         `gorm:"type:text" json:"summary,omitempty"`
	Difficulty    string         `gorm:"size:20" json:"difficulty,omitempty"`
	Keywords      datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"keywords"`
	Status        string         `gorm:"size:20;not null;default:'approved';index" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Owner         User           `gorm:"foreignKey:OwnerID" json:"-"`
}

func (n *Note) OwnedBy() uuid.UUID { return n.OwnerID }

// AverageRating derives the aggregate from the maintained sum and count.
func (n *Note) AverageRating() float64 {
	if n.RatingCount == 0 {
		return 0
	}
	return float64(n.RatingSum) / float64(n.RatingCount)
}

func ValidNoteStatus(s string) bool {
	return s == NoteStatusPending || s == NoteStatusApproved || s == NoteStatusRejected
}

// NoteDownload records set membership for "who downloaded this note".
// The unique index makes re-downloads idempotent for the set while the
// note's counter still increments per call.
type NoteDownload struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_downloads_note_user" json:"note_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_downloads_note_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite is the per-user favorites relation.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_note" json:"user_id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_note" json:"note_id"`
	CreatedAt time.Time `json:"created_at"`
	Note      Note      `gorm:"foreignKey:NoteID" json:"-"`
}
