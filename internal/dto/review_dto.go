package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateReviewRequest uses a pointer rating so a missing field is
// distinguishable from a zero; a non-numeric rating already fails JSON
// decoding at the boundary.
type CreateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	NoteID     uuid.UUID `json:"note_id"`
	UserID     uuid.UUID `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
