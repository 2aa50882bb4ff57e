package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/models"
)

// CreateNoteInput carries the multipart text fields of a note upload; the
// file itself travels separately as a multipart file header.
type CreateNoteInput struct {
	Title       string `form:"title" json:"title"`
	Subject     string `form:"subject" json:"subject"`
	Description string `form:"description" json:"description"`
}

// UpdateNoteInput uses pointers so "field absent" and "field set to empty"
// stay distinguishable at the boundary.
type UpdateNoteInput struct {
	Title       *string `form:"title" json:"title"`
	Subject     *string `form:"subject" json:"subject"`
	Description *string `form:"description" json:"description"`
}

type SetModerationRequest struct {
	Status string `json:"status"`
}

type NoteResponse struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	Description   string    `json:"description"`
	FileURL       string    `json:"file_url"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	DownloadCount int       `json:"download_count"`
	RatingCount   int       `json:"rating_count"`
	AverageRating float64   `json:"average_rating"`
	Summary       string    `json:"summary,omitempty"`
	Difficulty    string    `json:"difficulty,omitempty"`
	Keywords      []string  `json:"keywords"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToNoteResponse(n *models.Note) NoteResponse {
	var keywords []string
	if len(n.Keywords) > 0 {
		_ = json.Unmarshal(n.Keywords, &keywords)
	}
	if keywords == nil {
		keywords = []string{}
	}
	return NoteResponse{
		ID:            n.ID,
		OwnerID:       n.OwnerID,
		Title:         n.Title,
		Subject:       n.Subject,
		Description:   n.Description,
		FileURL:       n.FileURL,
		FileName:      n.FileName,
		FileSize:      n.FileSize,
		DownloadCount: n.DownloadCount,
		RatingCount:   n.RatingCount,
		AverageRating: n.AverageRating(),
		Summary:       n.Summary,
		Difficulty:    n.Difficulty,
		Keywords:      keywords,
		Status:        n.Status,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func ToNoteResponses(notes []models.Note) []NoteResponse {
	out := make([]NoteResponse, len(notes))
	for i := range notes {
		out[i] = ToNoteResponse(&notes[i])
	}
	return out
}

type RelatedItem struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Snippet      string `json:"snippet,omitempty"`
	Source       string `json:"source"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type RelatedContentResponse struct {
	Keywords []string      `json:"keywords"`
	Web      []RelatedItem `json:"web"`
	Videos   []RelatedItem `json:"videos"`
}
