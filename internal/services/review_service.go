package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrRatingOutOfRange = errors.New("star rating must be an integer between 1 and 5")
	ErrCommentRequired  = errors.New("a review comment is required")
	ErrReviewNotFound   = errors.New("review not found")
)

type ReviewService struct {
	db         *gorm.DB
	moderation *ModerationService
}

func NewReviewService(db *gorm.DB, moderation *ModerationService) *ReviewService {
	return &ReviewService{db: db, moderation: moderation}
}

// CreateOrUpdate upserts the caller's review for a note. Validation happens
// before any store access; the note's rating_sum/rating_count move in the
// same transaction as the review row. Returns the review and whether it was
// newly created.
func (s *ReviewService) CreateOrUpdate(userID, noteID uuid.UUID, req *dto.CreateReviewRequest) (*models.Review, bool, error) {
	if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
		return nil, false, ErrRatingOutOfRange
	}
	if req.Comment == nil || strings.TrimSpace(*req.Comment) == "" {
		return nil, false, ErrCommentRequired
	}

	comment := strings.TrimSpace(*req.Comment)
	if s.moderation != nil {
		if err := s.moderation.Check(comment); err != nil {
			return nil, false, err
		}
	}

	rating := *req.Rating
	var review models.Review
	created := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var note models.Note
		if err := tx.First(&note, "id = ?", noteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoteNotFound
			}
			return err
		}

		err := tx.Where("note_id = ? AND user_id = ?", noteID, userID).First(&review).Error
		switch {
		case err == nil:
			delta := rating - review.Rating
			if err := tx.Model(&review).Updates(map[string]interface{}{
				"rating":  rating,
				"comment": comment,
			}).Error; err != nil {
				return fmt.Errorf("failed to update review: %w", err)
			}
			review.Rating = rating
			review.Comment = comment

			if delta != 0 {
				if err := tx.Model(&models.Note{}).Where("id = ?", noteID).
					Update("rating_sum", gorm.Expr("rating_sum + ?", delta)).Error; err != nil {
					return err
				}
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{
				ID:      uuid.New(),
				NoteID:  noteID,
				UserID:  userID,
				Rating:  rating,
				Comment: comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
			created = true

			if err := tx.Model(&models.Note{}).Where("id = ?", noteID).
				Updates(map[string]interface{}{
					"rating_sum":   gorm.Expr("rating_sum + ?", rating),
					"rating_count": gorm.Expr("rating_count + 1"),
				}).Error; err != nil {
				return err
			}

		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &review, created, nil
}

// ListForNote returns a note's reviews newest-first with the author's
// display name resolved.
func (s *ReviewService) ListForNote(noteID uuid.UUID, page, limit int) ([]dto.ReviewResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	if err := s.db.Model(&models.Review{}).Where("note_id = ?", noteID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := s.db.Preload("User").
		Where("note_id = ?", noteID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return toReviewResponses(reviews), total, nil
}

// Delete removes the caller's own review and rolls its rating out of the
// note aggregate in the same transaction.
func (s *ReviewService) Delete(userID, noteID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.Where("note_id = ? AND user_id = ?", noteID, userID).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}

		if err := tx.Delete(&review).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		return tx.Model(&models.Note{}).Where("id = ?", noteID).
			Updates(map[string]interface{}{
				"rating_sum":   gorm.Expr("rating_sum - ?", review.Rating),
				"rating_count": gorm.Expr("rating_count - 1"),
			}).Error
	})
}

// ListByAuthor feeds the dashboard's recent-reviews panel.
func (s *ReviewService) ListByAuthor(userID uuid.UUID, limit int) ([]dto.ReviewResponse, int64, error) {
	var total int64
	if err := s.db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := s.db.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return toReviewResponses(reviews), total, nil
}

func toReviewResponses(reviews []models.Review) []dto.ReviewResponse {
	out := make([]dto.ReviewResponse, len(reviews))
	for i, r := range reviews {
		name := r.User.Name
		if name == "" {
			name = "deleted user"
		}
		out[i] = dto.ReviewResponse{
			ID:         r.ID,
			NoteID:     r.NoteID,
			UserID:     r.UserID,
			AuthorName: name,
			Rating:     r.Rating,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		}
	}
	return out
}
