package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/authz"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/enrich"
	"github.com/notehive/notehive-backend/internal/models"
	"github.com/notehive/notehive-backend/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrFileRequired      = errors.New("a notes file attachment is required")
	ErrMissingNoteFields = errors.New("title, subject and description are required")
	ErrInvalidStatus     = errors.New("status must be pending, approved or rejected")
)

// ObjectStore is the upload pipeline contract. Satisfied by *storage.Client.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Summarizer derives a short summary and a difficulty label from note text.
type Summarizer interface {
	Summarize(ctx context.Context, title, text string) (summary, difficulty string, err error)
}

type ListNotesParams struct {
	Search  string
	Subject string
	Sort    string // newest | downloads | rating
	Status  string // admin-only filter; "all" disables status filtering
	Page    int
	Limit   int
}

type NoteService struct {
	db         *gorm.DB
	store      ObjectStore
	summarizer Summarizer
}

func NewNoteService(db *gorm.DB, store ObjectStore, summarizer Summarizer) *NoteService {
	return &NoteService{db: db, store: store, summarizer: summarizer}
}

func (s *NoteService) Create(ctx context.Context, ownerID uuid.UUID, input *dto.CreateNoteInput, fh *multipart.FileHeader) (*models.Note, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Subject) == "" ||
		strings.TrimSpace(input.Description) == "" {
		return nil, ErrMissingNoteFields
	}
	if fh == nil {
		return nil, ErrFileRequired
	}

	fileURL, fileKey, err := s.uploadFile(ctx, fh)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Subject:     strings.TrimSpace(input.Subject),
		Description: strings.TrimSpace(input.Description),
		FileURL:     fileURL,
		FileKey:     fileKey,
		FileName:    fh.Filename,
		FileSize:    fh.Size,
		Status:      models.NoteStatusApproved,
	}

	if err := s.db.Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	go s.enrichNote(note.ID, note.Title, note.Description)

	return note, nil
}

// enrichNote computes keywords, summary and difficulty after creation.
// Failures only cost the computed fields, never the note.
func (s *NoteService) enrichNote(noteID uuid.UUID, title, description string) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	text := title + " " + description
	keywords := enrich.Keywords(text, 8)

	summary, difficulty := "", enrich.Difficulty(description)
	if s.summarizer != nil {
		if aiSummary, aiDifficulty, err := s.summarizer.Summarize(ctx, title, description); err == nil {
			summary = aiSummary
			if aiDifficulty != "" {
				difficulty = aiDifficulty
			}
		} else {
			slog.Error("note summarization failed", "error", err, "note_id", noteID)
		}
	}
	if summary == "" {
		summary = enrich.FallbackSummary(description, 280)
	}

	updates := map[string]interface{}{
		"summary":    summary,
		"difficulty": difficulty,
	}
	if b, err := json.Marshal(keywords); err == nil {
		updates["keywords"] = datatypes.JSON(b)
	}

	if err := s.db.Model(&models.Note{}).Where("id = ?", noteID).Updates(updates).Error; err != nil {
		slog.Error("note enrichment update failed", "error", err, "note_id", noteID)
	}
}

func (s *NoteService) List(params ListNotesParams) ([]models.Note, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 50 {
		params.Limit = 20
	}
	offset := (params.Page - 1) * params.Limit

	query := s.db.Model(&models.Note{})

	switch params.Status {
	case "":
		query = query.Where("status <> ?", models.NoteStatusRejected)
	case "all":
	default:
		query = query.Where("status = ?", params.Status)
	}
	if params.Subject != "" {
		query = query.Where("subject = ?", params.Subject)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR subject ILIKE ? OR description ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch params.Sort {
	case "downloads":
		query = query.Order("download_count DESC")
	case "rating":
		query = query.Order("(CASE WHEN rating_count = 0 THEN 0 ELSE rating_sum::float / rating_count END) DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var notes []models.Note
	err := query.Offset(offset).Limit(params.Limit).Find(&notes).Error
	return notes, total, err
}

func (s *NoteService) Get(noteID uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := s.db.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Update(ctx context.Context, callerID, noteID uuid.UUID, input *dto.UpdateNoteInput, fh *multipart.FileHeader) (*models.Note, error) {
	note, err := s.Get(noteID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(note, callerID) {
		return nil, ErrNoteNotFound
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrMissingNoteFields
		}
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Subject != nil {
		if strings.TrimSpace(*input.Subject) == "" {
			return nil, ErrMissingNoteFields
		}
		updates["subject"] = strings.TrimSpace(*input.Subject)
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, ErrMissingNoteFields
		}
		updates["description"] = strings.TrimSpace(*input.Description)
	}

	oldKey := ""
	if fh != nil {
		fileURL, fileKey, err := s.uploadFile(ctx, fh)
		if err != nil {
			return nil, err
		}
		oldKey = note.FileKey
		updates["file_url"] = fileURL
		updates["file_key"] = fileKey
		updates["file_name"] = fh.Filename
		updates["file_size"] = fh.Size
	}

	if len(updates) > 0 {
		if err := s.db.Model(note).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update note: %w", err)
		}
	}

	if oldKey != "" {
		s.deleteObject(oldKey)
	}

	return s.Get(noteID)
}

func (s *NoteService) Delete(callerID, noteID uuid.UUID) error {
	note, err := s.Get(noteID)
	if err != nil {
		return err
	}
	if !authz.IsOwner(note, callerID) {
		return ErrNoteNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("note_id = ?", noteID).Delete(&models.Review{})
		tx.Where("note_id = ?", noteID).Delete(&models.Favorite{})
		tx.Where("note_id = ?", noteID).Delete(&models.NoteDownload{})
		return tx.Delete(note).Error
	})
	if err != nil {
		return err
	}

	s.deleteObject(note.FileKey)
	return nil
}

// TrackDownload increments the counter on every call while the downloader
// set grows at most once per user.
func (s *NoteService) TrackDownload(callerID, noteID uuid.UUID) (*models.Note, error) {
	if _, err := s.Get(noteID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Note{}).Where("id = ?", noteID).
			Update("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
			return err
		}

		download := models.NoteDownload{
			ID:     uuid.New(),
			NoteID: noteID,
			UserID: callerID,
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&download).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to track download: %w", err)
	}

	return s.Get(noteID)
}

// Favorite is idempotent: re-favoriting is a no-op.
func (s *NoteService) Favorite(userID, noteID uuid.UUID) error {
	if _, err := s.Get(noteID); err != nil {
		return err
	}

	fav := models.Favorite{
		ID:     uuid.New(),
		UserID: userID,
		NoteID: noteID,
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error
}

// Unfavorite is idempotent: removing a non-favorite is a no-op.
func (s *NoteService) Unfavorite(userID, noteID uuid.UUID) error {
	return s.db.Where("user_id = ? AND note_id = ?", userID, noteID).
		Delete(&models.Favorite{}).Error
}

func (s *NoteService) ListFavorites(userID uuid.UUID, page, limit int) ([]models.Note, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	base := s.db.Model(&models.Note{}).
		Joins("JOIN favorites ON favorites.note_id = notes.id").
		Where("favorites.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []models.Note
	err := base.Order("favorites.created_at DESC").Offset(offset).Limit(limit).Find(&notes).Error
	return notes, total, err
}

func (s *NoteService) SetModerationStatus(noteID uuid.UUID, status string) (*models.Note, error) {
	if !models.ValidNoteStatus(status) {
		return nil, ErrInvalidStatus
	}

	result := s.db.Model(&models.Note{}).Where("id = ?", noteID).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNoteNotFound
	}
	return s.Get(noteID)
}

// OwnerStats aggregates the caller's notes for the dashboard.
func (s *NoteService) OwnerStats(userID uuid.UUID) (noteCount, totalDownloads, favoriteCount int64, recent []models.Note, err error) {
	if err = s.db.Model(&models.Note{}).Where("owner_id = ?", userID).Count(&noteCount).Error; err != nil {
		return
	}

	var downloads struct{ Total int64 }
	if err = s.db.Model(&models.Note{}).
		Select("COALESCE(SUM(download_count), 0) as total").
		Where("owner_id = ?", userID).
		Scan(&downloads).Error; err != nil {
		return
	}
	totalDownloads = downloads.Total

	if err = s.db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&favoriteCount).Error; err != nil {
		return
	}

	err = s.db.Where("owner_id = ?", userID).Order("created_at DESC").Limit(5).Find(&recent).Error
	return
}

func (s *NoteService) uploadFile(ctx context.Context, fh *multipart.FileHeader) (url, key string, err error) {
	file, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	key = storage.ObjectKey(fh.Filename)
	url, err = s.store.Upload(ctx, key, file, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		return "", "", fmt.Errorf("failed to store uploaded file: %w", err)
	}
	return url, key, nil
}

// deleteObject is best effort; a stranded object is logged, not surfaced.
func (s *NoteService) deleteObject(key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.store.Delete(ctx, key); err != nil {
		slog.Error("object delete failed", "error", err, "key", key)
	}
}
