package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/authz"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDoubtNotFound      = errors.New("doubt not found")
	ErrAnswerNotFound     = errors.New("answer not found")
	ErrMissingDoubtFields = errors.New("title and description are required")
	ErrMissingAnswer      = errors.New("answer content is required")
)

type DoubtService struct {
	db         *gorm.DB
	moderation *ModerationService
}

func NewDoubtService(db *gorm.DB, moderation *ModerationService) *DoubtService {
	return &DoubtService{db: db, moderation: moderation}
}

func (s *DoubtService) Create(userID uuid.UUID, req *dto.CreateDoubtRequest) (*models.Doubt, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, ErrMissingDoubtFields
	}
	if err := s.filter(title + " " + description); err != nil {
		return nil, err
	}

	doubt := &models.Doubt{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Subject:     strings.TrimSpace(req.Subject),
	}

	if err := s.db.Create(doubt).Error; err != nil {
		return nil, fmt.Errorf("failed to create doubt: %w", err)
	}
	return doubt, nil
}

func (s *DoubtService) List(subject string, page, limit int) ([]models.Doubt, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := s.db.Model(&models.Doubt{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doubts []models.Doubt
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&doubts).Error
	return doubts, total, err
}

func (s *DoubtService) Get(doubtID uuid.UUID) (*models.Doubt, error) {
	var doubt models.Doubt
	err := s.db.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("answers.created_at ASC")
	}).First(&doubt, "id = ?", doubtID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoubtNotFound
		}
		return nil, err
	}
	return &doubt, nil
}

func (s *DoubtService) Update(callerID, doubtID uuid.UUID, req *dto.UpdateDoubtRequest) (*models.Doubt, error) {
	doubt, err := s.Get(doubtID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(doubt, callerID) {
		return nil, ErrDoubtNotFound
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrMissingDoubtFields
		}
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrMissingDoubtFields
		}
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Subject != nil {
		updates["subject"] = strings.TrimSpace(*req.Subject)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Doubt{}).Where("id = ?", doubtID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update doubt: %w", err)
		}
	}
	return s.Get(doubtID)
}

func (s *DoubtService) Delete(callerID, doubtID uuid.UUID) error {
	doubt, err := s.Get(doubtID)
	if err != nil {
		return err
	}
	if !authz.IsOwner(doubt, callerID) {
		return ErrDoubtNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("doubt_id = ?", doubtID).Delete(&models.Answer{})
		return tx.Delete(doubt).Error
	})
}

func (s *DoubtService) AddAnswer(callerID, doubtID uuid.UUID, req *dto.CreateAnswerRequest) (*models.Answer, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrMissingAnswer
	}
	if err := s.filter(content); err != nil {
		return nil, err
	}

	var doubt models.Doubt
	if err := s.db.First(&doubt, "id = ?", doubtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoubtNotFound
		}
		return nil, err
	}

	answer := &models.Answer{
		ID:      uuid.New(),
		DoubtID: doubtID,
		UserID:  callerID,
		Content: content,
	}
	if err := s.db.Create(answer).Error; err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}
	return answer, nil
}

func (s *DoubtService) UpdateAnswer(callerID, doubtID, answerID uuid.UUID, req *dto.UpdateAnswerRequest) (*models.Answer, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrMissingAnswer
	}
	if err := s.filter(content); err != nil {
		return nil, err
	}

	answer, err := s.getAnswer(doubtID, answerID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(answer, callerID) {
		return nil, ErrAnswerNotFound
	}

	if err := s.db.Model(answer).Update("content", content).Error; err != nil {
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}
	answer.Content = content
	return answer, nil
}

func (s *DoubtService) DeleteAnswer(callerID, doubtID, answerID uuid.UUID) error {
	answer, err := s.getAnswer(doubtID, answerID)
	if err != nil {
		return err
	}
	if !authz.IsOwner(answer, callerID) {
		return ErrAnswerNotFound
	}
	return s.db.Delete(answer).Error
}

func (s *DoubtService) CountByAuthor(userID uuid.UUID) (int64, error) {
	var total int64
	err := s.db.Model(&models.Doubt{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

func (s *DoubtService) getAnswer(doubtID, answerID uuid.UUID) (*models.Answer, error) {
	var answer models.Answer
	err := s.db.Where("id = ? AND doubt_id = ?", answerID, doubtID).First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

func (s *DoubtService) filter(text string) error {
	if s.moderation == nil {
		return nil
	}
	return s.moderation.Check(text)
}
