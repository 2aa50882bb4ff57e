package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doubt is a Q&A thread, independent of notes.
type Doubt struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Subject     string         `gorm:"size:100;index" json:"subject"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	User        User           `gorm:"foreignKey:UserID" json:"-"`
	Answers     []Answer       `gorm:"foreignKey:DoubtID" json:"answers,omitempty"`
}

func (d *Doubt) OwnedBy() uuid.UUID { return d.UserID }

type Answer struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DoubtID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"doubt_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
}

func (a *Answer) OwnedBy() uuid.UUID { return a.UserID }
