package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestNoteCreate_RejectsMissingFields(t *testing.T) {
	svc := NewNoteService(nil, nil, nil)

	tests := []struct {
		name  string
		input dto.CreateNoteInput
	}{
		{"missing title", dto.CreateNoteInput{Subject: "math", Description: "limits"}},
		{"missing subject", dto.CreateNoteInput{Title: "Calculus I", Description: "limits"}},
		{"missing description", dto.CreateNoteInput{Title: "Calculus I", Subject: "math"}},
		{"whitespace only", dto.CreateNoteInput{Title: " ", Subject: "\t", Description: "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), &tt.input, nil)
			assert.ErrorIs(t, err, ErrMissingNoteFields)
		})
	}
}

func TestNoteCreate_RequiresFile(t *testing.T) {
	svc := NewNoteService(nil, nil, nil)

	input := dto.CreateNoteInput{Title: "Calculus I", Subject: "math", Description: "limits and derivatives"}

	_, err := svc.Create(context.Background(), uuid.New(), &input, nil)

	assert.ErrorIs(t, err, ErrFileRequired)
}

func TestSetModerationStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewNoteService(nil, nil, nil)

	for _, status := range []string{"", "published", "APPROVED", "deleted"} {
		_, err := svc.SetModerationStatus(uuid.New(), status)
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", status)
	}
}
