package handlers

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestDoubtCreate_StoreFailureStaysOpaque(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewDoubtHandler(services.NewDoubtService(db, nil))

	mock.ExpectBegin().WillReturnError(errors.New("pq: permission denied"))

	app := newAuthedApp(uuid.New())
	app.Post("/api/doubts", h.Create)

	resp := postJSON(t, app, "/api/doubts", dto.CreateDoubtRequest{
		Title:       "Partial fractions",
		Description: "stuck on decomposing a repeated quadratic factor",
	})

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, body.Message, "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoubtCreate_RejectedContentIsClientError(t *testing.T) {
	h := NewDoubtHandler(services.NewDoubtService(nil, services.NewModerationService(nil)))

	app := newAuthedApp(uuid.New())
	app.Post("/api/doubts", h.Create)

	resp := postJSON(t, app, "/api/doubts", dto.CreateDoubtRequest{
		Title:       "Need a tutor",
		Description: "text me at 555-123-4567",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, resp).Message, "not allowed")
}
