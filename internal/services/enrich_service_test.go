package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/notehive/notehive-backend/internal/config"
	"github.com/notehive/notehive-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "Calculus I math limits derivatives", buildQuery("Calculus I", "math", []string{"limits", "derivatives"}))
	assert.Equal(t, "Calculus I", buildQuery("Calculus I", "", nil))
	assert.Equal(t, "", buildQuery("  ", "", nil))
}

func TestBuildQuery_CapsKeywords(t *testing.T) {
	got := buildQuery("Title", "", []string{"a", "b", "c", "d", "e"})
	assert.Equal(t, "Title a b c", got)
}

func TestRelatedContent_UnconfiguredProvidersReturnEmptyLists(t *testing.T) {
	svc := NewEnrichService(&config.Config{})

	keywords, _ := json.Marshal([]string{"limits"})
	note := &models.Note{
		ID:       uuid.New(),
		Title:    "Calculus I",
		Subject:  "math",
		Keywords: datatypes.JSON(keywords),
	}

	resp := svc.RelatedContent(context.Background(), note)

	require.NotNil(t, resp)
	assert.Equal(t, []string{"limits"}, resp.Keywords)
	assert.Empty(t, resp.Web)
	assert.Empty(t, resp.Videos)
}

func TestRelatedContent_CollectsWebAndVideoResults(t *testing.T) {
	web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "search-key", r.URL.Query().Get("key"))
		assert.Equal(t, "engine-id", r.URL.Query().Get("cx"))
		assert.NotEmpty(t, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"items":[{"title":"Limits explained","link":"https://math.example/limits","snippet":"A primer."}]}`))
	}))
	defer web.Close()

	video := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "video-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"items":[{"id":{"videoId":"abc123"},"snippet":{"title":"Limits in 10 minutes","description":"Crash course.","thumbnails":{"medium":{"url":"https://i.example/t.jpg"}}}}]}`))
	}))
	defer video.Close()

	svc := NewEnrichService(&config.Config{
		SearchAPIKey:   "search-key",
		SearchEngineID: "engine-id",
		SearchAPIURL:   web.URL,
		VideoAPIKey:    "video-key",
		VideoAPIURL:    video.URL,
	})

	note := &models.Note{ID: uuid.New(), Title: "Calculus I", Subject: "math"}

	resp := svc.RelatedContent(context.Background(), note)

	require.Len(t, resp.Web, 1)
	assert.Equal(t, "Limits explained", resp.Web[0].Title)
	assert.Equal(t, "https://math.example/limits", resp.Web[0].URL)
	assert.Equal(t, "web", resp.Web[0].Source)

	require.Len(t, resp.Videos, 1)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", resp.Videos[0].URL)
	assert.Equal(t, "video", resp.Videos[0].Source)
	assert.Equal(t, "https://i.example/t.jpg", resp.Videos[0].ThumbnailURL)
}

func TestRelatedContent_ProviderFailureYieldsEmptyList(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer broken.Close()

	svc := NewEnrichService(&config.Config{
		SearchAPIKey:   "k",
		SearchEngineID: "cx",
		SearchAPIURL:   broken.URL,
	})

	note := &models.Note{ID: uuid.New(), Title: "Calculus I"}

	resp := svc.RelatedContent(context.Background(), note)

	assert.Empty(t, resp.Web)
	assert.Empty(t, resp.Videos)
}
