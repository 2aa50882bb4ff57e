package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/notehive/notehive-backend/internal/config"
	"github.com/notehive/notehive-backend/internal/dto"
	"github.com/notehive/notehive-backend/internal/models"
)

// EnrichService looks up related web pages and videos for a note using
// external search APIs. Lookups are best effort: a failed or unconfigured
// provider yields an empty list, never an error to the caller.
type EnrichService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewEnrichService(cfg *config.Config) *EnrichService {
	timeout := cfg.EnrichTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &EnrichService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RelatedContent builds a search query from the note's title, subject and
// stored keywords and fans out to the web and video providers.
func (s *EnrichService) RelatedContent(ctx context.Context, note *models.Note) *dto.RelatedContentResponse {
	var keywords []string
	if len(note.Keywords) > 0 {
		_ = json.Unmarshal(note.Keywords, &keywords)
	}
	if keywords == nil {
		keywords = []string{}
	}

	query := buildQuery(note.Title, note.Subject, keywords)
	resp := &dto.RelatedContentResponse{
		Keywords: keywords,
		Web:      []dto.RelatedItem{},
		Videos:   []dto.RelatedItem{},
	}
	if query == "" {
		return resp
	}

	if web, err := s.searchWeb(ctx, query); err != nil {
		slog.Warn("related web search failed", "note_id", note.ID, "error", err)
	} else {
		resp.Web = web
	}

	if videos, err := s.searchVideos(ctx, query); err != nil {
		slog.Warn("related video search failed", "note_id", note.ID, "error", err)
	} else {
		resp.Videos = videos
	}

	return resp
}

func buildQuery(title, subject string, keywords []string) string {
	parts := []string{strings.TrimSpace(title)}
	if subject != "" {
		parts = append(parts, strings.TrimSpace(subject))
	}
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	parts = append(parts, keywords...)

	query := strings.TrimSpace(strings.Join(parts, " "))
	if len(query) > 150 {
		query = query[:150]
	}
	return query
}

type webSearchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

func (s *EnrichService) searchWeb(ctx context.Context, query string) ([]dto.RelatedItem, error) {
	if s.cfg.SearchAPIKey == "" || s.cfg.SearchEngineID == "" {
		return []dto.RelatedItem{}, nil
	}

	params := url.Values{}
	params.Set("key", s.cfg.SearchAPIKey)
	params.Set("cx", s.cfg.SearchEngineID)
	params.Set("q", query)
	params.Set("num", "5")

	var result webSearchResponse
	if err := s.getJSON(ctx, s.cfg.SearchAPIURL+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	items := make([]dto.RelatedItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, dto.RelatedItem{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Source:  "web",
		})
	}
	return items, nil
}

type videoSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Thumbnails  struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func (s *EnrichService) searchVideos(ctx context.Context, query string) ([]dto.RelatedItem, error) {
	if s.cfg.VideoAPIKey == "" {
		return []dto.RelatedItem{}, nil
	}

	params := url.Values{}
	params.Set("key", s.cfg.VideoAPIKey)
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", "5")
	params.Set("q", query)

	var result videoSearchResponse
	if err := s.getJSON(ctx, s.cfg.VideoAPIURL+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	items := make([]dto.RelatedItem, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		items = append(items, dto.RelatedItem{
			Title:        item.Snippet.Title,
			URL:          "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Snippet:      item.Snippet.Description,
			Source:       "video",
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
		})
	}
	return items, nil
}

func (s *EnrichService) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
