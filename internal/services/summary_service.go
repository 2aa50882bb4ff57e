package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/notehive/notehive-backend/internal/config"
)

// SummaryService talks to an OpenAI-compatible chat completions endpoint to
// produce a study summary and difficulty label for uploaded notes. A fallback
// provider is tried when the primary one fails.
type SummaryService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewSummaryService(cfg *config.Config) *SummaryService {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &SummaryService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type summaryResult struct {
	Summary    string `json:"summary"`
	Difficulty string `json:"difficulty"`
}

const summaryPrompt = `You summarize study notes for students. Respond with ONLY a JSON object, no markdown fences, shaped exactly like:
{"summary": "...", "difficulty": "beginner|intermediate|advanced"}
The summary must be 2-3 sentences in plain language. Pick the difficulty that best matches the material.`

// Summarize returns a short summary and difficulty label for the given note
// text. It tries the primary provider first and the fallback second; the
// caller decides what to do when both fail.
func (s *SummaryService) Summarize(ctx context.Context, title, text string) (string, string, error) {
	if strings.TrimSpace(text) == "" {
		return "", "", errors.New("no text to summarize")
	}

	input := "Title: " + title + "\n\n" + truncate(text, 6000)

	if s.cfg.AIAPIKey != "" {
		summary, difficulty, err := s.callProvider(ctx, s.cfg.AIAPIURL, s.cfg.AIAPIKey, s.cfg.AIModel, input)
		if err == nil {
			return summary, difficulty, nil
		}
		slog.Warn("primary summarizer failed, trying fallback", "error", err)
	}

	if s.cfg.AIFallbackAPIKey != "" {
		summary, difficulty, err := s.callProvider(ctx, s.cfg.AIFallbackAPIURL, s.cfg.AIFallbackAPIKey, s.cfg.AIFallbackModel, input)
		if err == nil {
			return summary, difficulty, nil
		}
		slog.Warn("fallback summarizer failed", "error", err)
		return "", "", err
	}

	return "", "", errors.New("no summarization provider configured")
}

func (s *SummaryService) callProvider(ctx context.Context, apiURL, apiKey, model, input string) (string, string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: summaryPrompt},
			{Role: "user", Content: input},
		},
		MaxTokens:   400,
		Temperature: 0.3,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", "", fmt.Errorf("failed to decode response: %w", err)
	}
	if chatResp.Error != nil {
		return "", "", fmt.Errorf("provider error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", "", errors.New("provider returned no choices")
	}

	return parseSummaryContent(chatResp.Choices[0].Message.Content)
}

// parseSummaryContent extracts the summary JSON from a model reply, stripping
// markdown code fences the model sometimes wraps it in.
func parseSummaryContent(content string) (string, string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var result summaryResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		// Some models ignore the JSON instruction; use the raw text as the
		// summary and leave difficulty to the heuristic.
		if content != "" {
			return truncate(content, 600), "", nil
		}
		return "", "", fmt.Errorf("failed to parse summary: %w", err)
	}

	difficulty := strings.ToLower(strings.TrimSpace(result.Difficulty))
	switch difficulty {
	case "beginner", "intermediate", "advanced":
	default:
		difficulty = ""
	}

	return strings.TrimSpace(result.Summary), difficulty, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
