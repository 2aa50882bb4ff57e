package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/notehive/notehive-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummaryContent(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantSummary    string
		wantDifficulty string
	}{
		{
			"plain json",
			`{"summary": "Covers limits and derivatives.", "difficulty": "intermediate"}`,
			"Covers limits and derivatives.",
			"intermediate",
		},
		{
			"fenced json",
			"```json\n{\"summary\": \"Intro material.\", \"difficulty\": \"beginner\"}\n```",
			"Intro material.",
			"beginner",
		},
		{
			"unknown difficulty dropped",
			`{"summary": "Graduate level.", "difficulty": "expert"}`,
			"Graduate level.",
			"",
		},
		{
			"difficulty normalized",
			`{"summary": "Hard stuff.", "difficulty": " Advanced "}`,
			"Hard stuff.",
			"advanced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, difficulty, err := parseSummaryContent(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSummary, summary)
			assert.Equal(t, tt.wantDifficulty, difficulty)
		})
	}
}

func TestParseSummaryContent_NonJSONFallsBackToRawText(t *testing.T) {
	summary, difficulty, err := parseSummaryContent("These notes cover the chain rule in depth.")

	require.NoError(t, err)
	assert.Equal(t, "These notes cover the chain rule in depth.", summary)
	assert.Empty(t, difficulty)
}

func TestSummarize_UsesFallbackProvider(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fallback-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"summary\":\"Short recap.\",\"difficulty\":\"beginner\"}"}}]}`))
	}))
	defer fallback.Close()

	svc := NewSummaryService(&config.Config{
		AIAPIKey:         "primary-key",
		AIAPIURL:         primary.URL,
		AIModel:          "primary-model",
		AIFallbackAPIKey: "fallback-key",
		AIFallbackAPIURL: fallback.URL,
		AIFallbackModel:  "fallback-model",
	})

	summary, difficulty, err := svc.Summarize(context.Background(), "Calculus", "limits and derivatives")

	require.NoError(t, err)
	assert.Equal(t, "Short recap.", summary)
	assert.Equal(t, "beginner", difficulty)
}

func TestSummarize_NoProviderConfigured(t *testing.T) {
	svc := NewSummaryService(&config.Config{})

	_, _, err := svc.Summarize(context.Background(), "Calculus", "limits")

	assert.Error(t, err)
}

func TestSummarize_EmptyText(t *testing.T) {
	svc := NewSummaryService(&config.Config{AIAPIKey: "k"})

	_, _, err := svc.Summarize(context.Background(), "Calculus", "   ")

	assert.Error(t, err)
}
