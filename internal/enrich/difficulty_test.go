package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficulty_Labels(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty text", "", DifficultyBeginner},
		{"short simple words", "the cat sat on the mat", DifficultyBeginner},
		{"medium vocabulary", "theory system matrix vector", DifficultyIntermediate},
		{"dense technical terms", "thermodynamics electromagnetism quantum superposition", DifficultyAdvanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Difficulty(tt.text))
		})
	}
}

func TestFallbackSummary_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "Short note.", FallbackSummary("  Short note.  ", 280))
}

func TestFallbackSummary_CutsAtSentenceBoundary(t *testing.T) {
	text := "First sentence. Second sentence that keeps going well past the limit"

	got := FallbackSummary(text, 20)

	assert.Equal(t, "First sentence.", got)
}

func TestFallbackSummary_HardCutWithoutBoundary(t *testing.T) {
	text := "wordwordwordwordwordwordwordword"

	got := FallbackSummary(text, 10)

	assert.Len(t, got, 10)
}
