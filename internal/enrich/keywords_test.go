package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords_RanksByFrequency(t *testing.T) {
	text := "calculus derivatives calculus integrals calculus derivatives limits"

	got := Keywords(text, 3)

	assert.Equal(t, []string{"calculus", "derivatives", "integrals"}, got)
}

func TestKeywords_DropsStopwordsAndShortWords(t *testing.T) {
	text := "the notes are about an ox and a big galaxy"

	got := Keywords(text, 10)

	assert.NotContains(t, got, "the")
	assert.NotContains(t, got, "notes")
	assert.NotContains(t, got, "ox")
	assert.Contains(t, got, "galaxy")
	assert.Contains(t, got, "big")
}

func TestKeywords_DeterministicTieBreak(t *testing.T) {
	text := "zebra apple mango"

	first := Keywords(text, 3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Keywords(text, 3))
	}
	assert.Equal(t, []string{"apple", "mango", "zebra"}, first)
}

func TestKeywords_RespectsMax(t *testing.T) {
	text := "alpha beta gamma delta epsilon"

	assert.Len(t, Keywords(text, 2), 2)
	assert.Empty(t, Keywords(text, 0))
}

func TestKeywords_EmptyInput(t *testing.T) {
	assert.Empty(t, Keywords("", 5))
	assert.Empty(t, Keywords("   \n\t  ", 5))
}
