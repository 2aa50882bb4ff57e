package enrich

import "strings"

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Difficulty labels a text by average word length and the share of long
// words. It is a display heuristic, nothing more.
func Difficulty(text string) string {
	words := tokenize(text)
	if len(words) == 0 {
		return DifficultyBeginner
	}

	totalLen := 0
	longWords := 0
	for _, w := range words {
		totalLen += len(w)
		if len(w) >= 9 {
			longWords++
		}
	}

	avgLen := float64(totalLen) / float64(len(words))
	longRatio := float64(longWords) / float64(len(words))

	score := avgLen + longRatio*10

	switch {
	case score >= 8:
		return DifficultyAdvanced
	case score >= 6:
		return DifficultyIntermediate
	default:
		return DifficultyBeginner
	}
}

// FallbackSummary produces a short extractive summary when no AI provider
// is configured or reachable: the first sentences up to maxLen runes.
func FallbackSummary(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if maxLen <= 0 || len([]rune(text)) <= maxLen {
		return text
	}

	runes := []rune(text)
	cut := maxLen
	for i := maxLen; i > maxLen/2; i-- {
		if runes[i-1] == '.' || runes[i-1] == '!' || runes[i-1] == '?' {
			cut = i
			break
		}
	}
	return strings.TrimSpace(string(runes[:cut]))
}
