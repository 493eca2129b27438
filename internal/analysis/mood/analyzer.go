package mood

import (
	"regexp"
	"strconv"
	"strings"
)

// Scores range 0..10 with 5 as neutral. An explicit inline rating such as
// "4 out of 10" or "7/10" always wins over keyword scoring.
const (
	MinScore     = 0
	NeutralScore = 5
	MaxScore     = 10
)

var ratingPattern = regexp.MustCompile(`(?i)\b(10|[0-9])\s*(?:/\s*10|out\s+of\s+10)\b`)

var positiveKeywords = []string{
	"happy", "glad", "great", "good", "joy", "excited", "calm", "relaxed",
	"hopeful", "grateful", "proud", "energized", "content", "better",
	"amazing", "wonderful", "love", "optimistic", "peaceful", "rested",
}

var negativeKeywords = []string{
	"sad", "anxious", "angry", "tired", "depressed", "stressed", "worried",
	"lonely", "upset", "cry", "hopeless", "afraid", "scared", "exhausted",
	"frustrated", "miserable", "awful", "terrible", "panic", "worse",
}

// Score derives a numeric mood value from a free-text entry.
func Score(text string) float64 {
	if match := ratingPattern.FindStringSubmatch(text); match != nil {
		value, err := strconv.Atoi(match[1])
		if err == nil {
			return float64(value)
		}
	}

	lower := strings.ToLower(text)
	score := float64(NeutralScore)
	for _, keyword := range positiveKeywords {
		if strings.Contains(lower, keyword) {
			score++
		}
	}
	for _, keyword := range negativeKeywords {
		if strings.Contains(lower, keyword) {
			score--
		}
	}

	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
