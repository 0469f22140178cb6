package sentiment

import (
	"strings"

	"github.com/echolens/echolens/internal/models"
)

// Fixed word lists backing the deterministic fallback. Changing them is a
// code change, not configuration.
var (
	positiveWords = []string{"good", "great", "awesome", "amazing", "happy", "love", "excellent", "thanks"}
	negativeWords = []string{"bad", "terrible", "awful", "worst", "sad", "angry", "hate", "broken"}
)

// AnalyzeWithLexicon is the transport/parse-failure fallback: label follows
// the majority word list, confidence is 0.5 + 0.1 per hit of margin capped at
// 0.8, and a tie is neutral at 0.5.
func AnalyzeWithLexicon(text string) Analysis {
	lower := strings.ToLower(text)

	positiveCount := 0
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			positiveCount++
		}
	}
	negativeCount := 0
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			negativeCount++
		}
	}

	var label string
	var confidence float64
	switch {
	case positiveCount > negativeCount:
		label = models.SentimentPositive
		confidence = capConfidence(0.5 + float64(positiveCount-negativeCount)*0.1)
	case negativeCount > positiveCount:
		label = models.SentimentNegative
		confidence = capConfidence(0.5 + float64(negativeCount-positiveCount)*0.1)
	default:
		label = models.SentimentNeutral
		confidence = 0.5
	}

	return Analysis{
		Sentiment:  label,
		Confidence: confidence,
		Emotions:   lexiconEmotions(label),
		Source:     SourceLexicon,
	}
}

func capConfidence(c float64) float64 {
	if c > 0.8 {
		return 0.8
	}
	return c
}

func lexiconEmotions(label string) map[string]float64 {
	emotions := map[string]float64{
		"joy":      0.2,
		"anger":    0.1,
		"sadness":  0.1,
		"fear":     0.3,
		"surprise": 0.2,
		"disgust":  0.1,
	}
	switch label {
	case models.SentimentPositive:
		emotions["joy"] = 0.7
	case models.SentimentNegative:
		emotions["anger"] = 0.7
		emotions["sadness"] = 0.6
		emotions["disgust"] = 0.5
	}
	return emotions
}
