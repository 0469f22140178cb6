package sentiment

import (
	"math"

	"github.com/jonreiter/govader"

	"github.com/echolens/echolens/internal/models"
)

var vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()

// AnalyzeWithVADER is the local classifier backend. Labels follow the
// compound score with cutoffs at +/-0.20.
func AnalyzeWithVADER(text string) Analysis {
	scores := vaderAnalyzer.PolarityScores(PrepareText(text))
	compound := scores.Compound

	var label string
	var confidence float64
	switch {
	case compound >= 0.20:
		label = models.SentimentPositive
		confidence = scores.Positive
	case compound <= -0.20:
		label = models.SentimentNegative
		confidence = scores.Negative
	default:
		label = models.SentimentNeutral
		confidence = scores.Neutral
	}

	if confidence < math.Abs(compound) {
		confidence = math.Abs(compound)
	}

	return Analysis{
		Sentiment:  label,
		Confidence: confidence,
		Source:     SourceVADER,
	}
}
