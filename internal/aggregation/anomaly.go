package aggregation

import (
	"fmt"

	"github.com/echolens/echolens/internal/models"
)

// Fixed anomaly thresholds; changing them is a code change, not a parameter.
const (
	negativeSentimentThreshold = 70.0 // percent
	volumeSpikeThreshold       = 1000 // posts per hourly window
	lowConfidenceThreshold     = 0.5  // mean confidence
)

// DetectAnomalies evaluates the fixed rule list against one aggregation
// result. Rules are independent; a window can trigger more than one.
func DetectAnomalies(result models.AggregationResult, period string) []models.Anomaly {
	var anomalies []models.Anomaly

	negativePct := result.BasicStats.SentimentPercentages[models.SentimentNegative]
	if negativePct > negativeSentimentThreshold {
		anomalies = append(anomalies, models.Anomaly{
			Type:        "high_negative_sentiment",
			Severity:    models.SeverityHigh,
			Value:       negativePct,
			Threshold:   negativeSentimentThreshold,
			Description: fmt.Sprintf("Unusually high negative sentiment: %.2f%%", negativePct),
		})
	}

	totalPosts := result.BasicStats.TotalPosts
	if period == models.PeriodHourly && totalPosts > volumeSpikeThreshold {
		anomalies = append(anomalies, models.Anomaly{
			Type:        "volume_spike",
			Severity:    models.SeverityMedium,
			Value:       float64(totalPosts),
			Threshold:   volumeSpikeThreshold,
			Description: fmt.Sprintf("Post volume spike: %d posts/hour", totalPosts),
		})
	}

	meanConfidence := result.ConfidenceStats.Mean
	if meanConfidence < lowConfidenceThreshold {
		anomalies = append(anomalies, models.Anomaly{
			Type:        "low_confidence",
			Severity:    models.SeverityMedium,
			Value:       meanConfidence,
			Threshold:   lowConfidenceThreshold,
			Description: fmt.Sprintf("Analysis confidence dropped: %.1f%%", meanConfidence*100),
		})
	}

	return anomalies
}
