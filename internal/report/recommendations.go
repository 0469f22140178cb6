package report

import "github.com/echolens/echolens/internal/models"

const (
	negativeActionThreshold = 40.0 // percent
	lowVolumeThreshold      = 100  // posts
	positiveReuseThreshold  = 60.0 // percent
)

// BuildRecommendations derives actionable follow-ups from the aggregated
// stats. Rules are independent; an empty window yields no recommendations.
func BuildRecommendations(aggregated models.AggregationResult) []models.Recommendation {
	var recommendations []models.Recommendation

	percentages := aggregated.BasicStats.SentimentPercentages

	if percentages[models.SentimentNegative] > negativeActionThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Priority:        "high",
			Category:        "sentiment_management",
			Action:          "Respond to negative sentiment",
			Description:     "Negative sentiment exceeds 40%. Coordinate with the customer support team to resolve emerging issues early.",
			EstimatedImpact: "high",
		})
	}

	if aggregated.BasicStats.TotalPosts < lowVolumeThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Priority:        "medium",
			Category:        "engagement",
			Action:          "Improve engagement",
			Description:     "Post volume is low. Consider brand awareness and engagement campaigns to grow the conversation.",
			EstimatedImpact: "medium",
		})
	}

	if percentages[models.SentimentPositive] > positiveReuseThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Priority:        "low",
			Category:        "opportunity",
			Action:          "Leverage positive sentiment",
			Description:     "Positive reactions are frequent. Reuse the success stories as marketing material.",
			EstimatedImpact: "medium",
		})
	}

	return recommendations
}
