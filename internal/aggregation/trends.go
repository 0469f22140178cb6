package aggregation

import (
	"github.com/montanaflynn/stats"

	"github.com/echolens/echolens/internal/models"
)

const trendThreshold = 5.0 // percentage points

var trendedSentiments = []string{
	models.SentimentPositive,
	models.SentimentNegative,
	models.SentimentNeutral,
}

// AnalyzeTrends compares the current aggregation against up to K prior
// summaries of the same period. With zero priors the result is empty: a
// cold-start window has no trend by definition.
func AnalyzeTrends(current models.AggregationResult, historical []models.Summary) models.TrendAnalysis {
	trends := models.TrendAnalysis{}
	if len(historical) == 0 {
		return trends
	}

	trends.SentimentTrends = make(map[string]models.SentimentTrend, len(trendedSentiments))
	for _, sentiment := range trendedSentiments {
		currentPct := current.BasicStats.SentimentPercentages[sentiment]

		historicalValues := make([]float64, 0, len(historical))
		for _, h := range historical {
			historicalValues = append(historicalValues, h.AggregatedData.BasicStats.SentimentPercentages[sentiment])
		}

		avgHistorical, _ := stats.Mean(historicalValues)
		change := currentPct - avgHistorical
		trends.SentimentTrends[sentiment] = models.SentimentTrend{
			Current:       currentPct,
			HistoricalAvg: round2(avgHistorical),
			Change:        round2(change),
			Trend:         trendDirection(change),
		}
	}

	currentVolume := current.BasicStats.TotalPosts
	historicalVolumes := make([]float64, 0, len(historical))
	for _, h := range historical {
		historicalVolumes = append(historicalVolumes, float64(h.AggregatedData.BasicStats.TotalPosts))
	}

	avgVolume, _ := stats.Mean(historicalVolumes)
	volumeChange := float64(currentVolume) - avgVolume
	pctChange := 0.0
	if avgVolume > 0 {
		pctChange = round2(volumeChange / avgVolume * 100)
	}
	trends.VolumeTrend = &models.VolumeTrend{
		Current:          currentVolume,
		HistoricalAvg:    round2(avgVolume),
		Change:           round2(volumeChange),
		PercentageChange: pctChange,
	}

	return trends
}

func trendDirection(change float64) string {
	switch {
	case change > trendThreshold:
		return "increasing"
	case change < -trendThreshold:
		return "decreasing"
	default:
		return "stable"
	}
}
