package aggregation

import (
	"testing"

	"github.com/echolens/echolens/internal/models"
)

func summaryWith(positivePct float64, totalPosts int) models.Summary {
	return models.Summary{
		Period: models.PeriodHourly,
		AggregatedData: models.AggregationResult{
			BasicStats: models.BasicStats{
				TotalPosts: totalPosts,
				SentimentPercentages: map[string]float64{
					models.SentimentPositive: positivePct,
				},
			},
		},
	}
}

func currentWith(positivePct float64, totalPosts int) models.AggregationResult {
	return models.AggregationResult{
		BasicStats: models.BasicStats{
			TotalPosts: totalPosts,
			SentimentPercentages: map[string]float64{
				models.SentimentPositive: positivePct,
			},
		},
	}
}

func TestAnalyzeTrendsNoHistory(t *testing.T) {
	trends := AnalyzeTrends(currentWith(50, 10), nil)

	if trends.SentimentTrends != nil {
		t.Errorf("expected no sentiment trends without history, got %v", trends.SentimentTrends)
	}
	if trends.VolumeTrend != nil {
		t.Errorf("expected no volume trend without history, got %+v", trends.VolumeTrend)
	}
}

func TestAnalyzeTrendsIncreasing(t *testing.T) {
	historical := []models.Summary{
		summaryWith(40, 100),
		summaryWith(40, 100),
	}

	trends := AnalyzeTrends(currentWith(50, 150), historical)

	positive, ok := trends.SentimentTrends[models.SentimentPositive]
	if !ok {
		t.Fatal("expected a positive sentiment trend")
	}
	if positive.Current != 50 {
		t.Errorf("current = %f, want 50", positive.Current)
	}
	if positive.HistoricalAvg != 40 {
		t.Errorf("historical avg = %f, want 40", positive.HistoricalAvg)
	}
	if positive.Change != 10 {
		t.Errorf("change = %f, want 10", positive.Change)
	}
	if positive.Trend != "increasing" {
		t.Errorf("trend = %q, want increasing", positive.Trend)
	}

	if trends.VolumeTrend == nil {
		t.Fatal("expected a volume trend")
	}
	if trends.VolumeTrend.Change != 50 {
		t.Errorf("volume change = %f, want 50", trends.VolumeTrend.Change)
	}
	if trends.VolumeTrend.PercentageChange != 50 {
		t.Errorf("volume pct change = %f, want 50", trends.VolumeTrend.PercentageChange)
	}
}

func TestAnalyzeTrendsZeroVolumeHistory(t *testing.T) {
	trends := AnalyzeTrends(currentWith(50, 10), []models.Summary{summaryWith(50, 0)})

	if trends.VolumeTrend.PercentageChange != 0 {
		t.Errorf("zero historical volume must give 0%% change, got %f", trends.VolumeTrend.PercentageChange)
	}
}

func TestTrendDirection(t *testing.T) {
	cases := []struct {
		change float64
		want   string
	}{
		{6, "increasing"},
		{5, "stable"},
		{0, "stable"},
		{-5, "stable"},
		{-5.1, "decreasing"},
	}
	for _, tc := range cases {
		if got := trendDirection(tc.change); got != tc.want {
			t.Errorf("trendDirection(%f) = %q, want %q", tc.change, got, tc.want)
		}
	}
}
