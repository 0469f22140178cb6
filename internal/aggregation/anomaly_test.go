package aggregation

import (
	"testing"
	"time"

	"github.com/echolens/echolens/internal/models"
)

func anomalyInput(negativePct float64, totalPosts int, meanConfidence float64) models.AggregationResult {
	return models.AggregationResult{
		BasicStats: models.BasicStats{
			TotalPosts: totalPosts,
			SentimentPercentages: map[string]float64{
				models.SentimentNegative: negativePct,
			},
		},
		ConfidenceStats: models.SeriesStats{Mean: meanConfidence},
	}
}

func TestDetectAnomaliesHighNegative(t *testing.T) {
	anomalies := DetectAnomalies(anomalyInput(71, 5, 0.9), models.PeriodHourly)

	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d: %v", len(anomalies), anomalies)
	}
	a := anomalies[0]
	if a.Type != "high_negative_sentiment" {
		t.Errorf("type = %q", a.Type)
	}
	if a.Severity != models.SeverityHigh {
		t.Errorf("severity = %q, want high", a.Severity)
	}
	if a.Value != 71 || a.Threshold != 70 {
		t.Errorf("value/threshold = %f/%f", a.Value, a.Threshold)
	}
}

func TestDetectAnomaliesThresholdIsExclusive(t *testing.T) {
	if got := DetectAnomalies(anomalyInput(70, 5, 0.9), models.PeriodHourly); len(got) != 0 {
		t.Errorf("exactly 70%% negative must not trigger, got %v", got)
	}
}

func TestDetectAnomaliesVolumeSpikeOnlyHourly(t *testing.T) {
	hourly := DetectAnomalies(anomalyInput(0, 1500, 0.9), models.PeriodHourly)
	if len(hourly) != 1 || hourly[0].Type != "volume_spike" {
		t.Errorf("expected one volume_spike for hourly, got %v", hourly)
	}
	if hourly[0].Severity != models.SeverityMedium {
		t.Errorf("volume spike severity = %q, want medium", hourly[0].Severity)
	}

	daily := DetectAnomalies(anomalyInput(0, 1500, 0.9), models.PeriodDaily)
	if len(daily) != 0 {
		t.Errorf("volume spike must be hourly-only, got %v", daily)
	}
}

func TestDetectAnomaliesIndependentRules(t *testing.T) {
	anomalies := DetectAnomalies(anomalyInput(71, 1500, 0.4), models.PeriodHourly)

	if len(anomalies) != 3 {
		t.Fatalf("all three rules should fire, got %d: %v", len(anomalies), anomalies)
	}
	types := map[string]bool{}
	for _, a := range anomalies {
		types[a.Type] = true
	}
	for _, want := range []string{"high_negative_sentiment", "volume_spike", "low_confidence"} {
		if !types[want] {
			t.Errorf("missing anomaly %q", want)
		}
	}
}

func TestGenerateAlertsOnlyHighSeverity(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	anomalies := []models.Anomaly{
		{Type: "high_negative_sentiment", Severity: models.SeverityHigh, Description: "Unusually high negative sentiment: 71.00%"},
		{Type: "volume_spike", Severity: models.SeverityMedium, Description: "Post volume spike: 1500 posts/hour"},
	}

	alerts := GenerateAlerts(anomalies, now)

	if len(alerts) != 1 {
		t.Fatalf("only high-severity anomalies escalate, got %d alerts", len(alerts))
	}
	alert := alerts[0]
	if alert.Type != "anomaly_alert" {
		t.Errorf("alert type = %q", alert.Type)
	}
	if alert.Title != anomalies[0].Description {
		t.Errorf("title should carry the anomaly description, got %q", alert.Title)
	}
	if alert.Details.Type != "high_negative_sentiment" {
		t.Errorf("details should carry the anomaly, got %+v", alert.Details)
	}
	if alert.Timestamp != "2026-08-30T12:00:00Z" {
		t.Errorf("timestamp = %q", alert.Timestamp)
	}
}

func TestGenerateAlertsEmpty(t *testing.T) {
	if alerts := GenerateAlerts(nil, time.Now()); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %v", alerts)
	}
}
