package report

import (
	"context"
	"testing"
	"time"

	"github.com/echolens/echolens/internal/aggregation"
	"github.com/echolens/echolens/internal/models"
)

func testWindow() aggregation.Window {
	return aggregation.CustomWindow(
		time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	)
}

func testRecords(n int) []models.SentimentRecord {
	records := make([]models.SentimentRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.SentimentRecord{
			PostID:            "p1",
			Sentiment:         models.SentimentPositive,
			Confidence:        0.9,
			AnalysisTimestamp: "2026-08-29T10:00:00Z",
		})
	}
	return records
}

func TestBuildUnknownReportType(t *testing.T) {
	g := NewGenerator(nil)

	if _, err := g.Build(context.Background(), "quarterly", nil, testWindow()); err == nil {
		t.Error("expected an error for an unknown report type")
	}
}

func TestBuildComprehensive(t *testing.T) {
	g := NewGenerator(nil)

	report, err := g.Build(context.Background(), models.ReportComprehensive, testRecords(8), testWindow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ReportType != models.ReportComprehensive {
		t.Errorf("report_type = %q", report.ReportType)
	}
	if report.Summary == nil || report.Summary.TotalPostsAnalyzed != 8 {
		t.Errorf("summary = %+v", report.Summary)
	}
	if report.Summary.AnalysisPeriodDays != 7 {
		t.Errorf("period days = %d, want 7", report.Summary.AnalysisPeriodDays)
	}
	if report.Summary.OverallSentiment != models.SentimentPositive {
		t.Errorf("overall sentiment = %q", report.Summary.OverallSentiment)
	}
	if report.DetailedAnalysis == nil {
		t.Error("comprehensive report needs the detailed analysis section")
	}
	if len(report.RawDataSample) != 5 {
		t.Errorf("raw sample should cap at 5, got %d", len(report.RawDataSample))
	}
	if report.AIInsights == nil || report.AIInsights.Error == "" {
		t.Errorf("no model client: insights must carry the fallback, got %+v", report.AIInsights)
	}
}

func TestBuildSentimentSummary(t *testing.T) {
	g := NewGenerator(nil)

	report, err := g.Build(context.Background(), models.ReportSentimentSummary, testRecords(3), testWindow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.SentimentOverview == nil || report.SentimentOverview.TotalPosts != 3 {
		t.Errorf("sentiment overview = %+v", report.SentimentOverview)
	}
	if report.ConfidenceAnalysis == nil {
		t.Error("missing confidence analysis")
	}
	if report.Summary != nil || report.AIInsights != nil {
		t.Error("summary-only report must not carry comprehensive sections")
	}
}

func TestBuildAIInsightsFallback(t *testing.T) {
	g := NewGenerator(nil)

	report, err := g.Build(context.Background(), models.ReportAIInsights, testRecords(3), testWindow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.AIInsights == nil {
		t.Fatal("missing insights section")
	}
	if report.AIInsights.InsightText != insightFallbackText {
		t.Errorf("insight text = %q", report.AIInsights.InsightText)
	}
	if report.KeyMetrics == nil || report.KeyMetrics.TotalPosts != 3 {
		t.Errorf("key metrics = %+v", report.KeyMetrics)
	}
	if report.KeyMetrics.DominantSentiment != models.SentimentPositive {
		t.Errorf("dominant sentiment = %q", report.KeyMetrics.DominantSentiment)
	}
}

func TestBuildEmptyWindow(t *testing.T) {
	g := NewGenerator(nil)

	report, err := g.Build(context.Background(), models.ReportKeywordAnalysis, nil, testWindow())
	if err != nil {
		t.Fatalf("an empty window must still produce a report: %v", err)
	}
	if report.KeywordInsights == nil || report.KeywordInsights.TotalUniqueKeywords != 0 {
		t.Errorf("keyword insights = %+v", report.KeywordInsights)
	}
}

func TestDominantSentimentEmpty(t *testing.T) {
	if got := dominantSentiment(aggregation.EmptyResult()); got != models.SentimentUnknown {
		t.Errorf("dominant sentiment of empty stats = %q, want unknown", got)
	}
}
