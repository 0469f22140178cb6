package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/echolens/echolens/internal/aggregation"
	"github.com/echolens/echolens/internal/clients"
	"github.com/echolens/echolens/internal/models"
)

const (
	insightModel       = openai.GPT4oMini
	insightRetries     = 3
	insightTemperature = 0.3
	insightMaxTokens   = 2000

	rawSampleSize      = 5
	promptKeywordCount = 10
)

const insightFallbackText = "AI insight generation failed. Manual review of the aggregated statistics is recommended."

// Generator assembles on-demand reports from a window of sentiment records.
// The OpenAI client may be nil; insight sections then carry the fallback text.
type Generator struct {
	openAI *clients.OpenAIClient
	now    func() time.Time
}

func NewGenerator(openAI *clients.OpenAIClient) *Generator {
	return &Generator{openAI: openAI, now: time.Now}
}

// Build produces the report of the requested type over the given records.
// Unknown report types are an error the caller maps to a 400 response.
func (g *Generator) Build(ctx context.Context, reportType string, records []models.SentimentRecord, window aggregation.Window) (models.Report, error) {
	aggregated := aggregation.Aggregate(records)

	report := models.Report{
		ReportType:  reportType,
		GeneratedAt: g.now().UTC().Format(time.RFC3339),
		DataRange: models.DataRange{
			Start: window.Start.Format(time.RFC3339),
			End:   window.End.Format(time.RFC3339),
		},
	}

	switch reportType {
	case models.ReportComprehensive:
		insights := g.GenerateInsights(ctx, aggregated)
		report.Summary = &models.ReportSummary{
			TotalPostsAnalyzed: len(records),
			AnalysisPeriodDays: int(window.End.Sub(window.Start).Hours() / 24),
			OverallSentiment:   dominantSentiment(aggregated),
		}
		report.DetailedAnalysis = &aggregated
		report.AIInsights = &insights
		report.Recommendations = BuildRecommendations(aggregated)
		report.RawDataSample = sampleRecords(records, rawSampleSize)

	case models.ReportSentimentSummary:
		report.SentimentOverview = &aggregated.BasicStats
		report.EmotionDetails = aggregated.EmotionsStats
		report.ConfidenceAnalysis = &aggregated.ConfidenceStats

	case models.ReportKeywordAnalysis:
		report.KeywordInsights = &aggregated.KeywordAnalysis
		report.TemporalPatterns = &aggregated.TemporalAnalysis
		report.LanguageBreakdown = &aggregated.LanguageAnalysis

	case models.ReportAIInsights:
		insights := g.GenerateInsights(ctx, aggregated)
		report.AIInsights = &insights
		report.Recommendations = BuildRecommendations(aggregated)
		report.KeyMetrics = &models.KeyMetrics{
			TotalPosts:        len(records),
			DominantSentiment: dominantSentiment(aggregated),
			ConfidenceScore:   aggregated.ConfidenceStats.Mean,
		}

	default:
		return models.Report{}, fmt.Errorf("unknown report type: %s", reportType)
	}

	return report, nil
}

// GenerateInsights asks the hosted model for a business narrative over the
// aggregated stats. Failures never fail the report: the section carries the
// fallback text and the error string instead.
func (g *Generator) GenerateInsights(ctx context.Context, aggregated models.AggregationResult) models.AIInsights {
	generatedAt := g.now().UTC().Format(time.RFC3339)

	if g.openAI == nil {
		return models.AIInsights{
			InsightText: insightFallbackText,
			GeneratedAt: generatedAt,
			Error:       "no model client configured",
		}
	}

	text, err := g.requestInsights(ctx, aggregated)
	if err != nil {
		slog.Error("[ReportGenerator] Failed to generate AI insights",
			slog.String("error", err.Error()))
		return models.AIInsights{
			InsightText: insightFallbackText,
			GeneratedAt: generatedAt,
			Error:       err.Error(),
		}
	}

	return models.AIInsights{
		InsightText: text,
		GeneratedAt: generatedAt,
		ModelUsed:   insightModel,
	}
}

func (g *Generator) requestInsights(ctx context.Context, aggregated models.AggregationResult) (string, error) {
	prompt, err := insightPrompt(aggregated)
	if err != nil {
		return "", err
	}

	var resp openai.ChatCompletionResponse
	var completionErr error
	for i := 0; i < insightRetries; i++ {
		start := time.Now()
		resp, completionErr = g.openAI.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       insightModel,
			MaxTokens:   insightMaxTokens,
			Temperature: insightTemperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
		if completionErr == nil {
			break
		}
		slog.Warn("[ReportGenerator] Failed to get a response from OpenAI, retrying...",
			slog.String("error", completionErr.Error()),
			slog.Int("attempt", i+1),
			slog.Duration("elapsed", time.Since(start)))
	}
	if completionErr != nil {
		return "", completionErr
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("[ReportGenerator] empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}

func insightPrompt(aggregated models.AggregationResult) (string, error) {
	percentages, err := json.Marshal(aggregated.BasicStats.SentimentPercentages)
	if err != nil {
		return "", err
	}

	topKeywords := aggregated.KeywordAnalysis.TopKeywords
	if len(topKeywords) > promptKeywordCount {
		topKeywords = topKeywords[:promptKeywordCount]
	}
	keywords, err := json.Marshal(topKeywords)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Provide business insights for the following social listening analysis results:

Basic statistics:
- Total posts: %d
- Sentiment distribution: %s

Top keywords:
%s

Analyze from these angles:
1. Interpretation of the overall sentiment trend
2. Notable keywords and topics
3. Business impact and opportunities
4. Potential risks and concerns
5. Recommended actions`,
		aggregated.BasicStats.TotalPosts, percentages, keywords), nil
}

// dominantSentiment picks the label with the highest percentage; ties resolve
// to whichever map iteration yields first, which is acceptable for a display
// field.
func dominantSentiment(aggregated models.AggregationResult) string {
	dominant := models.SentimentUnknown
	best := -1.0
	for label, pct := range aggregated.BasicStats.SentimentPercentages {
		if pct > best {
			dominant = label
			best = pct
		}
	}
	return dominant
}

func sampleRecords(records []models.SentimentRecord, n int) []models.SentimentRecord {
	if len(records) <= n {
		return records
	}
	return records[:n]
}
