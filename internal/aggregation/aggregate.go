package aggregation

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/echolens/echolens/internal/models"
)

const topKeywordCount = 20

// EmptyResult is the defined outcome for a window with zero posts: empty
// collections, zeroed series, no error.
func EmptyResult() models.AggregationResult {
	return models.AggregationResult{
		BasicStats: models.BasicStats{
			SentimentDistribution: map[string]int{},
			SentimentPercentages:  map[string]float64{},
		},
		EmotionsStats:    map[string]models.SeriesStats{},
		KeywordAnalysis:  models.KeywordAnalysis{TopKeywords: []models.KeywordCount{}},
		TemporalAnalysis: models.TemporalAnalysis{HourlyDistribution: map[string]int{}},
		LanguageAnalysis: models.LanguageAnalysis{Distribution: map[string]int{}},
	}
}

// Aggregate computes the full statistics tuple for one window's records.
func Aggregate(records []models.SentimentRecord) models.AggregationResult {
	if len(records) == 0 {
		return EmptyResult()
	}

	result := EmptyResult()
	total := len(records)
	result.BasicStats.TotalPosts = total

	for _, r := range records {
		label := r.Sentiment
		if label == "" {
			label = models.SentimentUnknown
		}
		result.BasicStats.SentimentDistribution[label]++
	}
	// Labels absent from the input stay absent from the mapping.
	for label, count := range result.BasicStats.SentimentDistribution {
		result.BasicStats.SentimentPercentages[label] = round2(float64(count) / float64(total) * 100)
	}

	confidences := make([]float64, 0, total)
	emotionSeries := make(map[string][]float64)
	for _, r := range records {
		// Zero confidence marks a record that carries no real score (e.g. an
		// unknown-sentiment error record) and is excluded from the series.
		if r.Confidence > 0 {
			confidences = append(confidences, r.Confidence)
		}
		for emotion, score := range r.Emotions {
			emotionSeries[emotion] = append(emotionSeries[emotion], score)
		}
	}
	result.ConfidenceStats = seriesStats(confidences)
	for emotion, scores := range emotionSeries {
		result.EmotionsStats[emotion] = seriesStats(scores)
	}

	result.KeywordAnalysis = rankKeywords(records)
	result.TemporalAnalysis.HourlyDistribution = hourlyDistribution(records)
	result.LanguageAnalysis.Distribution = languageDistribution(records)

	return result
}

// seriesStats computes mean/median/sample-stdev/min/max over one numeric
// series. A single-element series has stdev 0; an empty series is all zeros.
func seriesStats(values []float64) models.SeriesStats {
	if len(values) == 0 {
		return models.SeriesStats{}
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	std := 0.0
	if len(values) > 1 {
		if s, err := stats.StandardDeviationSample(values); err == nil {
			std = s
		}
	}

	return models.SeriesStats{
		Mean:   mean,
		Median: median,
		Std:    std,
		Min:    min,
		Max:    max,
	}
}

// rankKeywords counts keywords across records (per-record set semantics) and
// keeps the 20 highest counts, ties broken by first-encountered order.
func rankKeywords(records []models.SentimentRecord) models.KeywordAnalysis {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	order := 0
	for _, r := range records {
		seen := make(map[string]struct{}, len(r.Keywords))
		for _, kw := range r.Keywords {
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			if _, known := counts[kw]; !known {
				firstSeen[kw] = order
				order++
			}
			counts[kw]++
		}
	}

	ranked := make([]models.KeywordCount, 0, len(counts))
	for kw, count := range counts {
		ranked = append(ranked, models.KeywordCount{Keyword: kw, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Keyword] < firstSeen[ranked[j].Keyword]
	})

	top := ranked
	if len(top) > topKeywordCount {
		top = top[:topKeywordCount]
	}

	return models.KeywordAnalysis{
		TopKeywords:         top,
		TotalUniqueKeywords: len(counts),
	}
}

// hourlyDistribution buckets records by hour of day regardless of calendar
// day. Unparseable timestamps are skipped.
func hourlyDistribution(records []models.SentimentRecord) map[string]int {
	buckets := make(map[string]int)
	for _, r := range records {
		ts, err := time.Parse(time.RFC3339, r.AnalysisTimestamp)
		if err != nil {
			slog.Debug("[Aggregation] Skipping record with unparseable timestamp",
				slog.String("post_id", r.PostID),
				slog.String("timestamp", r.AnalysisTimestamp))
			continue
		}
		buckets[ts.UTC().Format("15")]++
	}
	return buckets
}

func languageDistribution(records []models.SentimentRecord) map[string]int {
	distribution := make(map[string]int)
	for _, r := range records {
		lang := r.Metadata.Language
		if lang == "" {
			lang = "unknown"
		}
		distribution[lang]++
	}
	return distribution
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
