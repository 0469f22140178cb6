package models

const (
	PeriodHourly = "hourly"
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
	PeriodCustom = "custom"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

type AggregationResult struct {
	BasicStats       BasicStats             `json:"basic_stats" dynamodbav:"basic_stats"`
	ConfidenceStats  SeriesStats            `json:"confidence_stats" dynamodbav:"confidence_stats"`
	EmotionsStats    map[string]SeriesStats `json:"emotions_stats" dynamodbav:"emotions_stats"`
	KeywordAnalysis  KeywordAnalysis        `json:"keyword_analysis" dynamodbav:"keyword_analysis"`
	TemporalAnalysis TemporalAnalysis       `json:"temporal_analysis" dynamodbav:"temporal_analysis"`
	LanguageAnalysis LanguageAnalysis       `json:"language_analysis" dynamodbav:"language_analysis"`
}

type BasicStats struct {
	TotalPosts            int                `json:"total_posts" dynamodbav:"total_posts"`
	SentimentDistribution map[string]int     `json:"sentiment_distribution" dynamodbav:"sentiment_distribution"`
	SentimentPercentages  map[string]float64 `json:"sentiment_percentages" dynamodbav:"sentiment_percentages"`
}

// SeriesStats describes one numeric series. Std is the sample standard
// deviation, defined as 0 for a single-element series.
type SeriesStats struct {
	Mean   float64 `json:"mean" dynamodbav:"mean"`
	Median float64 `json:"median" dynamodbav:"median"`
	Std    float64 `json:"std" dynamodbav:"std"`
	Min    float64 `json:"min" dynamodbav:"min"`
	Max    float64 `json:"max" dynamodbav:"max"`
}

type KeywordAnalysis struct {
	TopKeywords         []KeywordCount `json:"top_keywords" dynamodbav:"top_keywords"`
	TotalUniqueKeywords int            `json:"total_unique_keywords" dynamodbav:"total_unique_keywords"`
}

type KeywordCount struct {
	Keyword string `json:"keyword" dynamodbav:"keyword"`
	Count   int    `json:"count" dynamodbav:"count"`
}

type TemporalAnalysis struct {
	// HourlyDistribution counts records per hour-of-day bucket ("00".."23"),
	// independent of calendar day.
	HourlyDistribution map[string]int `json:"hourly_distribution" dynamodbav:"hourly_distribution"`
}

type LanguageAnalysis struct {
	Distribution map[string]int `json:"distribution" dynamodbav:"distribution"`
}

type TrendAnalysis struct {
	SentimentTrends map[string]SentimentTrend `json:"sentiment_trends,omitempty" dynamodbav:"sentiment_trends,omitempty"`
	VolumeTrend     *VolumeTrend              `json:"volume_trend,omitempty" dynamodbav:"volume_trend,omitempty"`
}

type SentimentTrend struct {
	Current       float64 `json:"current" dynamodbav:"current"`
	HistoricalAvg float64 `json:"historical_avg" dynamodbav:"historical_avg"`
	Change        float64 `json:"change" dynamodbav:"change"`
	Trend         string  `json:"trend" dynamodbav:"trend"`
}

type VolumeTrend struct {
	Current          int     `json:"current" dynamodbav:"current"`
	HistoricalAvg    float64 `json:"historical_avg" dynamodbav:"historical_avg"`
	Change           float64 `json:"change" dynamodbav:"change"`
	PercentageChange float64 `json:"percentage_change" dynamodbav:"percentage_change"`
}

type Anomaly struct {
	Type        string  `json:"type" dynamodbav:"type"`
	Severity    string  `json:"severity" dynamodbav:"severity"`
	Value       float64 `json:"value" dynamodbav:"value"`
	Threshold   float64 `json:"threshold" dynamodbav:"threshold"`
	Description string  `json:"description" dynamodbav:"description"`
}

type Alert struct {
	Type      string  `json:"type"`
	Priority  string  `json:"priority"`
	Title     string  `json:"title"`
	Details   Anomaly `json:"details"`
	Timestamp string  `json:"timestamp"`
}

// Summary is one persisted aggregation run, keyed by SummaryID
// ("<period>_<aggregation_key>"). Re-running a window overwrites the same key.
type Summary struct {
	SummaryID      string            `json:"summary_id" dynamodbav:"summary_id"`
	Period         string            `json:"period" dynamodbav:"period"`
	AggregationKey string            `json:"aggregation_key" dynamodbav:"aggregation_key"`
	Timestamp      string            `json:"timestamp" dynamodbav:"timestamp"`
	DataRange      DataRange         `json:"data_range" dynamodbav:"data_range"`
	AggregatedData AggregationResult `json:"aggregated_data" dynamodbav:"aggregated_data"`
	TrendAnalysis  TrendAnalysis     `json:"trend_analysis" dynamodbav:"trend_analysis"`
	Anomalies      []Anomaly         `json:"anomalies,omitempty" dynamodbav:"anomalies,omitempty"`
	TotalPosts     int               `json:"total_posts" dynamodbav:"total_posts"`
	TTL            int64             `json:"ttl" dynamodbav:"ttl"`
}

type DataRange struct {
	Start string `json:"start" dynamodbav:"start"`
	End   string `json:"end" dynamodbav:"end"`
}
