package models

const (
	ReportComprehensive    = "comprehensive"
	ReportSentimentSummary = "sentiment_summary"
	ReportKeywordAnalysis  = "keyword_analysis"
	ReportAIInsights       = "ai_insights"
)

type Report struct {
	ReportType  string    `json:"report_type"`
	GeneratedAt string    `json:"generated_at"`
	DataRange   DataRange `json:"data_range"`

	// comprehensive
	Summary          *ReportSummary     `json:"summary,omitempty"`
	DetailedAnalysis *AggregationResult `json:"detailed_analysis,omitempty"`
	RawDataSample    []SentimentRecord  `json:"raw_data_sample,omitempty"`

	// sentiment_summary
	SentimentOverview  *BasicStats            `json:"sentiment_overview,omitempty"`
	EmotionDetails     map[string]SeriesStats `json:"emotion_details,omitempty"`
	ConfidenceAnalysis *SeriesStats           `json:"confidence_analysis,omitempty"`

	// keyword_analysis
	KeywordInsights   *KeywordAnalysis  `json:"keyword_insights,omitempty"`
	TemporalPatterns  *TemporalAnalysis `json:"temporal_patterns,omitempty"`
	LanguageBreakdown *LanguageAnalysis `json:"language_breakdown,omitempty"`

	// ai_insights / comprehensive
	AIInsights      *AIInsights      `json:"ai_insights,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	KeyMetrics      *KeyMetrics      `json:"key_metrics,omitempty"`
}

type ReportSummary struct {
	TotalPostsAnalyzed int    `json:"total_posts_analyzed"`
	AnalysisPeriodDays int    `json:"analysis_period_days"`
	OverallSentiment   string `json:"overall_sentiment"`
}

// AIInsights carries the generator's narrative verbatim; the text is opaque
// and never parsed.
type AIInsights struct {
	InsightText string `json:"insight_text"`
	GeneratedAt string `json:"generated_at"`
	ModelUsed   string `json:"model_used,omitempty"`
	Error       string `json:"error,omitempty"`
}

type Recommendation struct {
	Priority        string `json:"priority"`
	Category        string `json:"category"`
	Action          string `json:"action"`
	Description     string `json:"description"`
	EstimatedImpact string `json:"estimated_impact"`
}

type KeyMetrics struct {
	TotalPosts        int     `json:"total_posts"`
	DominantSentiment string  `json:"dominant_sentiment"`
	ConfidenceScore   float64 `json:"confidence_score"`
}
