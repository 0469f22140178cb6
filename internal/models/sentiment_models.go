package models

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentUnknown  = "unknown"
)

// SentimentRecord is one analyzed post, written once by the classifier step
// and immutable afterwards. AnalysisTimestamp (RFC3339) is the windowing key
// for aggregation, not the post's creation time.
type SentimentRecord struct {
	PostID            string             `json:"post_id" dynamodbav:"post_id"`
	OriginalText      string             `json:"original_text,omitempty" dynamodbav:"original_text,omitempty"`
	CleanedText       string             `json:"cleaned_text,omitempty" dynamodbav:"cleaned_text,omitempty"`
	Sentiment         string             `json:"sentiment" dynamodbav:"sentiment"`
	Confidence        float64            `json:"confidence" dynamodbav:"confidence"`
	Emotions          map[string]float64 `json:"emotions,omitempty" dynamodbav:"emotions,omitempty"`
	Keywords          []string           `json:"keywords,omitempty" dynamodbav:"keywords,omitempty"`
	AnalysisTimestamp string             `json:"analysis_timestamp" dynamodbav:"analysis_timestamp"`
	Source            string             `json:"analysis_source,omitempty" dynamodbav:"analysis_source,omitempty"`
	Error             string             `json:"error,omitempty" dynamodbav:"error,omitempty"`
	Metadata          RecordMetadata     `json:"metadata" dynamodbav:"metadata"`
}

type RecordMetadata struct {
	TextLength  int    `json:"text_length" dynamodbav:"text_length"`
	Language    string `json:"language" dynamodbav:"language"`
	HasMentions bool   `json:"has_mentions" dynamodbav:"has_mentions"`
	HasHashtags bool   `json:"has_hashtags" dynamodbav:"has_hashtags"`
	HasURLs     bool   `json:"has_urls" dynamodbav:"has_urls"`
}

// Filter narrows a windowed fetch. All fields optional, AND-combined.
type Filter struct {
	Sentiment     string   `json:"sentiment,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	MinConfidence *float64 `json:"min_confidence,omitempty"`
}

// Matches reports whether a record satisfies every supplied filter.
func (f *Filter) Matches(r SentimentRecord) bool {
	if f == nil {
		return true
	}
	if f.Sentiment != "" && r.Sentiment != f.Sentiment {
		return false
	}
	if len(f.Keywords) > 0 {
		found := false
		for _, want := range f.Keywords {
			for _, kw := range r.Keywords {
				if kw == want {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinConfidence != nil && r.Confidence < *f.MinConfidence {
		return false
	}
	return true
}
