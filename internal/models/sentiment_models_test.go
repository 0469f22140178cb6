package models

import "testing"

func TestFilterMatches(t *testing.T) {
	minConf := 0.7
	record := SentimentRecord{
		Sentiment:  SentimentNegative,
		Confidence: 0.8,
		Keywords:   []string{"#outage", "@support"},
	}

	cases := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"nil filter matches", nil, true},
		{"empty filter matches", &Filter{}, true},
		{"sentiment match", &Filter{Sentiment: SentimentNegative}, true},
		{"sentiment mismatch", &Filter{Sentiment: SentimentPositive}, false},
		{"keyword match", &Filter{Keywords: []string{"#outage"}}, true},
		{"any keyword matches", &Filter{Keywords: []string{"#unrelated", "@support"}}, true},
		{"keyword mismatch", &Filter{Keywords: []string{"#unrelated"}}, false},
		{"min confidence met", &Filter{MinConfidence: &minConf}, true},
		{"all conditions AND", &Filter{Sentiment: SentimentNegative, Keywords: []string{"#outage"}, MinConfidence: &minConf}, true},
		{"one condition failing fails", &Filter{Sentiment: SentimentNegative, Keywords: []string{"#unrelated"}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(record); got != tc.want {
				t.Errorf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterMinConfidenceBoundary(t *testing.T) {
	minConf := 0.8
	f := &Filter{MinConfidence: &minConf}

	if !f.Matches(SentimentRecord{Confidence: 0.8}) {
		t.Error("min confidence is inclusive")
	}
	if f.Matches(SentimentRecord{Confidence: 0.79}) {
		t.Error("below the minimum must not match")
	}
}
