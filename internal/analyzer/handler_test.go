package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/echolens/echolens/internal/models"
	"github.com/echolens/echolens/internal/sentiment"
)

type fakeSink struct {
	inserted []models.SentimentRecord
	err      error
}

func (f *fakeSink) InsertSentimentRecords(_ context.Context, records []models.SentimentRecord) error {
	f.inserted = append(f.inserted, records...)
	return f.err
}

func newTestAnalyzer(sink *fakeSink) *Analyzer {
	a := New(sentiment.NewClassifier(nil), sink)
	a.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func TestAnalyzePostMetadata(t *testing.T) {
	a := newTestAnalyzer(&fakeSink{})

	post := models.Post{
		PostID: "twitter_1",
		Text:   "Love the new #update from @vendor! https://example.com",
	}
	record := a.AnalyzePost(context.Background(), post)

	if record.PostID != "twitter_1" {
		t.Errorf("post_id = %q", record.PostID)
	}
	if record.AnalysisTimestamp != "2026-08-30T12:00:00Z" {
		t.Errorf("analysis_timestamp = %q", record.AnalysisTimestamp)
	}
	if !record.Metadata.HasMentions || !record.Metadata.HasHashtags || !record.Metadata.HasURLs {
		t.Errorf("metadata flags wrong: %+v", record.Metadata)
	}
	if record.Metadata.Language != "en" {
		t.Errorf("language = %q", record.Metadata.Language)
	}
	if record.Sentiment != models.SentimentPositive {
		t.Errorf("sentiment = %q, want positive", record.Sentiment)
	}
	if record.Source != sentiment.SourceVADER {
		t.Errorf("source = %q, want vader", record.Source)
	}
	found := false
	for _, kw := range record.Keywords {
		if kw == "#update" {
			found = true
		}
	}
	if !found {
		t.Errorf("keywords missing #update: %v", record.Keywords)
	}
}

func TestAnalyzePostEmptyText(t *testing.T) {
	a := newTestAnalyzer(&fakeSink{})

	record := a.AnalyzePost(context.Background(), models.Post{PostID: "p1", Text: "   "})

	if record.Sentiment != models.SentimentUnknown {
		t.Errorf("sentiment = %q, want unknown", record.Sentiment)
	}
	if record.Confidence != 0 {
		t.Errorf("confidence = %f, want 0", record.Confidence)
	}
	if record.Error == "" {
		t.Error("empty text must be noted on the record")
	}
}

func TestHandleDirectRequest(t *testing.T) {
	sink := &fakeSink{}
	a := newTestAnalyzer(sink)

	event := `{"posts":[{"post_id":"a","text":"this is great"},{"post_id":"b","text":"this is awful"}]}`
	resp, err := a.Handle(context.Background(), json.RawMessage(event))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, resp.Body)
	}
	if !strings.Contains(resp.Body, `"total_analyzed":2`) {
		t.Errorf("body = %s", resp.Body)
	}
	if len(sink.inserted) != 2 {
		t.Errorf("expected 2 stored records, got %d", len(sink.inserted))
	}
}

func TestHandleTypedAnalyzeRequest(t *testing.T) {
	sink := &fakeSink{}
	a := newTestAnalyzer(sink)

	payload, err := json.Marshal(models.AnalyzeRequest{
		Posts: []models.Post{{PostID: "a", Text: "this is great"}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	resp, err := a.Handle(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, resp.Body)
	}
	if len(sink.inserted) != 1 {
		t.Errorf("expected 1 stored record, got %d", len(sink.inserted))
	}
}

func TestHandleDirectRequestEmpty(t *testing.T) {
	a := newTestAnalyzer(&fakeSink{})

	resp, _ := a.Handle(context.Background(), json.RawMessage(`{"posts":[]}`))
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleBatchCollectsErrors(t *testing.T) {
	sink := &fakeSink{}
	a := newTestAnalyzer(sink)

	event := `{"Records":[
		{"messageId":"m1","body":"{\"post_id\":\"a\",\"text\":\"love it\"}"},
		{"messageId":"m2","body":"not json"}
	]}`
	resp, err := a.Handle(context.Background(), json.RawMessage(event))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, `"processed":1`) || !strings.Contains(resp.Body, `"errors":1`) {
		t.Errorf("body = %s", resp.Body)
	}
	if !strings.Contains(resp.Body, "m2") {
		t.Errorf("error details should name the failed message, body = %s", resp.Body)
	}
}

func TestHandleUnknownShape(t *testing.T) {
	a := newTestAnalyzer(&fakeSink{})

	resp, _ := a.Handle(context.Background(), json.RawMessage(`{"foo":"bar"}`))
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleSinkFailureDoesNotFailInvocation(t *testing.T) {
	a := newTestAnalyzer(&fakeSink{err: errors.New("table missing")})

	resp, _ := a.Handle(context.Background(), json.RawMessage(`{"posts":[{"post_id":"a","text":"fine"}]}`))
	if resp.StatusCode != 200 {
		t.Errorf("storage failure must not fail the invocation, status = %d", resp.StatusCode)
	}
}
