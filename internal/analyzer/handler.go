package analyzer

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/echolens/echolens/internal/models"
	"github.com/echolens/echolens/internal/sentiment"
)

// RecordSink persists finished analysis results.
type RecordSink interface {
	InsertSentimentRecords(ctx context.Context, records []models.SentimentRecord) error
}

// Analyzer classifies posts and writes the results. Collaborators are injected
// at construction; the handler itself is stateless across invocations.
type Analyzer struct {
	classifier *sentiment.Classifier
	sink       RecordSink
	now        func() time.Time
}

func New(classifier *sentiment.Classifier, sink RecordSink) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		sink:       sink,
		now:        time.Now,
	}
}

// analyzerEvent is the union of the two invocation shapes: an SQS batch
// ("Records") or a direct request ("posts").
type analyzerEvent struct {
	Records []struct {
		MessageID string `json:"messageId"`
		Body      string `json:"body"`
	} `json:"Records"`
	models.AnalyzeRequest
}

type recordError struct {
	RecordID string `json:"record_id"`
	Error    string `json:"error"`
}

// Handle dispatches one invocation by shape. Per-record failures are collected
// rather than failing the batch.
func (a *Analyzer) Handle(ctx context.Context, raw json.RawMessage) (models.InvocationResponse, error) {
	var event analyzerEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return errorResponse(400, "Could not parse event", err.Error()), nil
	}

	switch {
	case len(event.Records) > 0:
		return a.handleBatch(ctx, event), nil
	case event.Posts != nil:
		return a.handleDirect(ctx, event.Posts), nil
	default:
		return errorResponse(400, "Unknown event format", "expected Records or posts"), nil
	}
}

func (a *Analyzer) handleBatch(ctx context.Context, event analyzerEvent) models.InvocationResponse {
	var results []models.SentimentRecord
	var errors []recordError

	for _, record := range event.Records {
		var post models.Post
		if err := json.Unmarshal([]byte(record.Body), &post); err != nil {
			slog.Error("[Analyzer] Error processing record",
				slog.String("message_id", record.MessageID),
				slog.String("error", err.Error()))
			errors = append(errors, recordError{RecordID: record.MessageID, Error: err.Error()})
			continue
		}
		results = append(results, a.AnalyzePost(ctx, post))
	}

	a.persist(ctx, results)

	return jsonResponse(200, map[string]any{
		"processed":     len(results),
		"errors":        len(errors),
		"results":       results,
		"error_details": errors,
	})
}

func (a *Analyzer) handleDirect(ctx context.Context, posts []models.Post) models.InvocationResponse {
	if len(posts) == 0 {
		return errorResponse(400, "Please provide posts array", "No posts provided")
	}

	results := make([]models.SentimentRecord, 0, len(posts))
	for _, post := range posts {
		results = append(results, a.AnalyzePost(ctx, post))
	}

	a.persist(ctx, results)

	return jsonResponse(200, map[string]any{
		"results":        results,
		"total_analyzed": len(results),
	})
}

// AnalyzePost classifies one post into a full sentiment record. Classification
// never fails the record: empty text and degraded fallbacks come back as
// unknown-sentiment or lexicon-sourced records with the error noted inline.
func (a *Analyzer) AnalyzePost(ctx context.Context, post models.Post) models.SentimentRecord {
	text := strings.TrimSpace(post.Text)
	record := models.SentimentRecord{
		PostID:            post.PostID,
		OriginalText:      text,
		AnalysisTimestamp: a.now().UTC().Format(time.RFC3339),
		Metadata: models.RecordMetadata{
			TextLength:  len(text),
			Language:    sentiment.DetectLanguage(text),
			HasMentions: strings.Contains(text, "@"),
			HasHashtags: strings.Contains(text, "#"),
			HasURLs:     strings.Contains(strings.ToLower(text), "http"),
		},
	}

	analysis, err := a.classifier.Classify(ctx, text)
	if err != nil {
		record.Sentiment = models.SentimentUnknown
		record.Error = err.Error()
		return record
	}

	record.CleanedText = sentiment.PrepareText(text)
	record.Sentiment = analysis.Sentiment
	record.Confidence = analysis.Confidence
	record.Emotions = analysis.Emotions
	record.Keywords = sentiment.ExtractKeywords(text)
	record.Source = analysis.Source

	return record
}

// persist writes the batch; a store failure is logged but does not fail the
// invocation, matching the at-least-once delivery of the upstream queue.
func (a *Analyzer) persist(ctx context.Context, records []models.SentimentRecord) {
	if len(records) == 0 {
		return
	}
	if err := a.sink.InsertSentimentRecords(ctx, records); err != nil {
		slog.Error("[Analyzer] Failed to store analysis results",
			slog.Int("count", len(records)),
			slog.String("error", err.Error()))
	}
}

func jsonResponse(status int, body any) models.InvocationResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		slog.Error("[Analyzer] Failed to encode response body", slog.String("error", err.Error()))
		return models.InvocationResponse{StatusCode: 500, Body: `{"error":"response encoding failed"}`}
	}
	return models.InvocationResponse{StatusCode: status, Body: string(encoded)}
}

func errorResponse(status int, message, detail string) models.InvocationResponse {
	slog.Error("[Analyzer] "+message, slog.String("error", detail))
	return jsonResponse(status, map[string]any{
		"error":   detail,
		"message": message,
	})
}
