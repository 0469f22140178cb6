package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/echolens/echolens/internal/aggregation"
	"github.com/echolens/echolens/internal/models"
)

const (
	historicalTrendCount = 5
	defaultReportDays    = 7
)

// SummaryStore is the persistence surface the processor needs: the sentiment
// window to aggregate, prior summaries for trends, and the summary sink.
type SummaryStore interface {
	FetchSentimentWindow(ctx context.Context, start, end time.Time, filter *models.Filter) []models.SentimentRecord
	FetchHistoricalSummaries(ctx context.Context, period string, limit int32) []models.Summary
	PutSummary(ctx context.Context, summary models.Summary) error
}

// ReportBuilder assembles a typed report over a window of records.
type ReportBuilder interface {
	Build(ctx context.Context, reportType string, records []models.SentimentRecord, window aggregation.Window) (models.Report, error)
}

// ReportSaver persists a report and returns a download URL.
type ReportSaver interface {
	Save(ctx context.Context, report models.Report) (string, error)
}

// AlertPublisher delivers high-priority alerts to the configured sink.
type AlertPublisher interface {
	Publish(ctx context.Context, alerts []models.Alert) error
}

// Processor routes data-processor invocations. All collaborators are injected
// at construction so handlers share no package-level state.
type Processor struct {
	store       SummaryStore
	reports     ReportBuilder
	reportStore ReportSaver
	alerts      AlertPublisher
	now         func() time.Time
}

func New(store SummaryStore, reports ReportBuilder, reportStore ReportSaver, alerts AlertPublisher) *Processor {
	return &Processor{
		store:       store,
		reports:     reports,
		reportStore: reportStore,
		alerts:      alerts,
		now:         time.Now,
	}
}

// Handle dispatches one invocation by its declared type, falling back to
// shape-based auto detection when no type is given. Handled failures come back
// as error responses, not Go errors, to match the invocation contract.
func (p *Processor) Handle(ctx context.Context, raw json.RawMessage) (models.InvocationResponse, error) {
	var event models.ProcessorEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return errorResponse(400, "Could not parse event", err), nil
	}

	switch event.Type {
	case models.EventTypeScheduled:
		return p.handleScheduled(ctx, event), nil
	case models.EventTypeReport:
		return p.handleReport(ctx, event), nil
	case models.EventTypeRealtime:
		return p.handleRealtime(event), nil
	default:
		return p.autoDetect(ctx, event), nil
	}
}

// handleScheduled runs one periodic aggregation: fetch the window, aggregate,
// compare against prior runs, persist the summary, and escalate anomalies.
func (p *Processor) handleScheduled(ctx context.Context, event models.ProcessorEvent) models.InvocationResponse {
	period := event.Period
	if period == "" {
		period = models.PeriodHourly
	}

	now := p.now().UTC()
	window, err := aggregation.WindowFor(period, now)
	if err != nil {
		return errorResponse(400, "Unknown aggregation period", err)
	}

	records := p.store.FetchSentimentWindow(ctx, window.Start, window.End, nil)
	if len(records) == 0 {
		slog.Info("[Processor] No data found for aggregation", slog.String("period", period))
		return jsonResponse(200, map[string]any{
			"message": fmt.Sprintf("No data for %s aggregation", period),
			"period":  period,
			"key":     window.Key(),
		})
	}

	aggregated := aggregation.Aggregate(records)
	historical := p.store.FetchHistoricalSummaries(ctx, period, historicalTrendCount)
	trends := aggregation.AnalyzeTrends(aggregated, historical)
	anomalies := aggregation.DetectAnomalies(aggregated, period)

	summary := models.Summary{
		SummaryID:      fmt.Sprintf("%s_%s", period, window.Key()),
		Period:         period,
		AggregationKey: window.Key(),
		Timestamp:      now.Format(time.RFC3339),
		DataRange: models.DataRange{
			Start: window.Start.Format(time.RFC3339),
			End:   window.End.Format(time.RFC3339),
		},
		AggregatedData: aggregated,
		TrendAnalysis:  trends,
		Anomalies:      anomalies,
		TotalPosts:     len(records),
	}
	if err := p.store.PutSummary(ctx, summary); err != nil {
		return errorResponse(500, "Failed to save summary", err)
	}

	alerts := aggregation.GenerateAlerts(anomalies, now)
	if len(alerts) > 0 {
		// A dead alert sink must not fail the aggregation the summary is
		// already persisted for.
		if err := p.alerts.Publish(ctx, alerts); err != nil {
			slog.Error("[Processor] Failed to publish alerts",
				slog.Int("count", len(alerts)),
				slog.String("error", err.Error()))
		}
	}

	return jsonResponse(200, map[string]any{
		"message":          fmt.Sprintf("%s aggregation completed", period),
		"summary_id":       summary.SummaryID,
		"total_posts":      summary.TotalPosts,
		"alerts_generated": len(alerts),
	})
}

func (p *Processor) handleReport(ctx context.Context, event models.ProcessorEvent) models.InvocationResponse {
	reportType := event.ReportType
	if reportType == "" {
		reportType = models.ReportComprehensive
	}

	window, err := p.reportWindow(event.DateRange)
	if err != nil {
		return errorResponse(400, "Invalid date range", err)
	}

	records := p.store.FetchSentimentWindow(ctx, window.Start, window.End, event.Filters)

	report, err := p.reports.Build(ctx, reportType, records, window)
	if err != nil {
		return errorResponse(400, "Could not build report", err)
	}

	url, err := p.reportStore.Save(ctx, report)
	if err != nil {
		return errorResponse(500, "Failed to save report", err)
	}

	return jsonResponse(200, map[string]any{
		"message":     "Report generated successfully",
		"report_type": reportType,
		"report_url":  url,
		"data_range": models.DataRange{
			Start: window.Start.Format(time.RFC3339),
			End:   window.End.Format(time.RFC3339),
		},
		"total_posts": len(records),
	})
}

// handleRealtime acknowledges per-record updates. Incremental recomputation of
// the open window is not implemented; the next scheduled run picks the records
// up from the store.
func (p *Processor) handleRealtime(event models.ProcessorEvent) models.InvocationResponse {
	results := make([]map[string]any, 0, len(event.Analyses))
	for _, analysis := range event.Analyses {
		results = append(results, map[string]any{
			"post_id":   analysis.PostID,
			"updated":   true,
			"timestamp": p.now().UTC().Format(time.RFC3339),
		})
	}

	return jsonResponse(200, map[string]any{
		"message":          "Realtime aggregation updated",
		"updated_analyses": len(results),
		"results":          results,
	})
}

// autoDetect infers the processing type from the event shape: EventBridge
// schedules, SQS batches, and API Gateway proxies each have a distinct
// signature.
func (p *Processor) autoDetect(ctx context.Context, event models.ProcessorEvent) models.InvocationResponse {
	switch {
	case event.Source == "aws.events":
		return p.handleScheduled(ctx, models.ProcessorEvent{
			Type:   models.EventTypeScheduled,
			Period: models.PeriodHourly,
		})

	case len(event.Records) > 0:
		var analyses []models.SentimentRecord
		for _, record := range event.Records {
			var envelope struct {
				Body string `json:"body"`
			}
			if err := json.Unmarshal(record, &envelope); err != nil || envelope.Body == "" {
				continue
			}
			var analysis models.SentimentRecord
			if err := json.Unmarshal([]byte(envelope.Body), &analysis); err != nil {
				continue
			}
			analyses = append(analyses, analysis)
		}
		return p.handleRealtime(models.ProcessorEvent{
			Type:     models.EventTypeRealtime,
			Analyses: analyses,
		})

	case event.HTTPMethod != "":
		var body models.ProcessorEvent
		if event.Body != "" {
			if err := json.Unmarshal([]byte(event.Body), &body); err != nil {
				return errorResponse(400, "Could not parse request body", err)
			}
		}
		if body.ReportType != "" {
			return p.handleReport(ctx, body)
		}
		return p.handleRealtime(body)

	default:
		return jsonResponse(400, map[string]any{
			"error":   "Unknown event format",
			"message": "Could not determine processing type from event",
		})
	}
}

func (p *Processor) reportWindow(dateRange *models.DateRange) (aggregation.Window, error) {
	if dateRange != nil && dateRange.StartDate != "" && dateRange.EndDate != "" {
		start, err := time.Parse(time.RFC3339, dateRange.StartDate)
		if err != nil {
			return aggregation.Window{}, fmt.Errorf("bad start_date: %w", err)
		}
		end, err := time.Parse(time.RFC3339, dateRange.EndDate)
		if err != nil {
			return aggregation.Window{}, fmt.Errorf("bad end_date: %w", err)
		}
		return aggregation.CustomWindow(start, end), nil
	}

	end := p.now().UTC()
	return aggregation.CustomWindow(end.AddDate(0, 0, -defaultReportDays), end), nil
}

func jsonResponse(status int, body any) models.InvocationResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		slog.Error("[Processor] Failed to encode response body", slog.String("error", err.Error()))
		return models.InvocationResponse{StatusCode: 500, Body: `{"error":"response encoding failed"}`}
	}
	return models.InvocationResponse{StatusCode: status, Body: string(encoded)}
}

func errorResponse(status int, message string, err error) models.InvocationResponse {
	slog.Error("[Processor] "+message, slog.String("error", err.Error()))
	return jsonResponse(status, map[string]any{
		"error":   err.Error(),
		"message": message,
	})
}
