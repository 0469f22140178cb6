package models

import "encoding/json"

const (
	EventTypeScheduled = "scheduled"
	EventTypeReport    = "report"
	EventTypeRealtime  = "realtime"
)

// ProcessorEvent is the union of the three invocation shapes the data
// processor accepts. Exactly one shape is expected per invocation.
type ProcessorEvent struct {
	Type   string `json:"type,omitempty"`
	Period string `json:"period,omitempty"`

	ReportType string            `json:"report_type,omitempty"`
	DateRange  *DateRange        `json:"date_range,omitempty"`
	Filters    *Filter           `json:"filters,omitempty"`
	Analyses   []SentimentRecord `json:"analyses,omitempty"`

	// auto-detection hints
	Source     string            `json:"source,omitempty"`
	Records    []json.RawMessage `json:"Records,omitempty"`
	HTTPMethod string            `json:"httpMethod,omitempty"`
	Body       string            `json:"body,omitempty"`
}

type DateRange struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// InvocationResponse mirrors the Lambda proxy response contract used by every
// entry point: a status code plus a JSON-encoded body.
type InvocationResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type ExtractRequest struct {
	Platform   string `json:"platform,omitempty"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type AnalyzeRequest struct {
	Posts []Post `json:"posts"`
}
