package types

// InsightsQueryResponse is the output of newrelic_insights_query.
type InsightsQueryResponse struct {
	AccountID  string          `json:"account_id"`
	NRQL       string          `json:"nrql"`
	DurationMs int64           `json:"duration_ms"`
	Shared     bool            `json:"shared,omitempty"` // answered by an identical in-flight query
	Summary    InsightsSummary `json:"summary"`

	// Data is the decoded response, omitted when an expression was supplied.
	Data       any         `json:"data,omitempty"`
	Extraction *Extraction `json:"extraction,omitempty"`
	Compaction *Compaction `json:"compaction,omitempty"`
	Hints      []string    `json:"hints,omitempty"`
}

// InsightsSummary describes the shape of an Insights result.
type InsightsSummary struct {
	FacetCount  int      `json:"facet_count"`
	ResultCount int      `json:"result_count"`
	EventCount  int      `json:"event_count,omitempty"`
	EventTypes  []string `json:"event_types,omitempty"`
	BeginTime   string   `json:"begin_time,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
}
