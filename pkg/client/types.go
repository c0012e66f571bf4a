package client

import (
	"encoding/json"
	"net/http"
)

// Response is a completed HTTP exchange with its body read into memory.
type Response struct {
	StatusCode int
	Status     string // status line text, e.g. "404 Not Found"
	Header     http.Header
	Body       []byte
	URL        string // the request URL that produced this response
}

// Row is a single result row or event. Values keep their JSON types.
type Row map[string]any

// Facet is one grouped result of a FACET query.
type Facet struct {
	Name    any   `json:"name"` // string, or []any for multi-attribute facets
	Results []Row `json:"results"`
}

// Metadata describes how the Insights API evaluated a query.
type Metadata struct {
	// Facet is the facet attribute name; empty when the query has no FACET clause.
	Facet          any    `json:"facet,omitempty"`
	EventTypes     []any  `json:"eventTypes,omitempty"`
	BeginTime      string `json:"beginTime,omitempty"`
	EndTime        string `json:"endTime,omitempty"`
	BeginTimeMilli int64  `json:"beginTimeMillis,omitempty"`
	EndTimeMilli   int64  `json:"endTimeMillis,omitempty"`
	RawSince       string `json:"rawSince,omitempty"`
	RawUntil       string `json:"rawUntil,omitempty"`
}

// InsightsResult is the JSON payload of an Insights query.
//
// Facets is populated for FACET queries; Results otherwise.
type InsightsResult struct {
	Facets      []Facet  `json:"facets,omitempty"`
	TotalResult Row      `json:"totalResult,omitempty"`
	Results     []Row    `json:"results,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

// Events flattens the "events" arrays of a SELECT * style result.
func (r *InsightsResult) Events() []Row {
	var rows []Row
	for _, res := range r.Results {
		events, ok := res["events"].([]any)
		if !ok {
			continue
		}
		for _, e := range events {
			if m, ok := e.(map[string]any); ok {
				rows = append(rows, Row(m))
			}
		}
	}
	return rows
}

// DecodeInsights decodes an Insights query response into its typed form.
func DecodeInsights(resp *Response) (*InsightsResult, error) {
	var out InsightsResult
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, &DecodeError{Format: FormatJSON, Err: err}
	}
	return &out, nil
}
