package types

// APIRequestResponse is the output of newrelic_api_request.
type APIRequestResponse struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Format     string `json:"format"`
	BodyBytes  int    `json:"body_bytes"`

	// Data is the decoded JSON body, or the raw XML text. Omitted when an
	// expression was supplied.
	Data       any         `json:"data,omitempty"`
	Extraction *Extraction `json:"extraction,omitempty"`
	Compaction *Compaction `json:"compaction,omitempty"`
}
