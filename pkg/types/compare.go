package types

// FacetCount is one row of a facet count comparison.
type FacetCount struct {
	Label string  `json:"label"`
	NRQL  string  `json:"nrql"`
	Facet string  `json:"facet"`
	Count float64 `json:"count"`
	Empty bool    `json:"empty,omitempty"`
}

// CompareFacetCountsResponse is the output of newrelic_compare_facet_counts.
type CompareFacetCountsResponse struct {
	Match  bool         `json:"match"`
	Counts []FacetCount `json:"counts,omitzero"`
	Report string       `json:"report"`
}
