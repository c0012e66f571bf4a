package client

import (
	"maps"
	"net/url"
	"sync"
)

// Filter is a named query-string parameter contributed to a request.
type Filter struct {
	name  string
	value string
}

// NewFilter creates a filter. Filters are immutable once created.
func NewFilter(name, value string) Filter {
	return Filter{name: name, value: value}
}

// Name returns the query parameter name.
func (f Filter) Name() string {
	return f.name
}

// Value returns the query parameter value.
func (f Filter) Value() string {
	return f.value
}

// filterSet accumulates filters keyed by name. A later filter with the same
// name replaces the earlier one.
type filterSet struct {
	mu     sync.Mutex
	values map[string]string
}

func (s *filterSet) add(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[f.name] = f.value
}

func (s *filterSet) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = nil
}

func (s *filterSet) snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	maps.Copy(out, s.values)
	return out
}

// encode returns the percent-encoded query string, or "" when empty.
// Keys are sorted by url.Values.Encode.
func (s *filterSet) encode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return ""
	}
	q := make(url.Values, len(s.values))
	for k, v := range s.values {
		q.Set(k, v)
	}
	return q.Encode()
}
