package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterAccessors(t *testing.T) {
	f := NewFilter("nrql", "SELECT count(*) FROM Transaction")
	assert.Equal(t, "nrql", f.Name())
	assert.Equal(t, "SELECT count(*) FROM Transaction", f.Value())
}

func TestFilterSetEncode(t *testing.T) {
	var s filterSet
	assert.Equal(t, "", s.encode())

	s.add(NewFilter("b", "2"))
	s.add(NewFilter("a", "1"))
	s.add(NewFilter("nrql", "SELECT count(*) FROM X WHERE name LIKE '%Stress%'"))

	q, err := url.ParseQuery(s.encode())
	require.NoError(t, err)
	assert.Equal(t, "1", q.Get("a"))
	assert.Equal(t, "2", q.Get("b"))
	assert.Equal(t, "SELECT count(*) FROM X WHERE name LIKE '%Stress%'", q.Get("nrql"))

	s.add(NewFilter("a", "3"))
	q, err = url.ParseQuery(s.encode())
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, q["a"])

	snap := s.snapshot()
	snap["a"] = "mutated"
	assert.Equal(t, "3", s.snapshot()["a"], "snapshot is a copy")

	s.clear()
	assert.Empty(t, s.snapshot())
}
