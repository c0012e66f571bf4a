package nrql

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/nrql-mcp/pkg/client"
)

const facetPayload = `{"facets":[{"name":"Ephemeral Sealed","results":[{"count":7}]}],"metadata":{"facet":"name"}}`

func TestRunner_Run(t *testing.T) {
	var gotPath, gotNRQL, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotNRQL = r.URL.Query().Get("nrql")
		gotKey = r.Header.Get(client.QueryKeyHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(facetPayload))
	}))
	defer srv.Close()

	r := NewRunner(Config{QueryKey: "qk", AccountID: "432507", BaseURL: srv.URL, Timeout: time.Second})
	res, err := r.Run(context.Background(), "  SELECT count(*) FROM SealedStressTest FACET name  ")
	require.NoError(t, err)

	assert.Equal(t, "/accounts/432507/query", gotPath)
	assert.Equal(t, "SELECT count(*) FROM SealedStressTest FACET name", gotNRQL)
	assert.Equal(t, "qk", gotKey)

	require.Len(t, res.Insights.Facets, 1)
	assert.Equal(t, "Ephemeral Sealed", res.Insights.Facets[0].Name)
	assert.Equal(t, "name", res.Insights.Metadata.Facet)
	parsed := res.Parsed.(map[string]any)
	assert.Contains(t, parsed, "facets")
	assert.JSONEq(t, facetPayload, string(res.Body))
}

func TestRunner_NotConfigured(t *testing.T) {
	r := NewRunner(Config{AccountID: "1"})
	assert.False(t, r.Configured())

	_, err := r.Run(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRunner_EmptyNRQL(t *testing.T) {
	r := NewRunner(Config{QueryKey: "qk", AccountID: "1", BaseURL: "http://127.0.0.1:1"})
	_, err := r.Run(context.Background(), "   ")
	assert.ErrorIs(t, err, client.ErrInvalidArgument)
}

func TestRunner_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"NRQL Syntax Error: Error at line 1 position 7"}`))
	}))
	defer srv.Close()

	r := NewRunner(Config{QueryKey: "qk", AccountID: "1", BaseURL: srv.URL})
	_, err := r.Run(context.Background(), "SELECT FROM")

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "NRQL Syntax Error")
}

func TestRunner_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	r := NewRunner(Config{QueryKey: "qk", AccountID: "1", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := r.Run(context.Background(), "SELECT count(*) FROM Transaction")

	var tErr *client.TransportError
	require.True(t, errors.As(err, &tErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunner_CoalescesIdenticalQueries(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		entered <- struct{}{}
		<-release
		_, _ = w.Write([]byte(facetPayload))
	}))
	defer srv.Close()

	r := NewRunner(Config{QueryKey: "qk", AccountID: "1", BaseURL: srv.URL})

	var wg sync.WaitGroup
	results := make([]*Result, 2)
	errs := make([]error, 2)
	start := func(i int) {
		defer wg.Done()
		results[i], errs[i] = r.Run(context.Background(), "SELECT count(*) FROM X FACET name")
	}

	wg.Add(1)
	go start(0)
	<-entered

	wg.Add(1)
	go start(1)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, results[0].Shared)
	assert.True(t, results[1].Shared)
}

func TestRunner_CancelledCallerLeavesSharedQueryRunning(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		entered <- struct{}{}
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		_, _ = w.Write([]byte(facetPayload))
	}))
	defer srv.Close()

	r := NewRunner(Config{QueryKey: "qk", AccountID: "1", BaseURL: srv.URL, Timeout: 5 * time.Second})
	const q = "SELECT count(*) FROM SealedStressTest FACET name"

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := r.Run(ctxA, q)
		errA <- err
	}()
	<-entered

	type outcome struct {
		res *Result
		err error
	}
	doneB := make(chan outcome, 1)
	go func() {
		res, err := r.Run(context.Background(), q)
		doneB <- outcome{res, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	b := <-doneB
	require.NoError(t, b.err)
	assert.True(t, b.res.Shared)
	assert.Equal(t, float64(7), b.res.Insights.Facets[0].Results[0]["count"])
	assert.Equal(t, int32(1), calls.Load())
}

func TestRunner_CallerDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	r := NewRunner(Config{QueryKey: "qk", AccountID: "1", BaseURL: srv.URL, Timeout: 5 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, "SELECT count(*) FROM Transaction")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
