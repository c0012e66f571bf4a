package client

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusErrorHandler_Success(t *testing.T) {
	for _, code := range []int{200, 201, 204, 299} {
		assert.NoError(t, StatusErrorHandler{}.Handle(&Response{StatusCode: code, Header: http.Header{}}))
	}
}

func TestStatusErrorHandler_Messages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		line   string
		ctype  string
		body   string
		want   string
	}{
		{"v2 json error", 401, "401 Unauthorized", "application/json", `{"error":{"title":"The API key provided is invalid"}}`, "The API key provided is invalid"},
		{"insights json error", 400, "400 Bad Request", "application/json", `{"error":"NRQL Syntax Error"}`, "NRQL Syntax Error"},
		{"message key", 422, "422 Unprocessable Entity", "application/json", `{"message":"bad filter"}`, "bad filter"},
		{"sniffed json", 403, "403 Forbidden", "", `{"error":{"title":"forbidden"}}`, "forbidden"},
		{"xml error", 404, "404 Not Found", "application/xml", `<?xml version="1.0"?><error><title>Not found</title></error>`, "Not found"},
		{"html gateway page", 502, "502 Bad Gateway", "text/html", `<html><head><title>502 Bad Gateway</title></head><body><h1>Bad Gateway</h1></body></html>`, "502 Bad Gateway"},
		{"html heading only", 504, "504 Gateway Timeout", "text/html; charset=utf-8", `<html><body><h1>Upstream timed out</h1></body></html>`, "Upstream timed out"},
		{"html doctype without content type", 502, "502 Bad Gateway", "", `<!DOCTYPE html><html><head><title>Origin unreachable</title></head></html>`, "Origin unreachable"},
		{"unparseable json falls back", 500, "500 Internal Server Error", "application/json", `{oops`, "500 Internal Server Error"},
		{"plain text falls back", 503, "503 Service Unavailable", "text/plain", `down for maintenance`, "503 Service Unavailable"},
		{"no status line", 404, "", "", ``, "404 Not Found"},
		{"redirect is failure", 302, "302 Found", "", ``, "302 Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.ctype != "" {
				h.Set("Content-Type", tt.ctype)
			}
			err := StatusErrorHandler{}.Handle(&Response{
				StatusCode: tt.status,
				Status:     tt.line,
				Header:     h,
				Body:       []byte(tt.body),
			})

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, tt.body, apiErr.RawBody)
		})
	}
}

func TestAPIErrorString(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Not found"}
	assert.Equal(t, "newrelic API error 404: Not found", err.Error())
}
