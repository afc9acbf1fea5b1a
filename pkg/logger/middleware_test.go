package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPLogger_SetsRequestID(t *testing.T) {
	l := InitializeTestZapLogger()
	h := HTTPLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/queues", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestHTTPLogger_KeepsIncomingRequestID(t *testing.T) {
	l := InitializeTestZapLogger()
	h := HTTPLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
