package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.TicketIssued("Deli", true)
	m.TicketIssued("Deli", false)
	m.TicketIssued("Deli", false)
	m.TicketCalled("Deli")
	m.SetQueueDepth("Deli", 2)
	m.PersistFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticketsIssued.WithLabelValues("Deli", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ticketsIssued.WithLabelValues("Deli", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ticketsCalled.WithLabelValues("Deli")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.queueDepth.WithLabelValues("Deli")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFailures))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.TicketCalled("Bakery")
	m.Time("call_next")()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `counters_tickets_called_total{section="Bakery"} 1`)
	assert.Contains(t, string(body), `counters_operation_duration_seconds_count{operation="call_next"} 1`)
}
