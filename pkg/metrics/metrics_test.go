package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BookingOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("test", reg)

	m.IncBookingOutcome("confirmed")
	m.IncBookingOutcome("confirmed")
	m.IncBookingOutcome("slot_conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("slot_conflict")))
}

func TestMetrics_HTTPAndDB(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("test", reg)

	m.ObserveHTTPRequest("GET", "/api/v1/x", 200, 10*time.Millisecond)
	m.ObserveDBQuery("SELECT", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/x", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.dbQueryDuration))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingOutcome("confirmed")
		m.IncTransition("cancelled", "client", "ok")
		m.ObserveAvailability("slots", time.Millisecond)
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
	})
}
