package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(itemNotificationsTotal.WithLabelValues(OutcomeFailed))

	RecordNotification(OutcomeFailed)

	assert.Equal(t, before+1, testutil.ToFloat64(itemNotificationsTotal.WithLabelValues(OutcomeFailed)))
}

func TestSetBreakerState(t *testing.T) {
	SetBreakerState("test-breaker", 1)

	assert.Equal(t, float64(1), testutil.ToFloat64(breakerState.WithLabelValues("test-breaker")))
}

func TestMiddleware(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := Middleware(mux)

	counter := httpRequestsTotal.WithLabelValues("404", http.MethodGet, "GET /api/v1/items/{id}")
	before := testutil.ToFloat64(counter)

	// Act
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/items/12", nil))

	// Assert
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Zero(t, testutil.ToFloat64(httpRequestsInFlight))
}
