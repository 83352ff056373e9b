package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("GET", "/activities", "200").Inc()
	HTTPRequestDuration.WithLabelValues("GET", "/activities").Observe(0.005)
	SignupsTotal.WithLabelValues("Chess Club").Inc()
	EventSubscribers.Set(2)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	require.Contains(t, string(body), "activities_http_requests_total")
	require.Contains(t, string(body), "activities_http_request_duration_seconds")
	require.Contains(t, string(body), "activities_signups_total")
	require.Contains(t, string(body), "activities_event_subscribers 2")
}
