package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCounters(t *testing.T) {
	before := testutil.ToFloat64(RemindersFired)
	RemindersFired.Inc()
	WidgetRefreshes.WithLabelValues("file", "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RemindersFired))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "wellnest_reminder_fired_total")
	assert.Contains(t, body, `wellnest_widget_refreshes_total{result="ok",surface="file"}`)
}
