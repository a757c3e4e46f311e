package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordItemRequest(t *testing.T) {
	before := testutil.ToFloat64(itemRequests.WithLabelValues("duplicate_item"))
	RecordItemRequest("duplicate_item")
	assert.Equal(t, before+1, testutil.ToFloat64(itemRequests.WithLabelValues("duplicate_item")))
}

func TestRPCStarted(t *testing.T) {
	done := RPCStarted("/test.v1.Service/Call")
	assert.Equal(t, float64(1), testutil.ToFloat64(rpcInFlight))
	done("ok")
	assert.Equal(t, float64(0), testutil.ToFloat64(rpcInFlight))
	assert.Equal(t, float64(1), testutil.ToFloat64(rpcRequests.WithLabelValues("/test.v1.Service/Call", "ok")))
}

func TestHandler(t *testing.T) {
	RecordTicket("created")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "shoplist_support_tickets_total"))
}
