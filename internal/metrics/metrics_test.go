package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(paymentNotificationsTotal.WithLabelValues("duplicate"))

	RecordNotification("duplicate")
	RecordNotification("duplicate")

	assert.Equal(t, before+2, testutil.ToFloat64(paymentNotificationsTotal.WithLabelValues("duplicate")))
}

func TestRecordCheckout(t *testing.T) {
	before := testutil.ToFloat64(checkoutsTotal.WithLabelValues("created"))

	RecordCheckout("created")

	assert.Equal(t, before+1, testutil.ToFloat64(checkoutsTotal.WithLabelValues("created")))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := Middleware(mux)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/abc", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "/orders/{id}")))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/route", nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "unmatched")))
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/cart/{id}", routeLabel("PUT /cart/{id}"))
	assert.Equal(t, "/swagger/", routeLabel("/swagger/"))
	assert.Equal(t, "unmatched", routeLabel(""))
}

func TestHandler(t *testing.T) {
	RecordOrderTransition("completed")

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "storefront_order_transitions_total"))
}
