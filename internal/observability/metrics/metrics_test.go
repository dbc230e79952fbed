package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRecommendationOutcomes(t *testing.T) {
	m := New("test")

	m.ObserveRecommendation(3, false, time.Millisecond, nil)
	m.ObserveRecommendation(3, true, time.Millisecond, nil)
	m.ObserveRecommendation(0, false, time.Millisecond, nil)
	m.ObserveRecommendation(0, false, time.Millisecond, errors.New("boom"))

	for outcome, want := range map[string]float64{"ok": 1, "cache_hit": 1, "empty": 1, "error": 1} {
		if got := testutil.ToFloat64(m.recommendTotal.WithLabelValues(outcome)); got != want {
			t.Fatalf("outcome %s = %v, want %v", outcome, got, want)
		}
	}
}

func TestModelGauges(t *testing.T) {
	m := New("test")

	m.SetModelAvailable(true)
	if got := testutil.ToFloat64(m.modelAvailable); got != 1 {
		t.Fatalf("model available = %v, want 1", got)
	}
	m.SetModelAvailable(false)
	if got := testutil.ToFloat64(m.modelAvailable); got != 0 {
		t.Fatalf("model available = %v, want 0", got)
	}

	m.ObserveReload(nil)
	m.ObserveReload(errors.New("bad artifact"))
	if got := testutil.ToFloat64(m.modelReloads.WithLabelValues("error")); got != 1 {
		t.Fatalf("reload errors = %v, want 1", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("test")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/items/:id", "204")); got != 2 {
		t.Fatalf("templated path counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Fatalf("unmatched counter = %v, want 1", got)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "recipe_http_requests_total") {
		t.Fatalf("metrics endpoint missing series: %d %s", w.Code, w.Body.String())
	}
}
