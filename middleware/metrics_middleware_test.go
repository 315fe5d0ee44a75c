package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"api/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/challenges/:id/winners", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"c-1", "c-2", "c-3"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/challenges/"+id+"/winners", nil)
		r.ServeHTTP(w, req)
	}

	// All three requests collapse into one series keyed on the template
	if got := testutil.CollectAndCount(metrics.RequestCounter); got != 1 {
		t.Errorf("expected one request counter series for the templated route, got %d", got)
	}
}
