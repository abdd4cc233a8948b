package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carelinkhq/carelink-api/api"
)

func TestTimeoutMiddleware_PassesFastRequests(t *testing.T) {
	handler := api.TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/health-records/senior/senior-1", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestTimeoutMiddleware_CutsOffSlowRequests(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	// the handler blocks past the deadline and never writes
	handler := api.TimeoutMiddleware(10*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/doses/senior/senior-1", nil))

	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
	assert.Contains(t, rr.Body.String(), "timeout")
}
