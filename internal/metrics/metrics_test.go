package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestCollector_RecordAndExpose は記録したメトリクスが/metrics出力に現れることを検証する。
func TestCollector_RecordAndExpose(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)
	c.RecordRequestDuration(120 * time.Millisecond)
	c.RecordStatusUpdate("Hired")
	c.RecordInterviewRoundsUpdate()
	c.RecordLogin(true)
	c.RecordLogin(false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	body := w.Body.String()

	wants := []string{
		`hireman_http_status_total{status_code="200"} 2`,
		`hireman_http_status_total{status_code="404"} 1`,
		`hireman_status_updates_total{status="Hired"} 1`,
		`hireman_interview_rounds_updates_total 1`,
		`hireman_logins_total{result="success"} 1`,
		`hireman_logins_total{result="failure"} 1`,
	}
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

// TestNewCollector_DuplicateRegistrationPanics は同一レジストリへの二重登録が
// panicになることを検証する（登録は起動時1回の前提）。
func TestNewCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration, got none")
		}
	}()
	NewCollector(reg)
}
