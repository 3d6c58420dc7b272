package healthprobe

import (
	"net/http/httptest"
	"testing"
)

func TestHealthAlwaysOK(t *testing.T) {
	probe := New()

	rec := httptest.NewRecorder()
	probe.Health()(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestReadyFollowsFlag(t *testing.T) {
	probe := New()

	rec := httptest.NewRecorder()
	probe.Ready()(rec, httptest.NewRequest("GET", "/ready", nil))
	if rec.Code != 503 {
		t.Errorf("status before ready = %d, want 503", rec.Code)
	}

	probe.SetReady(true)

	rec = httptest.NewRecorder()
	probe.Ready()(rec, httptest.NewRequest("GET", "/ready", nil))
	if rec.Code != 200 {
		t.Errorf("status after ready = %d, want 200", rec.Code)
	}

	probe.SetReady(false)

	rec = httptest.NewRecorder()
	probe.Ready()(rec, httptest.NewRequest("GET", "/ready", nil))
	if rec.Code != 503 {
		t.Errorf("status after unready = %d, want 503", rec.Code)
	}
}
