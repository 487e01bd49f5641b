package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	ObserveAgentRun("sepsis_protocol_support_v1", "completed")
	ObserveAuditClassification("triage", "under_triage")
	ObserveSecurityFinding("prompt_injection_signal", "critical")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Handler()(c); err != nil {
		t.Fatalf("metrics handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"edops_agent_runs_total",
		"edops_audit_classifications_total",
		"edops_assistant_security_findings_total",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition missing %q", want)
		}
	}
}

func TestMiddleware_RecordsRequest(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/care-tasks/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/care-tasks/123", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := Handler()(c); err != nil {
		t.Fatalf("metrics handler: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `route="/care-tasks/:id"`) {
		t.Fatal("expected route pattern label in exposition")
	}
}
