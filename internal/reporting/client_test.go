package reporting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/utils"
)

func testViolation() Violation {
	return Violation{
		AttemptID: 42,
		Type:      models.ViolationTabSwitch,
		Details:   "Tab visibility changed: hidden",
		Timestamp: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestHTTPReporter_ReportViolation(t *testing.T) {
	t.Run("PostsPayloadToAttemptEndpoint", func(t *testing.T) {
		var gotPath string
		var gotPayload violationPayload

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
				t.Errorf("Failed to decode payload: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		reporter := NewHTTPReporter(server.URL+"/api/v1", server.Client(), utils.NewDevelopmentLogger())

		if err := reporter.ReportViolation(context.Background(), testViolation()); err != nil {
			t.Fatalf("ReportViolation failed: %v", err)
		}

		if gotPath != "/api/v1/attempts/42/violations" {
			t.Errorf("Unexpected path %q", gotPath)
		}
		if gotPayload.ViolationType != "tab_switch" {
			t.Errorf("Unexpected violation_type %q", gotPayload.ViolationType)
		}
		if gotPayload.Details != "Tab visibility changed: hidden" {
			t.Errorf("Unexpected details %q", gotPayload.Details)
		}
		if _, err := time.Parse(time.RFC3339, gotPayload.Timestamp); err != nil {
			t.Errorf("Timestamp %q is not RFC3339: %v", gotPayload.Timestamp, err)
		}
	})

	t.Run("NonSuccessStatusIsError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		reporter := NewHTTPReporter(server.URL+"/api/v1", server.Client(), utils.NewDevelopmentLogger())

		if err := reporter.ReportViolation(context.Background(), testViolation()); err == nil {
			t.Error("Expected an error for a 500 response")
		}
	})

	t.Run("NetworkErrorIsError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on

		reporter := NewHTTPReporter(server.URL+"/api/v1", nil, utils.NewDevelopmentLogger())

		if err := reporter.ReportViolation(context.Background(), testViolation()); err == nil {
			t.Error("Expected an error for a refused connection")
		}
	})

	t.Run("NoAttemptIDIsNoop", func(t *testing.T) {
		var called bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		reporter := NewHTTPReporter(server.URL+"/api/v1", server.Client(), utils.NewDevelopmentLogger())

		v := testViolation()
		v.AttemptID = 0
		if err := reporter.ReportViolation(context.Background(), v); err != nil {
			t.Fatalf("Unbound session reporting should be a silent no-op: %v", err)
		}
		if called {
			t.Error("No request should be made without an attempt id")
		}
	})
}
