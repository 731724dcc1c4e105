package reporting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/utils"
)

// Violation is the persistence payload for one accepted violation.
type Violation struct {
	AttemptID uint
	Type      models.ViolationType
	Details   string
	Timestamp time.Time
}

// Reporter persists violations to the backend attempt record. Calls are
// best-effort audit trail: the caller never retries, never awaits the result
// on the detection path, and keeps its in-memory log regardless of outcome.
type Reporter interface {
	ReportViolation(ctx context.Context, v Violation) error
}

// violationPayload matches the attempt service's violation-log endpoint.
type violationPayload struct {
	ViolationType string `json:"violation_type"`
	Details       string `json:"details,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// HTTPReporter posts violations to the attempt-management service.
type HTTPReporter struct {
	baseURL string
	client  *http.Client
	logger  utils.Logger
}

// NewHTTPReporter creates a reporter against the given API base URL
// (e.g. "http://assessment-service:8080/api/v1"). No request timeout is
// layered on top of the shared client's default; a hung request simply
// never resolves its notice.
func NewHTTPReporter(baseURL string, client *http.Client, logger utils.Logger) *HTTPReporter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPReporter{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

func (r *HTTPReporter) ReportViolation(ctx context.Context, v Violation) error {
	if v.AttemptID == 0 {
		// Detection-only session, nothing to persist against.
		return nil
	}

	payload := violationPayload{
		ViolationType: string(v.Type),
		Details:       v.Details,
		Timestamp:     v.Timestamp.Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal violation: %w", err)
	}

	url := fmt.Sprintf("%s/attempts/%d/violations", r.baseURL, v.AttemptID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build violation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("violation log request failed: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	// Only the status matters; the success shape is opaque to this client.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("violation log request returned status %d", resp.StatusCode)
	}

	r.logger.Debug("Violation persisted",
		"attempt_id", v.AttemptID,
		"violation_type", v.Type)
	return nil
}

// MockReporter records reported violations in memory (for testing).
type MockReporter struct {
	mu       sync.Mutex
	reported []Violation

	// Err, when set, is returned by every ReportViolation call.
	Err error

	// Done, when non-nil, receives one value per completed call so tests
	// can wait out the fire-and-forget dispatch.
	Done chan struct{}
}

func NewMockReporter() *MockReporter {
	return &MockReporter{}
}

func (m *MockReporter) ReportViolation(ctx context.Context, v Violation) error {
	m.mu.Lock()
	m.reported = append(m.reported, v)
	m.mu.Unlock()

	if m.Done != nil {
		m.Done <- struct{}{}
	}
	return m.Err
}

// Reported returns all violations passed to the reporter (for testing).
func (m *MockReporter) Reported() []Violation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Violation, len(m.reported))
	copy(out, m.reported)
	return out
}
