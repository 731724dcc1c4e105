package validator

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/SAP-F-2025/proctoring-service/internal/errors"
)

type recordRequest struct {
	AttemptID     uint      `json:"attempt_id" validate:"required"`
	ViolationType string    `json:"violation_type" validate:"required,violation_type"`
	Details       string    `json:"details,omitempty" validate:"omitempty,max=2000"`
	Timestamp     time.Time `json:"timestamp" validate:"required"`
}

func validRecord() recordRequest {
	return recordRequest{
		AttemptID:     1,
		ViolationType: "copy",
		Timestamp:     time.Now(),
	}
}

func TestValidator_ViolationTypeRule(t *testing.T) {
	v := New()

	t.Run("AcceptsKnownTypes", func(t *testing.T) {
		for _, vt := range []string{"window_switch", "tab_switch", "screenshot", "copy", "paste", "phone_call", "visibility_change"} {
			req := validRecord()
			req.ViolationType = vt
			if err := v.Validate(req); err != nil {
				t.Errorf("type %q should validate, got %v", vt, err)
			}
		}
	})

	t.Run("RejectsUnknownType", func(t *testing.T) {
		req := validRecord()
		req.ViolationType = "telepathy"

		err := v.Validate(req)
		if err == nil {
			t.Fatal("expected validation error")
		}

		var verrs apperrors.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected ValidationErrors, got %T", err)
		}
		if len(verrs) != 1 {
			t.Fatalf("expected 1 field error, got %d", len(verrs))
		}
		if verrs[0].Field != "violation_type" {
			t.Errorf("expected json field name in error, got %q", verrs[0].Field)
		}
		if verrs[0].Rule != "violation_type" {
			t.Errorf("expected violation_type rule, got %q", verrs[0].Rule)
		}
	})

	t.Run("RequiredFields", func(t *testing.T) {
		err := v.Validate(recordRequest{})
		if err == nil {
			t.Fatal("expected validation error for empty request")
		}

		var verrs apperrors.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected ValidationErrors, got %T", err)
		}

		fields := make(map[string]bool)
		for _, fe := range verrs {
			fields[fe.Field] = true
		}
		for _, want := range []string{"attempt_id", "violation_type", "timestamp"} {
			if !fields[want] {
				t.Errorf("expected error for field %q", want)
			}
		}
	})
}
