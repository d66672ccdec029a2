package transport

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/studentos/backend/domain"
)

func TestParseDate(t *testing.T) {
	if got, ok := ParseDate("2025-12-22T14:00:00Z"); !ok || !got.Equal(time.Date(2025, 12, 22, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate(RFC3339) = (%v, %v)", got, ok)
	}
	if got, ok := ParseDate("2025-12-22"); !ok || got.Day() != 22 {
		t.Errorf("ParseDate(date) = (%v, %v)", got, ok)
	}
	if _, ok := ParseDate("next tuesday"); ok {
		t.Error("ParseDate accepted garbage")
	}
}

func TestConfirmRequest_Validate(t *testing.T) {
	var empty ConfirmRequest
	if err := empty.Validate(); err != nil {
		t.Errorf("empty overrides must be valid, got %v", err)
	}

	var badType ConfirmRequest
	if err := json.Unmarshal([]byte(`{"type":"not-a-real-type"}`), &badType); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	err := badType.Validate()
	if !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Fatalf("err = %v, want VALIDATION", err)
	}
	var dErr *domain.Error
	if !errors.As(err, &dErr) || dErr.Details["type"] == "" {
		t.Error("validation failure must name the bad field")
	}

	var nullTitle ConfirmRequest
	if err := json.Unmarshal([]byte(`{"title":null}`), &nullTitle); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := nullTitle.Validate(); !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("null title must be rejected, got %v", err)
	}

	var badDate ConfirmRequest
	if err := json.Unmarshal([]byte(`{"due_date":"whenever"}`), &badDate); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := badDate.Validate(); !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("bad due_date must be rejected, got %v", err)
	}
}

func TestEditRequest_Validate(t *testing.T) {
	ok := EditRequest{Title: "Submit Lab", Type: domain.TypeDeadline}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid edit rejected: %v", err)
	}

	missing := EditRequest{Type: domain.TypeDeadline}
	if err := missing.Validate(); !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("missing title must be rejected, got %v", err)
	}

	badType := EditRequest{Title: "x", Type: "DEADLINES"}
	if err := badType.Validate(); !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("unknown type must be rejected, got %v", err)
	}
}

func TestIgnoreRequest_Validate(t *testing.T) {
	var empty IgnoreRequest
	if err := empty.Validate(); err != nil {
		t.Errorf("reason is optional, got %v", err)
	}
	bad := IgnoreRequest{Reason: "changed_my_mind"}
	if err := bad.Validate(); !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("unknown reason must be rejected, got %v", err)
	}
}

func TestTaskPatchRequest_Validate(t *testing.T) {
	var nullStatus TaskPatchRequest
	if err := json.Unmarshal([]byte(`{"status":null}`), &nullStatus); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := nullStatus.Validate(); !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("null status must be rejected, got %v", err)
	}

	var clearModule TaskPatchRequest
	if err := json.Unmarshal([]byte(`{"module":null,"notes":null}`), &clearModule); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := clearModule.Validate(); err != nil {
		t.Errorf("nullable fields must accept null, got %v", err)
	}
}

func TestProfilePatchRequest_Validate(t *testing.T) {
	var empty ProfilePatchRequest
	if err := empty.Validate(); !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("empty patch must be rejected, got %v", err)
	}

	var bad ProfilePatchRequest
	if err := json.Unmarshal([]byte(`{"email":"not-an-email"}`), &bad); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := bad.Validate(); !domain.IsCode(err, domain.ErrCodeValidation) {
		t.Errorf("malformed email must be rejected, got %v", err)
	}

	var good ProfilePatchRequest
	if err := json.Unmarshal([]byte(`{"email":"a@uni.example"}`), &good); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := good.Validate(); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
}
