package transport

import (
	"time"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/pkg/optional"
)

// Request bodies are validated here, before any service is invoked; a
// validation failure short-circuits with a 400 and field-level details.
// Date fields accept RFC 3339 timestamps or bare dates.

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a due-date string in one of the accepted layouts.
func ParseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ConfirmRequest carries optional overrides for candidate confirmation.
// Every field distinguishes omitted from explicit null: null clears the
// field on the resulting task, omitted falls back to the candidate's value.
type ConfirmRequest struct {
	Title   optional.Value[string]               `json:"title"`
	Type    optional.Value[domain.CandidateType] `json:"type"`
	Module  optional.Value[string]               `json:"module"`
	DueDate optional.Value[string]               `json:"due_date"`
	Notes   optional.Value[string]               `json:"notes"`
}

func (r *ConfirmRequest) Validate() error {
	details := map[string]string{}
	if r.Title.IsNull() {
		details["title"] = "must not be null"
	} else if title, ok := r.Title.Get(); ok && title == "" {
		details["title"] = "must not be empty"
	}
	if r.Type.IsNull() {
		details["type"] = "must not be null"
	} else if typ, ok := r.Type.Get(); ok && !domain.ValidCandidateType(typ) {
		details["type"] = "must be one of DEADLINE, READING, ADMIN, CHANGE, EVENT"
	}
	if raw, ok := r.DueDate.Get(); ok {
		if _, valid := ParseDate(raw); !valid {
			details["due_date"] = "must be an RFC 3339 timestamp or YYYY-MM-DD date"
		}
	}
	if len(details) > 0 {
		return domain.ValidationError("invalid confirm overrides", details)
	}
	return nil
}

// EditRequest is a full replacement of a candidate's user-facing fields.
// Title and type are required; the optional fields are unchanged when
// omitted.
type EditRequest struct {
	Title    string               `json:"title"`
	Type     domain.CandidateType `json:"type"`
	Module   *string              `json:"module"`
	DueDate  *string              `json:"due_date"`
	Location *string              `json:"location"`
}

func (r *EditRequest) Validate() error {
	details := map[string]string{}
	if r.Title == "" {
		details["title"] = "is required"
	}
	if !domain.ValidCandidateType(r.Type) {
		details["type"] = "must be one of DEADLINE, READING, ADMIN, CHANGE, EVENT"
	}
	if r.DueDate != nil {
		if _, valid := ParseDate(*r.DueDate); !valid {
			details["due_date"] = "must be an RFC 3339 timestamp or YYYY-MM-DD date"
		}
	}
	if len(details) > 0 {
		return domain.ValidationError("invalid candidate edit", details)
	}
	return nil
}

// IgnoreRequest optionally explains why a candidate was dismissed.
type IgnoreRequest struct {
	Reason domain.IgnoreReason `json:"reason"`
}

func (r *IgnoreRequest) Validate() error {
	if r.Reason != "" && !domain.ValidIgnoreReason(r.Reason) {
		return domain.ValidationError("invalid ignore reason", map[string]string{
			"reason": "must be one of not_a_task, duplicate, spam, other",
		})
	}
	return nil
}

// TaskPatchRequest is a partial task update. Module, due_date, notes and
// links may be explicitly nulled to clear them; title, type and status may
// not.
type TaskPatchRequest struct {
	Title   optional.Value[string]               `json:"title"`
	Type    optional.Value[domain.CandidateType] `json:"type"`
	Module  optional.Value[string]               `json:"module"`
	DueDate optional.Value[string]               `json:"due_date"`
	Notes   optional.Value[string]               `json:"notes"`
	Links   optional.Value[[]string]             `json:"links"`
	Status  optional.Value[domain.TaskStatus]    `json:"status"`
}

func (r *TaskPatchRequest) Validate() error {
	details := map[string]string{}
	if r.Title.IsNull() {
		details["title"] = "must not be null"
	} else if title, ok := r.Title.Get(); ok && title == "" {
		details["title"] = "must not be empty"
	}
	if r.Type.IsNull() {
		details["type"] = "must not be null"
	} else if typ, ok := r.Type.Get(); ok && !domain.ValidCandidateType(typ) {
		details["type"] = "must be one of DEADLINE, READING, ADMIN, CHANGE, EVENT"
	}
	if r.Status.IsNull() {
		details["status"] = "must not be null"
	} else if status, ok := r.Status.Get(); ok && !domain.ValidTaskStatus(status) {
		details["status"] = "must be one of pending, completed, cancelled"
	}
	if raw, ok := r.DueDate.Get(); ok {
		if _, valid := ParseDate(raw); !valid {
			details["due_date"] = "must be an RFC 3339 timestamp or YYYY-MM-DD date"
		}
	}
	if len(details) > 0 {
		return domain.ValidationError("invalid task patch", details)
	}
	return nil
}

// ProfilePatchRequest updates the caller's own profile.
type ProfilePatchRequest struct {
	Email optional.Value[string] `json:"email"`
}

func (r *ProfilePatchRequest) Validate() error {
	email, ok := r.Email.Get()
	if !ok {
		return domain.ValidationError("no updatable fields supplied", map[string]string{
			"email": "is required",
		})
	}
	if !looksLikeEmail(email) {
		return domain.ValidationError("invalid profile update", map[string]string{
			"email": "must be a valid email address",
		})
	}
	return nil
}

func looksLikeEmail(s string) bool {
	at := -1
	for i, r := range s {
		if r == '@' {
			if at >= 0 {
				return false
			}
			at = i
		}
	}
	return at > 0 && at < len(s)-1
}

// ProvisionRequest is the identity-provider signup event payload.
type ProvisionRequest struct {
	Type string `json:"type"`
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (r *ProvisionRequest) Validate() error {
	if r.User.ID == "" {
		return domain.ValidationError("invalid provision event", map[string]string{
			"user.id": "is required",
		})
	}
	return nil
}
