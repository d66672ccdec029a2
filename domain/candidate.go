package domain

import (
	"encoding/json"
	"time"
)

// CandidateType classifies what kind of task was extracted from a message.
type CandidateType string

const (
	TypeDeadline CandidateType = "DEADLINE"
	TypeReading  CandidateType = "READING"
	TypeAdmin    CandidateType = "ADMIN"
	TypeChange   CandidateType = "CHANGE"
	TypeEvent    CandidateType = "EVENT"
)

// ValidCandidateType reports whether t is a known candidate type.
func ValidCandidateType(t CandidateType) bool {
	switch t {
	case TypeDeadline, TypeReading, TypeAdmin, TypeChange, TypeEvent:
		return true
	}
	return false
}

// CandidateStatus is the lifecycle state of an extracted candidate.
type CandidateStatus string

const (
	CandidateNew       CandidateStatus = "new"
	CandidateConfirmed CandidateStatus = "confirmed"
	CandidateEdited    CandidateStatus = "edited"
	CandidateIgnored   CandidateStatus = "ignored"
)

// CanTransition is the exhaustive candidate transition table. A candidate
// only ever moves away from "new"; confirmed, edited and ignored are
// dead ends for write operations.
func CanTransition(from, to CandidateStatus) bool {
	if from != CandidateNew {
		return false
	}
	switch to {
	case CandidateConfirmed, CandidateEdited, CandidateIgnored:
		return true
	}
	return false
}

// ConfidenceBand is the coarse extraction-certainty classification.
type ConfidenceBand string

const (
	ConfidenceHigh ConfidenceBand = "HIGH"
	ConfidenceMed  ConfidenceBand = "MED"
	ConfidenceLow  ConfidenceBand = "LOW"
)

// TaskCandidate is a provisional task extracted from a source message by the
// external ingestion pipeline. This service only mutates its status (and, for
// edits, its user-facing fields); it never creates or deletes candidates.
type TaskCandidate struct {
	ID              string          `json:"id"`
	SourceMessageID string          `json:"source_message_id"`
	UserID          string          `json:"user_id"`
	Type            CandidateType   `json:"type"`
	Title           string          `json:"title"`
	Module          *string         `json:"module"`
	DueDate         *time.Time      `json:"due_date"`
	Location        *string         `json:"location"`
	Confidence      ConfidenceBand  `json:"confidence"`
	ConfidenceScore *float64        `json:"confidence_score"`
	ExtractionInfo  json.RawMessage `json:"extraction_reasons,omitempty"`
	Links           []string        `json:"links"`
	Attachments     json.RawMessage `json:"attachments,omitempty"`
	Status          CandidateStatus `json:"status"`
	ThreadID        *string         `json:"thread_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsProcessed reports whether the candidate has left the "new" state.
func (c *TaskCandidate) IsProcessed() bool {
	return c != nil && c.Status != CandidateNew
}

// IgnoreReason explains why a user dismissed a candidate. It is recorded for
// analytics only and never persisted on the candidate row.
type IgnoreReason string

const (
	IgnoreNotATask  IgnoreReason = "not_a_task"
	IgnoreDuplicate IgnoreReason = "duplicate"
	IgnoreSpam      IgnoreReason = "spam"
	IgnoreOther     IgnoreReason = "other"
)

// ValidIgnoreReason reports whether r is a known ignore reason.
func ValidIgnoreReason(r IgnoreReason) bool {
	switch r {
	case IgnoreNotATask, IgnoreDuplicate, IgnoreSpam, IgnoreOther:
		return true
	}
	return false
}
