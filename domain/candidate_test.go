package domain

import (
	"testing"

	"pgregory.net/rapid"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to CandidateStatus
		want     bool
	}{
		{CandidateNew, CandidateConfirmed, true},
		{CandidateNew, CandidateEdited, true},
		{CandidateNew, CandidateIgnored, true},
		{CandidateNew, CandidateNew, false},
		{CandidateConfirmed, CandidateIgnored, false},
		{CandidateEdited, CandidateConfirmed, false},
		{CandidateIgnored, CandidateNew, false},
		{CandidateConfirmed, CandidateConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// A processed candidate is terminal: no transition out of any non-new state
// is ever allowed, whatever the target.
func TestCanTransition_ProcessedIsTerminal(t *testing.T) {
	statuses := []CandidateStatus{CandidateNew, CandidateConfirmed, CandidateEdited, CandidateIgnored}
	rapid.Check(t, func(rt *rapid.T) {
		from := rapid.SampledFrom(statuses).Draw(rt, "from")
		to := rapid.SampledFrom(statuses).Draw(rt, "to")

		got := CanTransition(from, to)
		if from != CandidateNew && got {
			rt.Fatalf("CanTransition(%q, %q) = true, processed candidates must be terminal", from, to)
		}
		if got && to == CandidateNew {
			rt.Fatalf("CanTransition(%q, %q) = true, nothing may return to new", from, to)
		}
	})
}

func TestValidCandidateType(t *testing.T) {
	for _, typ := range []CandidateType{TypeDeadline, TypeReading, TypeAdmin, TypeChange, TypeEvent} {
		if !ValidCandidateType(typ) {
			t.Errorf("ValidCandidateType(%q) = false", typ)
		}
	}
	if ValidCandidateType("not-a-real-type") {
		t.Error("ValidCandidateType accepted an unknown type")
	}
	if ValidCandidateType("deadline") {
		t.Error("ValidCandidateType must be case-sensitive")
	}
}

func TestIsProcessed(t *testing.T) {
	c := &TaskCandidate{Status: CandidateNew}
	if c.IsProcessed() {
		t.Error("new candidate reported as processed")
	}
	c.Status = CandidateIgnored
	if !c.IsProcessed() {
		t.Error("ignored candidate reported as unprocessed")
	}
	var nilCandidate *TaskCandidate
	if nilCandidate.IsProcessed() {
		t.Error("nil candidate reported as processed")
	}
}
