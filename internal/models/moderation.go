package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Status is the moderation state of a submission
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

// ErrNotPending is returned by transitions that require a pending submission
var ErrNotPending = errors.New("submission is not pending")

// Moderation is the shared submission lifecycle embedded in every
// moderated entity. Transitions are pending -> published (approve) and
// pending -> rejected (reject); deletion is handled by the repositories and
// is valid from any state.
type Moderation struct {
	Status      Status        `json:"status" db:"status"`
	SubmittedBy *UserSnapshot `json:"submittedBy,omitempty" db:"submitted_by"`
	ApprovedBy  *UserSnapshot `json:"approvedBy,omitempty" db:"approved_by"`
	SubmittedAt time.Time     `json:"submittedAt" db:"submitted_at"`
	ApprovedAt  *time.Time    `json:"approvedAt,omitempty" db:"approved_at"`
}

// Submit initializes the lifecycle for a new submission. Privileged roles
// publish immediately, reusing the submitter snapshot as the approver;
// everyone else lands in the moderation queue.
func (m *Moderation) Submit(by UserSnapshot, role Role, now time.Time) {
	m.SubmittedBy = &by
	m.SubmittedAt = now
	if role.CanPublishImmediately() {
		m.Status = StatusPublished
		m.ApprovedBy = &by
		at := now
		m.ApprovedAt = &at
		return
	}
	m.Status = StatusPending
	m.ApprovedBy = nil
	m.ApprovedAt = nil
}

// Approve transitions pending -> published, stamping the acting admin.
func (m *Moderation) Approve(by UserSnapshot, now time.Time) error {
	if m.Status != StatusPending {
		return ErrNotPending
	}
	m.Status = StatusPublished
	m.ApprovedBy = &by
	at := now
	m.ApprovedAt = &at
	return nil
}

// Reject transitions pending -> rejected. There is no rejectedBy field;
// the approval stamp is cleared instead.
func (m *Moderation) Reject() error {
	if m.Status != StatusPending {
		return ErrNotPending
	}
	m.Status = StatusRejected
	m.ApprovedBy = nil
	m.ApprovedAt = nil
	return nil
}

// StringList accepts either a JSON array of strings or a single
// comma-separated string. Entries are trimmed, blanks dropped, order kept,
// duplicates kept.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*s = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "\"") {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = SplitList(raw)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = CleanList(items)
	return nil
}

// SplitList splits a comma-separated string into a cleaned list
func SplitList(raw string) []string {
	return CleanList(strings.Split(raw, ","))
}

// CleanList trims entries and drops blanks, preserving order and duplicates
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
