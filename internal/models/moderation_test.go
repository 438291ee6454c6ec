package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestModerationSubmit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	submitter := UserSnapshot{SubjectID: "sub-1", Name: "Asha", Email: "asha@campus.edu", Role: RoleStudent}

	t.Run("student lands in queue", func(t *testing.T) {
		var m Moderation
		m.Submit(submitter, RoleStudent, now)

		if m.Status != StatusPending {
			t.Errorf("Expected status pending, got %s", m.Status)
		}
		if m.SubmittedBy == nil || m.SubmittedBy.SubjectID != "sub-1" {
			t.Error("Submitter snapshot should be stamped")
		}
		if !m.SubmittedAt.Equal(now) {
			t.Errorf("Expected submittedAt %v, got %v", now, m.SubmittedAt)
		}
		if m.ApprovedBy != nil || m.ApprovedAt != nil {
			t.Error("Pending submission should carry no approval stamp")
		}
	})

	t.Run("admin publishes immediately", func(t *testing.T) {
		var m Moderation
		m.Submit(submitter, RoleAdmin, now)

		if m.Status != StatusPublished {
			t.Errorf("Expected status published, got %s", m.Status)
		}
		if m.ApprovedBy == nil || m.ApprovedBy.SubjectID != "sub-1" {
			t.Error("Immediate publish should reuse the submitter as approver")
		}
		if m.ApprovedAt == nil || !m.ApprovedAt.Equal(now) {
			t.Error("ApprovedAt should match the submission time")
		}
	})

	t.Run("eventHead publishes immediately", func(t *testing.T) {
		var m Moderation
		m.Submit(submitter, RoleEventHead, now)

		if m.Status != StatusPublished {
			t.Errorf("Expected status published, got %s", m.Status)
		}
	})
}

func TestModerationApprove(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	admin := UserSnapshot{SubjectID: "admin-1", Name: "Dean", Role: RoleAdmin}

	var m Moderation
	m.Submit(UserSnapshot{SubjectID: "sub-1"}, RoleStudent, now)

	if err := m.Approve(admin, later); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if m.Status != StatusPublished {
		t.Errorf("Expected status published, got %s", m.Status)
	}
	if m.ApprovedBy == nil || m.ApprovedBy.SubjectID != "admin-1" {
		t.Error("Approver snapshot should be stamped")
	}
	if m.ApprovedAt == nil || !m.ApprovedAt.Equal(later) {
		t.Error("ApprovedAt should be the approval time")
	}
	if m.SubmittedBy == nil || m.SubmittedBy.SubjectID != "sub-1" {
		t.Error("Approval must not disturb the submitter snapshot")
	}

	// second approval must fail
	if err := m.Approve(admin, later); !errors.Is(err, ErrNotPending) {
		t.Errorf("Expected ErrNotPending on double approve, got %v", err)
	}
}

func TestModerationReject(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var m Moderation
	m.Submit(UserSnapshot{SubjectID: "sub-1"}, RoleStudent, now)

	if err := m.Reject(); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if m.Status != StatusRejected {
		t.Errorf("Expected status rejected, got %s", m.Status)
	}
	if m.ApprovedBy != nil || m.ApprovedAt != nil {
		t.Error("Rejection should clear any approval stamp")
	}

	if err := m.Reject(); !errors.Is(err, ErrNotPending) {
		t.Errorf("Expected ErrNotPending on double reject, got %v", err)
	}

	var published Moderation
	published.Submit(UserSnapshot{SubjectID: "sub-2"}, RoleAdmin, now)
	if err := published.Reject(); !errors.Is(err, ErrNotPending) {
		t.Errorf("Expected ErrNotPending rejecting a published submission, got %v", err)
	}
}

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "json array",
			raw:  `["React","Python"]`,
			want: []string{"React", "Python"},
		},
		{
			name: "comma separated string",
			raw:  `"React, Python"`,
			want: []string{"React", "Python"},
		},
		{
			name: "array entries trimmed and blanks dropped",
			raw:  `[" Go ", "", "  ", "SQL"]`,
			want: []string{"Go", "SQL"},
		},
		{
			name: "duplicates and order preserved",
			raw:  `"go,go, sql"`,
			want: []string{"go", "go", "sql"},
		},
		{
			name: "null",
			raw:  `null`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list StringList
			if err := json.Unmarshal([]byte(tt.raw), &list); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual([]string(list), tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, list)
			}
		})
	}

	var list StringList
	if err := json.Unmarshal([]byte(`42`), &list); err == nil {
		t.Error("Expected error for a non-string, non-array value")
	}
}

func TestRoleAtLeast(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleEventHead) {
		t.Error("admin should outrank eventHead")
	}
	if !RoleEventHead.AtLeast(RoleStudent) {
		t.Error("eventHead should outrank student")
	}
	if RoleStudent.AtLeast(RoleAdmin) {
		t.Error("student must not outrank admin")
	}
	if !RoleStudent.AtLeast(RoleStudent) {
		t.Error("a role is at least itself")
	}
	// unknown roles rank below student
	if Role("ghost").AtLeast(RoleEventHead) {
		t.Error("unknown role must not outrank eventHead")
	}
}

func TestRoleCanPublishImmediately(t *testing.T) {
	if !RoleAdmin.CanPublishImmediately() || !RoleEventHead.CanPublishImmediately() {
		t.Error("admin and eventHead skip the moderation queue")
	}
	if RoleStudent.CanPublishImmediately() {
		t.Error("student submissions must queue")
	}
}
