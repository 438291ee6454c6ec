package models

import (
	"time"
)

// ProfileLink is a labeled external link on a profile
type ProfileLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Profile is the user-editable profile record, 1:1 with User by subject id.
// Created lazily on first profile access or account sync.
type Profile struct {
	ID           string        `json:"id" db:"id"`
	SubjectID    string        `json:"subjectId" db:"subject_id"`
	StudentID    string        `json:"studentId,omitempty" db:"student_id"`
	Name         string        `json:"name,omitempty" db:"name"`
	Department   string        `json:"department,omitempty" db:"department"`
	Year         string        `json:"year,omitempty" db:"year"`
	Skills       []string      `json:"skills" db:"skills"`
	Interests    []string      `json:"interests" db:"interests"`
	Bio          string        `json:"bio,omitempty" db:"bio"`
	ContactEmail string        `json:"contactEmail,omitempty" db:"contact_email"`
	Phone        string        `json:"phone,omitempty" db:"phone"`
	Links        []ProfileLink `json:"links" db:"links"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`
}

// ProfileUpdate carries a partial profile update. Only fields present in the
// request body are applied; everything else is untouched. The struct itself
// is the allow-list: unknown fields in the payload are discarded by the
// decoder.
type ProfileUpdate struct {
	Name         *string        `json:"name"`
	StudentID    *string        `json:"studentId"`
	Department   *string        `json:"department"`
	Year         *string        `json:"year"`
	Skills       *StringList    `json:"skills"`
	Interests    *StringList    `json:"interests"`
	Bio          *string        `json:"bio"`
	ContactEmail *string        `json:"contactEmail"`
	Phone        *string        `json:"phone"`
	Links        *[]ProfileLink `json:"links"`
}
