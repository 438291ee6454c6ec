package models

import (
	"time"
)

// Event is a campus event listing
type Event struct {
	ID               string `json:"id" db:"id"`
	Title            string `json:"title" db:"title"`
	Date             string `json:"date" db:"date"`
	Time             string `json:"time" db:"time"`
	Department       string `json:"department" db:"department"`
	Description      string `json:"description" db:"description"`
	RegistrationLink string `json:"registrationLink" db:"registration_link"`
	Featured         bool   `json:"featured" db:"featured"`

	Moderation

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// EventInput is the raw create-event payload before normalization
type EventInput struct {
	Title            string `json:"title"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Department       string `json:"department"`
	Description      string `json:"description"`
	RegistrationLink string `json:"registrationLink"`
	Featured         bool   `json:"featured"`
}
