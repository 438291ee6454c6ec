package models

import (
	"time"
)

// PostType distinguishes team listings from individuals looking for a team
type PostType string

const (
	PostTypeTeam       PostType = "team"
	PostTypeIndividual PostType = "individual"
)

// HackFinderPost is a team-matching listing
type HackFinderPost struct {
	ID          string   `json:"id" db:"id"`
	Type        PostType `json:"type" db:"type"`
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Skills      []string `json:"skills" db:"skills"`
	TeamSize    string   `json:"teamSize,omitempty" db:"team_size"`
	Contact     string   `json:"contact" db:"contact"`
	Author      string   `json:"author,omitempty" db:"author"`
	Department  string   `json:"department,omitempty" db:"department"`

	Moderation

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// HackFinderPostInput is the raw create-post payload before normalization
type HackFinderPostInput struct {
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Skills      StringList `json:"skills"`
	TeamSize    string     `json:"teamSize"`
	Contact     string     `json:"contact"`
	Author      string     `json:"author"`
	Department  string     `json:"department"`
}
