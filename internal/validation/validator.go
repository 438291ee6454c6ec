// Package validation normalizes raw submission payloads into canonical
// entity shapes. All functions are pure transforms: they validate fail-fast,
// naming the first missing or invalid field, and never touch storage.
package validation

import (
	"strings"

	"github.com/campus-events-api/internal/apperrors"
	"github.com/campus-events-api/internal/models"
)

// NormalizeEvent validates and cleans a create-event payload
func NormalizeEvent(input *models.EventInput) (*models.EventInput, error) {
	required := []struct {
		field string
		value string
	}{
		{"title", input.Title},
		{"date", input.Date},
		{"time", input.Time},
		{"department", input.Department},
		{"description", input.Description},
		{"registrationLink", input.RegistrationLink},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, apperrors.MissingField(r.field)
		}
	}

	return &models.EventInput{
		Title:            strings.TrimSpace(input.Title),
		Date:             strings.TrimSpace(input.Date),
		Time:             strings.TrimSpace(input.Time),
		Department:       strings.TrimSpace(input.Department),
		Description:      strings.TrimSpace(input.Description),
		RegistrationLink: strings.TrimSpace(input.RegistrationLink),
		Featured:         input.Featured,
	}, nil
}

// NormalizeHackFinderPost validates and cleans a create-post payload
func NormalizeHackFinderPost(input *models.HackFinderPostInput) (*models.HackFinderPostInput, error) {
	required := []struct {
		field string
		value string
	}{
		{"type", input.Type},
		{"title", input.Title},
		{"description", input.Description},
		{"contact", input.Contact},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, apperrors.MissingField(r.field)
		}
	}

	postType := strings.ToLower(strings.TrimSpace(input.Type))
	if postType != string(models.PostTypeTeam) && postType != string(models.PostTypeIndividual) {
		return nil, apperrors.Validation("type", `HackFinder post type must be either "team" or "individual"`)
	}

	out := &models.HackFinderPostInput{
		Type:        postType,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Skills:      models.CleanList(input.Skills),
		Contact:     strings.TrimSpace(input.Contact),
		Author:      strings.TrimSpace(input.Author),
		Department:  strings.TrimSpace(input.Department),
	}
	// team size is only meaningful for team listings
	if postType == string(models.PostTypeTeam) {
		out.TeamSize = strings.TrimSpace(input.TeamSize)
	}
	return out, nil
}

// ApplyProfileUpdate applies the present fields of a partial update to the
// profile. Absent fields are left untouched.
func ApplyProfileUpdate(profile *models.Profile, update *models.ProfileUpdate) {
	if update.Name != nil {
		profile.Name = strings.TrimSpace(*update.Name)
	}
	if update.StudentID != nil {
		profile.StudentID = strings.TrimSpace(*update.StudentID)
	}
	if update.Department != nil {
		profile.Department = strings.TrimSpace(*update.Department)
	}
	if update.Year != nil {
		profile.Year = strings.TrimSpace(*update.Year)
	}
	if update.Skills != nil {
		profile.Skills = models.CleanList(*update.Skills)
	}
	if update.Interests != nil {
		profile.Interests = models.CleanList(*update.Interests)
	}
	if update.Bio != nil {
		profile.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.ContactEmail != nil {
		profile.ContactEmail = strings.ToLower(strings.TrimSpace(*update.ContactEmail))
	}
	if update.Phone != nil {
		profile.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Links != nil {
		profile.Links = NormalizeLinks(*update.Links)
	}
}

// NormalizeLinks trims link labels and URLs and drops entries missing either
func NormalizeLinks(links []models.ProfileLink) []models.ProfileLink {
	out := make([]models.ProfileLink, 0, len(links))
	for _, link := range links {
		label := strings.TrimSpace(link.Label)
		url := strings.TrimSpace(link.URL)
		if label != "" && url != "" {
			out = append(out, models.ProfileLink{Label: label, URL: url})
		}
	}
	return out
}
