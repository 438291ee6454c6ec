package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/campus-events-api/internal/database"
	"github.com/campus-events-api/internal/models"
)

// profileRepo is the concrete implementation of ProfileRepository
type profileRepo struct {
	db *database.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *database.DB) ProfileRepository {
	return &profileRepo{db: db}
}

// GetBySubject retrieves a profile by external subject id
func (r *profileRepo) GetBySubject(ctx context.Context, subjectID string) (*models.Profile, error) {
	query := `
		SELECT id, subject_id, student_id, name, department, year, skills, interests,
			bio, contact_email, phone, links, created_at, updated_at
		FROM profiles WHERE subject_id = $1
	`

	var profile models.Profile
	var links []byte

	err := r.db.QueryRowContext(ctx, query, subjectID).Scan(
		&profile.ID, &profile.SubjectID, &profile.StudentID, &profile.Name,
		&profile.Department, &profile.Year,
		pq.Array(&profile.Skills), pq.Array(&profile.Interests),
		&profile.Bio, &profile.ContactEmail, &profile.Phone, &links,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by subject: %w", err)
	}

	if err := json.Unmarshal(links, &profile.Links); err != nil {
		return nil, fmt.Errorf("decode profile links: %w", err)
	}
	return &profile, nil
}

// Create inserts a new profile
func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	links, err := marshalLinks(profile.Links)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (id, subject_id, student_id, name, department, year, skills,
			interests, bio, contact_email, phone, links, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
	`
	_, err = r.db.ExecContext(ctx, query,
		profile.ID, profile.SubjectID, profile.StudentID, profile.Name,
		profile.Department, profile.Year,
		pq.Array(sliceOrEmpty(profile.Skills)), pq.Array(sliceOrEmpty(profile.Interests)),
		profile.Bio, profile.ContactEmail, profile.Phone, links,
	)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing profile
func (r *profileRepo) Update(ctx context.Context, profile *models.Profile) error {
	links, err := marshalLinks(profile.Links)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles SET
			student_id = $1, name = $2, department = $3, year = $4, skills = $5,
			interests = $6, bio = $7, contact_email = $8, phone = $9, links = $10,
			updated_at = now()
		WHERE subject_id = $11
	`
	_, err = r.db.ExecContext(ctx, query,
		profile.StudentID, profile.Name, profile.Department, profile.Year,
		pq.Array(sliceOrEmpty(profile.Skills)), pq.Array(sliceOrEmpty(profile.Interests)),
		profile.Bio, profile.ContactEmail, profile.Phone, links, profile.SubjectID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func marshalLinks(links []models.ProfileLink) ([]byte, error) {
	if links == nil {
		links = []models.ProfileLink{}
	}
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("encode profile links: %w", err)
	}
	return data, nil
}

// sliceOrEmpty avoids writing SQL NULL for a nil string slice
func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
