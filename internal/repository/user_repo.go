package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/campus-events-api/internal/database"
	"github.com/campus-events-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// GetBySubject retrieves a user by external subject id
func (r *userRepo) GetBySubject(ctx context.Context, subjectID string) (*models.User, error) {
	query := `
		SELECT id, subject_id, email, display_name, photo_url, role, last_login_at, created_at, updated_at
		FROM users WHERE subject_id = $1
	`

	var user models.User
	var lastLoginAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, subjectID).Scan(
		&user.ID, &user.SubjectID, &user.Email, &user.DisplayName,
		&user.PhotoURL, &user.Role, &lastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by subject: %w", err)
	}

	if lastLoginAt.Valid {
		user.LastLoginAt = lastLoginAt.Time
	}
	return &user, nil
}

// Upsert inserts the user or refreshes the existing record for its subject id
func (r *userRepo) Upsert(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `
		INSERT INTO users (id, subject_id, email, display_name, photo_url, role, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (subject_id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			photo_url = EXCLUDED.photo_url,
			role = EXCLUDED.role,
			last_login_at = EXCLUDED.last_login_at,
			updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.SubjectID, user.Email, user.DisplayName,
		user.PhotoURL, user.Role, user.LastLoginAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
