package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/campus-events-api/internal/database"
	"github.com/campus-events-api/internal/models"
)

const postColumns = `id, type, title, description, skills, team_size, contact, author,
	department, status, submitted_by, approved_by, submitted_at, approved_at, created_at`

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new hackfinder post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new post
func (r *postRepo) Create(ctx context.Context, post *models.HackFinderPost) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	submittedBy, err := marshalSnapshot(post.SubmittedBy)
	if err != nil {
		return err
	}
	approvedBy, err := marshalSnapshot(post.ApprovedBy)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO hackfinder_posts (id, type, title, description, skills, team_size,
			contact, author, department, status, submitted_by, approved_by, submitted_at,
			approved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = r.db.ExecContext(ctx, query,
		post.ID, post.Type, post.Title, post.Description, pq.Array(sliceOrEmpty(post.Skills)),
		post.TeamSize, post.Contact, post.Author, post.Department, post.Status,
		submittedBy, approvedBy, post.SubmittedAt, post.ApprovedAt, post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create hackfinder post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by id, returning (nil, nil) when absent
func (r *postRepo) GetByID(ctx context.Context, id string) (*models.HackFinderPost, error) {
	if !isValidID(id) {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM hackfinder_posts WHERE id = $1`, id)
	return scanPost(row)
}

// ListPublished returns published posts ordered by creation time descending
func (r *postRepo) ListPublished(ctx context.Context) ([]*models.HackFinderPost, error) {
	query := `SELECT ` + postColumns + ` FROM hackfinder_posts
		WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, models.StatusPublished)
}

// ListPending returns the moderation queue ordered by submission time descending
func (r *postRepo) ListPending(ctx context.Context) ([]*models.HackFinderPost, error) {
	query := `SELECT ` + postColumns + ` FROM hackfinder_posts
		WHERE status = $1 ORDER BY submitted_at DESC`
	return r.list(ctx, query, models.StatusPending)
}

// Approve publishes a pending post; the status guard makes it atomic
func (r *postRepo) Approve(ctx context.Context, id string, by models.UserSnapshot, at time.Time) (*models.HackFinderPost, error) {
	if !isValidID(id) {
		return nil, nil
	}
	approvedBy, err := marshalSnapshot(&by)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE hackfinder_posts SET status = $1, approved_by = $2, approved_at = $3
		WHERE id = $4 AND status = $5
		RETURNING ` + postColumns
	row := r.db.QueryRowContext(ctx, query,
		models.StatusPublished, approvedBy, at, id, models.StatusPending)
	return scanPost(row)
}

// Reject marks a pending post rejected, clearing any approval stamp
func (r *postRepo) Reject(ctx context.Context, id string) (*models.HackFinderPost, error) {
	if !isValidID(id) {
		return nil, nil
	}
	query := `
		UPDATE hackfinder_posts SET status = $1, approved_by = NULL, approved_at = NULL
		WHERE id = $2 AND status = $3
		RETURNING ` + postColumns
	row := r.db.QueryRowContext(ctx, query, models.StatusRejected, id, models.StatusPending)
	return scanPost(row)
}

// Delete removes a post regardless of status and returns the removed row
func (r *postRepo) Delete(ctx context.Context, id string) (*models.HackFinderPost, error) {
	if !isValidID(id) {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx,
		`DELETE FROM hackfinder_posts WHERE id = $1 RETURNING `+postColumns, id)
	return scanPost(row)
}

func (r *postRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.HackFinderPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hackfinder posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.HackFinderPost{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func scanPost(row rowScanner) (*models.HackFinderPost, error) {
	var post models.HackFinderPost
	var submittedBy, approvedBy []byte
	var approvedAt sql.NullTime

	err := row.Scan(
		&post.ID, &post.Type, &post.Title, &post.Description, pq.Array(&post.Skills),
		&post.TeamSize, &post.Contact, &post.Author, &post.Department, &post.Status,
		&submittedBy, &approvedBy, &post.SubmittedAt, &approvedAt, &post.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan hackfinder post: %w", err)
	}

	if post.SubmittedBy, err = unmarshalSnapshot(submittedBy); err != nil {
		return nil, err
	}
	if post.ApprovedBy, err = unmarshalSnapshot(approvedBy); err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		post.ApprovedAt = &approvedAt.Time
	}
	return &post, nil
}
