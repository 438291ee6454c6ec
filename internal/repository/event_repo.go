package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campus-events-api/internal/database"
	"github.com/campus-events-api/internal/models"
)

const eventColumns = `id, title, date, time, department, description, registration_link,
	featured, status, submitted_by, approved_by, submitted_at, approved_at, created_at`

// eventRepo is the concrete implementation of EventRepository
type eventRepo struct {
	db *database.DB
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *database.DB) EventRepository {
	return &eventRepo{db: db}
}

// Create inserts a new event
func (r *eventRepo) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	submittedBy, err := marshalSnapshot(event.SubmittedBy)
	if err != nil {
		return err
	}
	approvedBy, err := marshalSnapshot(event.ApprovedBy)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO events (id, title, date, time, department, description, registration_link,
			featured, status, submitted_by, approved_by, submitted_at, approved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Date, event.Time, event.Department,
		event.Description, event.RegistrationLink, event.Featured, event.Status,
		submittedBy, approvedBy, event.SubmittedAt, event.ApprovedAt, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by id, returning (nil, nil) when absent
func (r *eventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if !isValidID(id) {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

// ListPublished returns published events ordered by event date ascending,
// ties broken by creation time descending
func (r *eventRepo) ListPublished(ctx context.Context) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = $1 ORDER BY date ASC, created_at DESC`
	return r.list(ctx, query, models.StatusPublished)
}

// ListPending returns the moderation queue ordered by submission time descending
func (r *eventRepo) ListPending(ctx context.Context) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = $1 ORDER BY submitted_at DESC`
	return r.list(ctx, query, models.StatusPending)
}

// Approve publishes a pending event, stamping the acting admin. The status
// guard in the WHERE clause makes the transition atomic: a concurrent
// approve or reject on the same id leaves exactly one winner.
func (r *eventRepo) Approve(ctx context.Context, id string, by models.UserSnapshot, at time.Time) (*models.Event, error) {
	if !isValidID(id) {
		return nil, nil
	}
	approvedBy, err := marshalSnapshot(&by)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE events SET status = $1, approved_by = $2, approved_at = $3
		WHERE id = $4 AND status = $5
		RETURNING ` + eventColumns
	row := r.db.QueryRowContext(ctx, query,
		models.StatusPublished, approvedBy, at, id, models.StatusPending)
	return scanEvent(row)
}

// Reject marks a pending event rejected, clearing any approval stamp
func (r *eventRepo) Reject(ctx context.Context, id string) (*models.Event, error) {
	if !isValidID(id) {
		return nil, nil
	}
	query := `
		UPDATE events SET status = $1, approved_by = NULL, approved_at = NULL
		WHERE id = $2 AND status = $3
		RETURNING ` + eventColumns
	row := r.db.QueryRowContext(ctx, query, models.StatusRejected, id, models.StatusPending)
	return scanEvent(row)
}

// Delete removes an event regardless of status and returns the removed row
func (r *eventRepo) Delete(ctx context.Context, id string) (*models.Event, error) {
	if !isValidID(id) {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx,
		`DELETE FROM events WHERE id = $1 RETURNING `+eventColumns, id)
	return scanEvent(row)
}

func (r *eventRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var event models.Event
	var submittedBy, approvedBy []byte
	var approvedAt sql.NullTime

	err := row.Scan(
		&event.ID, &event.Title, &event.Date, &event.Time, &event.Department,
		&event.Description, &event.RegistrationLink, &event.Featured, &event.Status,
		&submittedBy, &approvedBy, &event.SubmittedAt, &approvedAt, &event.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}

	if event.SubmittedBy, err = unmarshalSnapshot(submittedBy); err != nil {
		return nil, err
	}
	if event.ApprovedBy, err = unmarshalSnapshot(approvedBy); err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		event.ApprovedAt = &approvedAt.Time
	}
	return &event, nil
}
