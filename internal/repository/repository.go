package repository

import (
	"context"
	"time"

	"github.com/campus-events-api/internal/database"
	"github.com/campus-events-api/internal/models"
)

// UserRepository defines the interface for user data operations.
// Lookups return (nil, nil) when no record exists.
type UserRepository interface {
	GetBySubject(ctx context.Context, subjectID string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	GetBySubject(ctx context.Context, subjectID string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
}

// EventRepository defines the interface for event data operations.
// Approve and Reject are atomic conditional transitions: they only touch a
// row whose status is still pending and return (nil, nil) otherwise, so
// concurrent moderation calls on the same id resolve to a single winner.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	ListPublished(ctx context.Context) ([]*models.Event, error)
	ListPending(ctx context.Context) ([]*models.Event, error)
	Approve(ctx context.Context, id string, by models.UserSnapshot, at time.Time) (*models.Event, error)
	Reject(ctx context.Context, id string) (*models.Event, error)
	Delete(ctx context.Context, id string) (*models.Event, error)
}

// PostRepository defines the interface for hackfinder post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.HackFinderPost) error
	GetByID(ctx context.Context, id string) (*models.HackFinderPost, error)
	ListPublished(ctx context.Context) ([]*models.HackFinderPost, error)
	ListPending(ctx context.Context) ([]*models.HackFinderPost, error)
	Approve(ctx context.Context, id string, by models.UserSnapshot, at time.Time) (*models.HackFinderPost, error)
	Reject(ctx context.Context, id string) (*models.HackFinderPost, error)
	Delete(ctx context.Context, id string) (*models.HackFinderPost, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Profile ProfileRepository
	Event   EventRepository
	Post    PostRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Profile: NewProfileRepo(db),
		Event:   NewEventRepo(db),
		Post:    NewPostRepo(db),
	}
}
