package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/identity"
	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/repository"
)

// Actor is the authenticated principal of a request: the verified identity
// assertion plus the reconciled account record, when one exists.
type Actor struct {
	Identity *identity.Identity
	User     *models.User
}

// Role returns the actor's account role, defaulting to student when no
// account record has been reconciled yet
func (a Actor) Role() models.Role {
	if a.User != nil {
		return a.User.Role
	}
	return models.RoleStudent
}

// Snapshot captures the actor as an immutable point-in-time record for
// embedding into submissions. The account record wins over the assertion;
// the display name falls back to the asserted name, then the email.
func (a Actor) Snapshot() models.UserSnapshot {
	snapshot := models.UserSnapshot{}
	if a.Identity != nil {
		snapshot.SubjectID = a.Identity.SubjectID
		snapshot.Name = a.Identity.DisplayName
		snapshot.Email = a.Identity.Email
	}
	if a.User != nil {
		if a.User.DisplayName != "" {
			snapshot.Name = a.User.DisplayName
		}
		if a.User.Email != "" {
			snapshot.Email = a.User.Email
		}
		snapshot.Role = a.User.Role
	}
	if snapshot.Name == "" {
		snapshot.Name = snapshot.Email
	}
	return snapshot
}

// AccountService reconciles external identities with internal accounts
type AccountService interface {
	Sync(ctx context.Context, ident *identity.Identity) (*models.User, *models.Profile, error)
	UserBySubject(ctx context.Context, subjectID string) (*models.User, error)
}

// ProfileService manages the user-editable profile record
type ProfileService interface {
	GetOrCreate(ctx context.Context, actor Actor) (*models.Profile, error)
	Update(ctx context.Context, actor Actor, update *models.ProfileUpdate) (*models.Profile, error)
}

// EventService manages event submissions and their moderation lifecycle
type EventService interface {
	ListPublished(ctx context.Context) ([]*models.Event, error)
	ListPending(ctx context.Context) ([]*models.Event, error)
	Submit(ctx context.Context, actor Actor, input *models.EventInput) (*models.Event, error)
	Approve(ctx context.Context, actor Actor, id string) (*models.Event, error)
	Reject(ctx context.Context, id string) (*models.Event, error)
	Delete(ctx context.Context, id string) (*models.Event, error)
}

// PostService manages hackfinder submissions and their moderation lifecycle
type PostService interface {
	ListPublished(ctx context.Context) ([]*models.HackFinderPost, error)
	ListPending(ctx context.Context) ([]*models.HackFinderPost, error)
	Submit(ctx context.Context, actor Actor, input *models.HackFinderPostInput) (*models.HackFinderPost, error)
	Approve(ctx context.Context, actor Actor, id string) (*models.HackFinderPost, error)
	Reject(ctx context.Context, id string) (*models.HackFinderPost, error)
	Delete(ctx context.Context, id string) (*models.HackFinderPost, error)
}

// Services holds all service interfaces
type Services struct {
	Account AccountService
	Profile ProfileService
	Event   EventService
	Post    PostService
}

// NewServices creates all services over the given repositories. The role
// resolver is injected so both deployment modes share identical approval
// logic: the API mode passes the configured privilege lists, the local-first
// mode passes empty ones and assigns roles at login.
func NewServices(repos *repository.Repositories, resolver *identity.RoleResolver, log zerolog.Logger) *Services {
	return &Services{
		Account: newAccountService(repos.User, repos.Profile, resolver, log),
		Profile: newProfileService(repos.Profile, log),
		Event:   newEventService(repos.Event, log),
		Post:    newPostService(repos.Post, log),
	}
}
