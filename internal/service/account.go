package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/apperrors"
	"github.com/campus-events-api/internal/identity"
	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/repository"
)

// accountService is the account reconciler: it keeps the internal User and
// Profile records idempotently in sync with the verified external identity.
type accountService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	resolver *identity.RoleResolver
	log      zerolog.Logger
}

func newAccountService(users repository.UserRepository, profiles repository.ProfileRepository, resolver *identity.RoleResolver, log zerolog.Logger) AccountService {
	return &accountService{
		users:    users,
		profiles: profiles,
		resolver: resolver,
		log:      log.With().Str("service", "account").Logger(),
	}
}

// Sync upserts the User and Profile records for a verified identity. The
// email is the required anchor field: reconciliation aborts before any write
// when the assertion lacks one. Roles are only ever raised here — a user
// removed from a privilege list keeps their last-resolved role.
func (s *accountService) Sync(ctx context.Context, ident *identity.Identity) (*models.User, *models.Profile, error) {
	if ident == nil || ident.SubjectID == "" {
		return nil, nil, apperrors.Unauthorized("Unable to read identity information")
	}
	if ident.Email == "" {
		return nil, nil, apperrors.Validation("email", "identity record is missing an email address")
	}

	now := time.Now().UTC()
	email := strings.ToLower(ident.Email)
	target := s.resolver.Resolve(email)

	user, err := s.users.GetBySubject(ctx, ident.SubjectID)
	if err != nil {
		return nil, nil, err
	}

	if user == nil {
		user = &models.User{
			SubjectID:   ident.SubjectID,
			Email:       email,
			DisplayName: ident.DisplayName,
			PhotoURL:    ident.PictureURL,
			Role:        target,
			LastLoginAt: now,
		}
		s.log.Info().Str("subject_id", ident.SubjectID).Str("role", string(target)).Msg("Creating account on first sync")
	} else {
		user.Email = email
		user.DisplayName = ident.DisplayName
		if ident.PictureURL != "" {
			user.PhotoURL = ident.PictureURL
		}
		user.LastLoginAt = now
		if !user.Role.AtLeast(target) {
			s.log.Info().Str("subject_id", ident.SubjectID).
				Str("from", string(user.Role)).Str("to", string(target)).
				Msg("Elevating account role from privilege list")
			user.Role = target
		}
	}
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, nil, err
	}

	profile, err := s.reconcileProfile(ctx, ident, user)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

// UserBySubject loads the internal account record for a verified subject
func (s *accountService) UserBySubject(ctx context.Context, subjectID string) (*models.User, error) {
	return s.users.GetBySubject(ctx, subjectID)
}

// reconcileProfile lazily creates the profile and backfills name and contact
// email only when they are currently empty; populated values are never
// overwritten by sync.
func (s *accountService) reconcileProfile(ctx context.Context, ident *identity.Identity, user *models.User) (*models.Profile, error) {
	profile, err := s.profiles.GetBySubject(ctx, ident.SubjectID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &models.Profile{
			SubjectID:    ident.SubjectID,
			Name:         ident.DisplayName,
			ContactEmail: user.Email,
		}
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	changed := false
	if profile.Name == "" && ident.DisplayName != "" {
		profile.Name = ident.DisplayName
		changed = true
	}
	if profile.ContactEmail == "" && user.Email != "" {
		profile.ContactEmail = user.Email
		changed = true
	}
	if changed {
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}
