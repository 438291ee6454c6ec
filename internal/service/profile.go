package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/apperrors"
	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/repository"
	"github.com/campus-events-api/internal/validation"
)

type profileService struct {
	profiles repository.ProfileRepository
	log      zerolog.Logger
}

func newProfileService(profiles repository.ProfileRepository, log zerolog.Logger) ProfileService {
	return &profileService{
		profiles: profiles,
		log:      log.With().Str("service", "profile").Logger(),
	}
}

// GetOrCreate returns the actor's profile, lazily creating it on first access
func (s *profileService) GetOrCreate(ctx context.Context, actor Actor) (*models.Profile, error) {
	if actor.Identity == nil || actor.Identity.SubjectID == "" {
		return nil, apperrors.Unauthorized("Unable to read identity information")
	}

	profile, err := s.profiles.GetBySubject(ctx, actor.Identity.SubjectID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	snapshot := actor.Snapshot()
	profile = &models.Profile{
		SubjectID:    actor.Identity.SubjectID,
		Name:         snapshot.Name,
		ContactEmail: snapshot.Email,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	s.log.Info().Str("subject_id", actor.Identity.SubjectID).Msg("Profile created on first access")
	return profile, nil
}

// Update applies the allow-listed fields present in the request to the
// actor's profile, creating it first if absent
func (s *profileService) Update(ctx context.Context, actor Actor, update *models.ProfileUpdate) (*models.Profile, error) {
	profile, err := s.GetOrCreate(ctx, actor)
	if err != nil {
		return nil, err
	}

	validation.ApplyProfileUpdate(profile, update)
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
