package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/apperrors"
	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/repository"
	"github.com/campus-events-api/internal/validation"
)

type eventService struct {
	events repository.EventRepository
	log    zerolog.Logger
}

func newEventService(events repository.EventRepository, log zerolog.Logger) EventService {
	return &eventService{
		events: events,
		log:    log.With().Str("service", "event").Logger(),
	}
}

// ListPublished returns the public event listing
func (s *eventService) ListPublished(ctx context.Context) ([]*models.Event, error) {
	return s.events.ListPublished(ctx)
}

// ListPending returns the moderation queue
func (s *eventService) ListPending(ctx context.Context) ([]*models.Event, error) {
	return s.events.ListPending(ctx)
}

// Submit normalizes and persists a new event. Privileged submitters publish
// immediately with their own snapshot as the approval stamp; students queue.
func (s *eventService) Submit(ctx context.Context, actor Actor, input *models.EventInput) (*models.Event, error) {
	normalized, err := validation.NormalizeEvent(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := &models.Event{
		Title:            normalized.Title,
		Date:             normalized.Date,
		Time:             normalized.Time,
		Department:       normalized.Department,
		Description:      normalized.Description,
		RegistrationLink: normalized.RegistrationLink,
		Featured:         normalized.Featured,
		CreatedAt:        now,
	}
	event.Moderation.Submit(actor.Snapshot(), actor.Role(), now)

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", event.ID).Str("status", string(event.Status)).Msg("Event submitted")
	return event, nil
}

// Approve publishes a pending event on behalf of the acting admin
func (s *eventService) Approve(ctx context.Context, actor Actor, id string) (*models.Event, error) {
	event, err := s.events.Approve(ctx, id, actor.Snapshot(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound("Event")
	}
	s.log.Info().Str("event_id", id).Msg("Event approved")
	return event, nil
}

// Reject marks a pending event rejected
func (s *eventService) Reject(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.Reject(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound("Event")
	}
	s.log.Info().Str("event_id", id).Msg("Event rejected")
	return event, nil
}

// Delete removes an event regardless of status
func (s *eventService) Delete(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound("Event")
	}
	s.log.Info().Str("event_id", id).Msg("Event deleted")
	return event, nil
}
