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

type postService struct {
	posts repository.PostRepository
	log   zerolog.Logger
}

func newPostService(posts repository.PostRepository, log zerolog.Logger) PostService {
	return &postService{
		posts: posts,
		log:   log.With().Str("service", "hackfinder").Logger(),
	}
}

// ListPublished returns the public hackfinder listing
func (s *postService) ListPublished(ctx context.Context) ([]*models.HackFinderPost, error) {
	return s.posts.ListPublished(ctx)
}

// ListPending returns the moderation queue
func (s *postService) ListPending(ctx context.Context) ([]*models.HackFinderPost, error) {
	return s.posts.ListPending(ctx)
}

// Submit normalizes and persists a new hackfinder post
func (s *postService) Submit(ctx context.Context, actor Actor, input *models.HackFinderPostInput) (*models.HackFinderPost, error) {
	normalized, err := validation.NormalizeHackFinderPost(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &models.HackFinderPost{
		Type:        models.PostType(normalized.Type),
		Title:       normalized.Title,
		Description: normalized.Description,
		Skills:      normalized.Skills,
		TeamSize:    normalized.TeamSize,
		Contact:     normalized.Contact,
		Author:      normalized.Author,
		Department:  normalized.Department,
		CreatedAt:   now,
	}
	post.Moderation.Submit(actor.Snapshot(), actor.Role(), now)

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", post.ID).Str("status", string(post.Status)).Msg("HackFinder post submitted")
	return post, nil
}

// Approve publishes a pending post on behalf of the acting admin
func (s *postService) Approve(ctx context.Context, actor Actor, id string) (*models.HackFinderPost, error) {
	post, err := s.posts.Approve(ctx, id, actor.Snapshot(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.NotFound("HackFinder post")
	}
	s.log.Info().Str("post_id", id).Msg("HackFinder post approved")
	return post, nil
}

// Reject marks a pending post rejected
func (s *postService) Reject(ctx context.Context, id string) (*models.HackFinderPost, error) {
	post, err := s.posts.Reject(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.NotFound("HackFinder post")
	}
	s.log.Info().Str("post_id", id).Msg("HackFinder post rejected")
	return post, nil
}

// Delete removes a post regardless of status
func (s *postService) Delete(ctx context.Context, id string) (*models.HackFinderPost, error) {
	post, err := s.posts.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.NotFound("HackFinder post")
	}
	s.log.Info().Str("post_id", id).Msg("HackFinder post deleted")
	return post, nil
}
