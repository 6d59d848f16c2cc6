package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
	"github.com/cafecritique/review-api/internal/core/validation"
)

type RatingService struct {
	repo     ports.RatingRepository
	locker   ports.KeyLocker
	refs     *validation.References
	validate *validation.Validator
	log      zerolog.Logger
	now      func() time.Time
}

func NewRatingService(
	repo ports.RatingRepository,
	locker ports.KeyLocker,
	refs *validation.References,
	validate *validation.Validator,
	log zerolog.Logger,
) *RatingService {
	return &RatingService{
		repo:     repo,
		locker:   locker,
		refs:     refs,
		validate: validate,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *RatingService) List(ctx context.Context, restaurantID string) ([]*domain.Rating, error) {
	if _, err := s.refs.ActiveRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	ratings, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil, domain.NotFound("There are no ratings yet")
	}
	return ratings, nil
}

// Upsert records a blogger's star rating of an active restaurant, replacing
// any earlier rating by the same blogger.
func (s *RatingService) Upsert(ctx context.Context, restaurantID string, in ports.RatingInput) (*domain.Rating, bool, error) {
	if err := validation.ID(restaurantID); err != nil {
		return nil, false, err
	}
	in.Blogger = strings.ToLower(strings.TrimSpace(in.Blogger))
	if err := s.validate.Struct(in); err != nil {
		return nil, false, err
	}
	if _, err := s.refs.Account(ctx, "blogger", in.Blogger, domain.RoleBlogger); err != nil {
		return nil, false, err
	}
	if _, err := s.refs.ActiveRestaurant(ctx, restaurantID); err != nil {
		return nil, false, err
	}

	ts := in.Timestamp.UTC()
	if in.Timestamp.IsZero() {
		ts = s.now()
	}

	release := lockKey(ctx, s.locker, "rating:"+restaurantID+":"+in.Blogger, s.log)
	defer release()

	rating, created, err := s.repo.Upsert(ctx, &domain.Rating{
		Stars:      in.Stars,
		Restaurant: restaurantID,
		Blogger:    in.Blogger,
		Timestamp:  ts,
	})
	if err != nil {
		s.log.Error().Err(err).Str("restaurant_id", restaurantID).Str("blogger", in.Blogger).Msg("failed to upsert rating")
		return nil, false, domain.Internal("Could not save rating", err)
	}

	s.log.Info().
		Str("restaurant_id", restaurantID).
		Str("blogger", in.Blogger).
		Int("stars", in.Stars).
		Bool("created", created).
		Msg("rating saved")
	return rating, created, nil
}

// Delete removes the rating identified by (restaurant, blogger) rather than by
// the rating's own identifier.
func (s *RatingService) Delete(ctx context.Context, restaurantID string, in ports.RatingKeyInput) error {
	if err := validation.ID(restaurantID); err != nil {
		return err
	}
	in.Blogger = strings.ToLower(strings.TrimSpace(in.Blogger))
	if err := s.validate.Struct(in); err != nil {
		return err
	}
	if _, err := s.refs.Account(ctx, "blogger", in.Blogger, domain.RoleBlogger); err != nil {
		return err
	}
	if _, err := s.refs.ActiveRestaurant(ctx, restaurantID); err != nil {
		return err
	}

	err := s.repo.DeleteByKey(ctx, restaurantID, in.Blogger)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("Could not delete rating. Rating does not exist")
	}
	if err != nil {
		s.log.Error().Err(err).Str("restaurant_id", restaurantID).Str("blogger", in.Blogger).Msg("failed to delete rating")
		return domain.Internal("Could not delete rating", err)
	}

	s.log.Info().Str("restaurant_id", restaurantID).Str("blogger", in.Blogger).Msg("rating deleted")
	return nil
}
