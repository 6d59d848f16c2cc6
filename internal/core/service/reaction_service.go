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

type ReactionService struct {
	repo     ports.ReactionRepository
	locker   ports.KeyLocker
	refs     *validation.References
	validate *validation.Validator
	log      zerolog.Logger
	now      func() time.Time
}

func NewReactionService(
	repo ports.ReactionRepository,
	locker ports.KeyLocker,
	refs *validation.References,
	validate *validation.Validator,
	log zerolog.Logger,
) *ReactionService {
	return &ReactionService{
		repo:     repo,
		locker:   locker,
		refs:     refs,
		validate: validate,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ReactionService) List(ctx context.Context, blogID string) ([]*domain.Reaction, error) {
	if _, err := s.refs.Blog(ctx, blogID); err != nil {
		return nil, err
	}

	reactions, err := s.repo.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	if len(reactions) == 0 {
		return nil, domain.NotFound("There are no reactions yet")
	}
	return reactions, nil
}

func (s *ReactionService) Get(ctx context.Context, blogID, id string) (*domain.Reaction, error) {
	if err := validation.IDs(blogID, id); err != nil {
		return nil, err
	}
	if _, err := s.refs.Blog(ctx, blogID); err != nil {
		return nil, err
	}

	reaction, err := s.repo.FindByID(ctx, blogID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("ID \"%s\" is not associated to any reaction", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get reaction %s: %w", id, err)
	}
	return reaction, nil
}

// Upsert records the account's reaction to a blog. A second submission for the
// same (blog, username) overwrites type and timestamp of the stored one.
func (s *ReactionService) Upsert(ctx context.Context, blogID string, in ports.ReactionInput) (*domain.Reaction, bool, error) {
	if err := validation.ID(blogID); err != nil {
		return nil, false, err
	}
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	if err := s.validate.Struct(in); err != nil {
		return nil, false, err
	}
	if _, err := s.refs.Account(ctx, "username", in.Username); err != nil {
		return nil, false, err
	}
	if _, err := s.refs.Blog(ctx, blogID); err != nil {
		return nil, false, err
	}

	release := lockKey(ctx, s.locker, "reaction:"+blogID+":"+in.Username, s.log)
	defer release()

	reaction, created, err := s.repo.Upsert(ctx, &domain.Reaction{
		Type:      domain.ReactionType(in.Type),
		Blog:      blogID,
		Username:  in.Username,
		Timestamp: s.now(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("blog_id", blogID).Str("username", in.Username).Msg("failed to upsert reaction")
		return nil, false, domain.Internal("Could not save reaction", err)
	}

	s.log.Info().
		Str("blog_id", blogID).
		Str("username", in.Username).
		Str("type", in.Type).
		Bool("created", created).
		Msg("reaction saved")
	return reaction, created, nil
}
