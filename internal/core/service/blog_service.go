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

type BlogService struct {
	repo          ports.BlogRepository
	restaurants   ports.RestaurantRepository
	images        ports.ImageStore
	purger        ports.BlogPurger
	refs          *validation.References
	validate      *validation.Validator
	maxImageBytes int64
	log           zerolog.Logger
	now           func() time.Time
}

func NewBlogService(
	repo ports.BlogRepository,
	restaurants ports.RestaurantRepository,
	images ports.ImageStore,
	purger ports.BlogPurger,
	refs *validation.References,
	validate *validation.Validator,
	maxImageBytes int64,
	log zerolog.Logger,
) *BlogService {
	return &BlogService{
		repo:          repo,
		restaurants:   restaurants,
		images:        images,
		purger:        purger,
		refs:          refs,
		validate:      validate,
		maxImageBytes: maxImageBytes,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// List returns the blogs whose restaurant exists and is active. Restaurant
// state is fetched in a single query for the whole page of blogs.
func (s *BlogService) List(ctx context.Context) ([]*domain.Blog, error) {
	blogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	if len(blogs) == 0 {
		return nil, domain.NotFound("There are no blogs yet")
	}

	ids := make([]string, 0, len(blogs))
	seen := make(map[string]struct{}, len(blogs))
	for _, b := range blogs {
		if _, ok := seen[b.Restaurant]; ok {
			continue
		}
		seen[b.Restaurant] = struct{}{}
		ids = append(ids, b.Restaurant)
	}

	active, err := s.restaurants.ActiveIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list blogs: active restaurants: %w", err)
	}

	visible := make([]*domain.Blog, 0, len(blogs))
	for _, b := range blogs {
		if _, ok := active[b.Restaurant]; ok {
			visible = append(visible, b)
		}
	}
	if len(visible) == 0 {
		return nil, domain.NotFound("There are no blogs yet")
	}
	return visible, nil
}

// GetByID does not check the parent restaurant's active flag, unlike List.
// A blog about a deactivated restaurant stays reachable by its identifier.
func (s *BlogService) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	return s.refs.Blog(ctx, id)
}

func (s *BlogService) GetByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Blog, error) {
	if _, err := s.refs.ActiveRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	blogs, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list blogs by restaurant: %w", err)
	}
	if len(blogs) == 0 {
		return nil, domain.NotFound("There are no blogs yet")
	}
	return blogs, nil
}

// Create validates the post, its restaurant (existing and active) and its
// author (a blogger account) before persisting. The cover image is optional.
func (s *BlogService) Create(ctx context.Context, in ports.BlogInput, cover *ports.ImageUpload) (*domain.Blog, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Restaurant = strings.TrimSpace(in.Restaurant)
	in.Blogger = strings.ToLower(strings.TrimSpace(in.Blogger))

	if in.Restaurant != "" {
		if err := validation.ID(in.Restaurant); err != nil {
			return nil, err
		}
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.refs.RestaurantField(ctx, "restaurant", in.Restaurant); err != nil {
		return nil, err
	}
	if _, err := s.refs.Account(ctx, "blogger", in.Blogger, domain.RoleBlogger); err != nil {
		return nil, err
	}

	var ref string
	if cover != nil {
		if err := validation.Image(cover, s.maxImageBytes); err != nil {
			return nil, err
		}
		stored, err := s.images.Save(ctx, cover)
		if err != nil {
			s.log.Error().Err(err).Str("filename", cover.Filename).Msg("failed to store cover image")
			return nil, domain.Internal("Could not create blog", err)
		}
		ref = stored
	}

	created, err := s.repo.Create(ctx, &domain.Blog{
		Title:      domain.CapitalizeEachWord(in.Title),
		Content:    in.Content,
		Restaurant: in.Restaurant,
		Blogger:    in.Blogger,
		Timestamp:  s.now(),
		CoverImage: ref,
	})
	if err != nil {
		if ref != "" {
			if delErr := s.images.Delete(ctx, ref); delErr != nil {
				s.log.Warn().Err(delErr).Str("image", ref).Msg("failed to remove orphaned cover image")
			}
		}
		s.log.Error().Err(err).Str("blogger", in.Blogger).Msg("failed to create blog")
		return nil, domain.Internal("Could not create blog", err)
	}

	s.log.Info().Str("blog_id", created.ID).Str("blogger", created.Blogger).Msg("blog created")
	return created, nil
}

// Delete hard-deletes a blog and schedules removal of its comments and reactions.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if _, err := s.refs.Blog(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("ID \"%s\" is not associated to any blog", id)
		}
		s.log.Error().Err(err).Str("blog_id", id).Msg("failed to delete blog")
		return domain.Internal("Could not delete blog", err)
	}

	if s.purger != nil {
		s.purger.Enqueue(id)
	}
	s.log.Info().Str("blog_id", id).Msg("blog deleted")
	return nil
}
