package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
	"github.com/cafecritique/review-api/internal/core/validation"
)

type RestaurantService struct {
	repo          ports.RestaurantRepository
	images        ports.ImageStore
	refs          *validation.References
	validate      *validation.Validator
	maxImageBytes int64
	log           zerolog.Logger
}

func NewRestaurantService(
	repo ports.RestaurantRepository,
	images ports.ImageStore,
	refs *validation.References,
	validate *validation.Validator,
	maxImageBytes int64,
	log zerolog.Logger,
) *RestaurantService {
	return &RestaurantService{
		repo:          repo,
		images:        images,
		refs:          refs,
		validate:      validate,
		maxImageBytes: maxImageBytes,
		log:           log,
	}
}

// List returns every active restaurant. An empty result is a not-found outcome.
func (s *RestaurantService) List(ctx context.Context) ([]*domain.Restaurant, error) {
	restaurants, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	if len(restaurants) == 0 {
		return nil, domain.NotFound("There are no restaurants yet")
	}
	return restaurants, nil
}

func (s *RestaurantService) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.refs.ActiveRestaurant(ctx, id)
}

func (s *RestaurantService) GetByName(ctx context.Context, name string) ([]*domain.Restaurant, error) {
	restaurants, err := s.repo.ListActiveByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list restaurants by name: %w", err)
	}
	if len(restaurants) == 0 {
		return nil, domain.NotFound("\"%s\" is not associated to any restaurant", name)
	}
	return restaurants, nil
}

// GetByOwner lists the active restaurants of a restaurateur. An owner that is
// not a restaurateur account is a 400-class failure, not a 404.
func (s *RestaurantService) GetByOwner(ctx context.Context, username string) ([]*domain.Restaurant, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if _, err := s.refs.Account(ctx, "restaurateur", username, domain.RoleRestaurateur); err != nil {
		return nil, err
	}

	restaurants, err := s.repo.ListActiveByOwner(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list restaurants by owner: %w", err)
	}
	if len(restaurants) == 0 {
		return nil, domain.NotFound("Restaurateur \"@%s\" is not associated to any restaurant", username)
	}
	return restaurants, nil
}

// Create validates the fields, the owner and the cover image, stores the image
// and then the restaurant. The image is removed again if the insert fails.
func (s *RestaurantService) Create(ctx context.Context, in ports.RestaurantInput, cover *ports.ImageUpload) (*domain.Restaurant, error) {
	if in.IsActive == nil {
		// New restaurants are always active; the field is only meaningful on update.
		active := true
		in.IsActive = &active
	}
	in = normalizeRestaurant(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.refs.Account(ctx, "restaurateur", in.Restaurateur, domain.RoleRestaurateur); err != nil {
		return nil, err
	}
	if err := validation.Image(cover, s.maxImageBytes); err != nil {
		return nil, err
	}

	ref, err := s.images.Save(ctx, cover)
	if err != nil {
		s.log.Error().Err(err).Str("filename", cover.Filename).Msg("failed to store cover image")
		return nil, domain.Internal("Could not create restaurant", err)
	}

	created, err := s.repo.Create(ctx, &domain.Restaurant{
		Name:         in.Name,
		Description:  in.Description,
		Location:     in.Location,
		Restaurateur: in.Restaurateur,
		CoverImage:   ref,
		IsActive:     true,
	})
	if err != nil {
		if delErr := s.images.Delete(ctx, ref); delErr != nil {
			s.log.Warn().Err(delErr).Str("image", ref).Msg("failed to remove orphaned cover image")
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &domain.ConflictError{Msg: "Restaurant already exists"}
		}
		s.log.Error().Err(err).Str("name", in.Name).Msg("failed to create restaurant")
		return nil, domain.Internal("Could not create restaurant", err)
	}

	s.log.Info().Str("restaurant_id", created.ID).Str("restaurateur", created.Restaurateur).Msg("restaurant created")
	return created, nil
}

// Update replaces every mutable field, including the active flag. The cover
// image is kept as is. Inactive restaurants can be updated so they can be
// reactivated.
func (s *RestaurantService) Update(ctx context.Context, id string, in ports.RestaurantInput) (*domain.Restaurant, error) {
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	in = normalizeRestaurant(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.refs.Account(ctx, "restaurateur", in.Restaurateur, domain.RoleRestaurateur); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("ID \"%s\" is not associated to any restaurant", id)
	}
	if err != nil {
		return nil, fmt.Errorf("update restaurant %s: %w", id, err)
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.Location = in.Location
	existing.Restaurateur = in.Restaurateur
	existing.IsActive = *in.IsActive

	if err := s.repo.Replace(ctx, existing); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("ID \"%s\" is not associated to any restaurant", id)
		}
		s.log.Error().Err(err).Str("restaurant_id", id).Msg("failed to update restaurant")
		return nil, domain.Internal("Could not update restaurant", err)
	}

	s.log.Info().Str("restaurant_id", id).Bool("active", existing.IsActive).Msg("restaurant updated")
	return existing, nil
}

func normalizeRestaurant(in ports.RestaurantInput) ports.RestaurantInput {
	in.Name = domain.CapitalizeEachWord(strings.TrimSpace(in.Name))
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Restaurateur = strings.ToLower(strings.TrimSpace(in.Restaurateur))
	return in
}
