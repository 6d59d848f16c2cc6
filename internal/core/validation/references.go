package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
)

// References resolves cross-entity references against current store state.
// The store enforces no foreign keys, so these checks are the only integrity
// guarantee. Body-field references fail with a 400-class ValidationError,
// path references with a 404-class NotFoundError.
type References struct {
	users       ports.UserRepository
	restaurants ports.RestaurantRepository
	blogs       ports.BlogRepository
}

func NewReferences(users ports.UserRepository, restaurants ports.RestaurantRepository, blogs ports.BlogRepository) *References {
	return &References{users: users, restaurants: restaurants, blogs: blogs}
}

// Account checks that username belongs to an account holding one of roles.
// With no roles any recognised account type is accepted.
func (r *References) Account(ctx context.Context, param, username string, roles ...domain.Role) (*domain.User, error) {
	user, err := r.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup account %q: %w", username, err)
	}

	label := "user"
	if len(roles) == 1 {
		label = string(roles[0])
	}
	if user == nil || !hasRole(user.Role, roles) {
		return nil, domain.Invalid(param,
			fmt.Sprintf("Username \"@%s\" is not associated to any %s account", username, label), username)
	}
	return user, nil
}

// RestaurantField resolves a restaurant referenced from a request body. It
// must exist and be active.
func (r *References) RestaurantField(ctx context.Context, param, id string) (*domain.Restaurant, error) {
	if err := ID(id); err != nil {
		return nil, err
	}
	rest, err := r.restaurants.FindActiveByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Invalid(param,
			fmt.Sprintf("ID \"@%s\" is not associated to any restaurant", id), id)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup restaurant %s: %w", id, err)
	}
	return rest, nil
}

// ActiveRestaurant resolves a restaurant addressed by a path parameter.
func (r *References) ActiveRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	if err := ID(id); err != nil {
		return nil, err
	}
	rest, err := r.restaurants.FindActiveByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("ID \"%s\" is not associated to any restaurant", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup restaurant %s: %w", id, err)
	}
	return rest, nil
}

// Blog resolves a blog addressed by a path parameter.
func (r *References) Blog(ctx context.Context, id string) (*domain.Blog, error) {
	if err := ID(id); err != nil {
		return nil, err
	}
	blog, err := r.blogs.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("ID \"%s\" is not associated to any blog", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup blog %s: %w", id, err)
	}
	return blog, nil
}

func hasRole(role domain.Role, allowed []domain.Role) bool {
	if len(allowed) == 0 {
		return role.Valid()
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
