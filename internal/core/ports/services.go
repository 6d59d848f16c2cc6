package ports

import (
	"context"

	"github.com/cafecritique/review-api/internal/core/domain"
)

// AuthService registers accounts and issues session tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (string, *domain.Principal, error)
	IsUsernameAvailable(ctx context.Context, in UsernameInput) (bool, error)
}

// UserService exposes read-only account lookups.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// RestaurantService manages restaurants.
type RestaurantService interface {
	List(ctx context.Context) ([]*domain.Restaurant, error)
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	GetByName(ctx context.Context, name string) ([]*domain.Restaurant, error)
	GetByOwner(ctx context.Context, username string) ([]*domain.Restaurant, error)
	Create(ctx context.Context, in RestaurantInput, cover *ImageUpload) (*domain.Restaurant, error)
	Update(ctx context.Context, id string, in RestaurantInput) (*domain.Restaurant, error)
}

// BlogService manages blogs.
type BlogService interface {
	List(ctx context.Context) ([]*domain.Blog, error)
	GetByID(ctx context.Context, id string) (*domain.Blog, error)
	GetByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Blog, error)
	Create(ctx context.Context, in BlogInput, cover *ImageUpload) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

// CommentService manages comments under a blog.
type CommentService interface {
	List(ctx context.Context, blogID string) ([]*domain.Comment, error)
	Get(ctx context.Context, blogID, id string) (*domain.Comment, error)
	Create(ctx context.Context, blogID string, in CommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, blogID, id string) error
}

// ReactionService manages reactions under a blog.
type ReactionService interface {
	List(ctx context.Context, blogID string) ([]*domain.Reaction, error)
	Get(ctx context.Context, blogID, id string) (*domain.Reaction, error)
	// Upsert reports created=true when no reaction existed for (blog, username).
	Upsert(ctx context.Context, blogID string, in ReactionInput) (*domain.Reaction, bool, error)
}

// RatingService manages ratings of a restaurant.
type RatingService interface {
	List(ctx context.Context, restaurantID string) ([]*domain.Rating, error)
	Upsert(ctx context.Context, restaurantID string, in RatingInput) (*domain.Rating, bool, error)
	Delete(ctx context.Context, restaurantID string, in RatingKeyInput) error
}

// PurgeService removes the dependents of a deleted blog.
type PurgeService interface {
	PurgeBlog(ctx context.Context, blogID string) error
}
