package ports

import (
	"context"

	"github.com/cafecritique/review-api/internal/core/domain"
)

// Repositories return domain.ErrNotFound for missing documents and
// domain.ErrDuplicate for unique-index violations. Identifiers are the
// store's hex form and must be validated before they reach a repository.

// UserRepository persists accounts. Username and email are unique.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// RestaurantRepository persists restaurants.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
	// Replace overwrites every mutable field except the cover image.
	Replace(ctx context.Context, r *domain.Restaurant) error
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	FindActiveByID(ctx context.Context, id string) (*domain.Restaurant, error)
	ListActive(ctx context.Context) ([]*domain.Restaurant, error)
	ListActiveByName(ctx context.Context, name string) ([]*domain.Restaurant, error)
	ListActiveByOwner(ctx context.Context, username string) ([]*domain.Restaurant, error)
	// ActiveIDs returns the subset of ids that reference active restaurants, in one query.
	ActiveIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
}

// BlogRepository persists blogs.
type BlogRepository interface {
	Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context) ([]*domain.Blog, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository persists comments, always scoped by their parent blog.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, blogID, id string) (*domain.Comment, error)
	ListByBlog(ctx context.Context, blogID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, blogID, id string) error
	DeleteByBlog(ctx context.Context, blogID string) (int64, error)
}

// ReactionRepository persists reactions. (blog, username) is unique.
type ReactionRepository interface {
	// Upsert inserts or overwrites type/timestamp for the (blog, username) key
	// and reports whether a new document was created.
	Upsert(ctx context.Context, r *domain.Reaction) (*domain.Reaction, bool, error)
	FindByID(ctx context.Context, blogID, id string) (*domain.Reaction, error)
	ListByBlog(ctx context.Context, blogID string) ([]*domain.Reaction, error)
	DeleteByBlog(ctx context.Context, blogID string) (int64, error)
}

// RatingRepository persists ratings. (restaurant, blogger) is unique.
type RatingRepository interface {
	Upsert(ctx context.Context, r *domain.Rating) (*domain.Rating, bool, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Rating, error)
	DeleteByKey(ctx context.Context, restaurantID, blogger string) error
}

// ImageStore persists uploaded cover images and returns a reference to them.
type ImageStore interface {
	Save(ctx context.Context, img *ImageUpload) (string, error)
	Delete(ctx context.Context, ref string) error
}

// KeyLocker serialises read-modify-write sequences on a logical key across
// processes. Release must be called once the write has completed.
type KeyLocker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// BlogPurger schedules removal of a deleted blog's comments and reactions.
type BlogPurger interface {
	Enqueue(blogID string)
}
