package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cafecritique/review-api/internal/core/domain"
)

const collectionRatings = "ratings"

type RatingRepository struct {
	coll *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{coll: db.Collection(collectionRatings)}
}

type mongoRating struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Stars      int                `bson:"stars"`
	Restaurant primitive.ObjectID `bson:"restaurant"`
	Blogger    string             `bson:"blogger"`
	Timestamp  time.Time          `bson:"timestamp"`
}

func (mr *mongoRating) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:         mr.ID.Hex(),
		Stars:      mr.Stars,
		Restaurant: mr.Restaurant.Hex(),
		Blogger:    mr.Blogger,
		Timestamp:  mr.Timestamp.UTC(),
	}
}

// Upsert keeps a single rating per (restaurant, blogger).
func (r *RatingRepository) Upsert(ctx context.Context, ra *domain.Rating) (*domain.Rating, bool, error) {
	restaurant, err := objectID(ra.Restaurant)
	if err != nil {
		return nil, false, err
	}

	key := bson.M{"restaurant": restaurant, "blogger": ra.Blogger}
	fields := bson.M{"stars": ra.Stars, "timestamp": ra.Timestamp}

	var doc mongoRating
	created, err := upsertByKey(ctx, r.coll, key, fields, &doc)
	if err != nil {
		return nil, false, err
	}
	return doc.toDomain(), created, nil
}

func (r *RatingRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Rating, error) {
	restaurant, err := objectID(restaurantID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"restaurant": restaurant}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, translate(err, "find ratings")
	}
	ratings, err := decodeAll(ctx, cur, (*mongoRating).toDomain)
	return ratings, translate(err, "decode ratings")
}

func (r *RatingRepository) DeleteByKey(ctx context.Context, restaurantID, blogger string) error {
	restaurant, err := objectID(restaurantID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"restaurant": restaurant, "blogger": blogger})
	if err != nil {
		return translate(err, "delete rating")
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
