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

const collectionBlogs = "blogs"

type BlogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{coll: db.Collection(collectionBlogs)}
}

type mongoBlog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Content    string             `bson:"content"`
	Restaurant primitive.ObjectID `bson:"restaurant"`
	Blogger    string             `bson:"blogger"`
	Timestamp  time.Time          `bson:"timestamp"`
	CoverImage string             `bson:"coverImage,omitempty"`
}

func (mb *mongoBlog) toDomain() *domain.Blog {
	return &domain.Blog{
		ID:         mb.ID.Hex(),
		Title:      mb.Title,
		Content:    mb.Content,
		Restaurant: mb.Restaurant.Hex(),
		Blogger:    mb.Blogger,
		Timestamp:  mb.Timestamp.UTC(),
		CoverImage: mb.CoverImage,
	}
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	restaurant, err := objectID(b.Restaurant)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBlog{
		ID:         primitive.NewObjectID(),
		Title:      b.Title,
		Content:    b.Content,
		Restaurant: restaurant,
		Blogger:    b.Blogger,
		Timestamp:  b.Timestamp,
		CoverImage: b.CoverImage,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate(err, "insert blog")
	}
	return doc.toDomain(), nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBlog
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		return nil, translate(err, "find blog")
	}
	return mb.toDomain(), nil
}

func (r *BlogRepository) List(ctx context.Context) ([]*domain.Blog, error) {
	return r.find(ctx, bson.M{})
}

func (r *BlogRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Blog, error) {
	oid, err := objectID(restaurantID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"restaurant": oid})
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate(err, "delete blog")
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// find returns blogs newest first.
func (r *BlogRepository) find(ctx context.Context, filter bson.M) ([]*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, translate(err, "find blogs")
	}
	blogs, err := decodeAll(ctx, cur, (*mongoBlog).toDomain)
	return blogs, translate(err, "decode blogs")
}
