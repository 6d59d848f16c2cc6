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

const collectionComments = "comments"

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(collectionComments)}
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Content   string             `bson:"content"`
	Blog      primitive.ObjectID `bson:"blog"`
	Username  string             `bson:"username"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (mc *mongoComment) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        mc.ID.Hex(),
		Content:   mc.Content,
		Blog:      mc.Blog.Hex(),
		Username:  mc.Username,
		Timestamp: mc.Timestamp.UTC(),
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	blog, err := objectID(c.Blog)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoComment{
		ID:        primitive.NewObjectID(),
		Content:   c.Content,
		Blog:      blog,
		Username:  c.Username,
		Timestamp: c.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate(err, "insert comment")
	}
	return doc.toDomain(), nil
}

// FindByID only matches a comment that belongs to blogID.
func (r *CommentRepository) FindByID(ctx context.Context, blogID, id string) (*domain.Comment, error) {
	filter, err := scopedFilter(blogID, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoComment
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		return nil, translate(err, "find comment")
	}
	return mc.toDomain(), nil
}

func (r *CommentRepository) ListByBlog(ctx context.Context, blogID string) ([]*domain.Comment, error) {
	blog, err := objectID(blogID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"blog": blog}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, translate(err, "find comments")
	}
	comments, err := decodeAll(ctx, cur, (*mongoComment).toDomain)
	return comments, translate(err, "decode comments")
}

func (r *CommentRepository) Delete(ctx context.Context, blogID, id string) error {
	filter, err := scopedFilter(blogID, id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return translate(err, "delete comment")
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByBlog(ctx context.Context, blogID string) (int64, error) {
	return deleteByBlog(ctx, r.coll, blogID)
}

// scopedFilter matches a child document by its own id and its parent blog.
func scopedFilter(blogID, id string) (bson.M, error) {
	blog, err := objectID(blogID)
	if err != nil {
		return nil, err
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "blog": blog}, nil
}

func deleteByBlog(ctx context.Context, coll *mongo.Collection, blogID string) (int64, error) {
	blog, err := objectID(blogID)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.DeleteMany(ctx, bson.M{"blog": blog})
	if err != nil {
		return 0, translate(err, "delete "+coll.Name())
	}
	return res.DeletedCount, nil
}
