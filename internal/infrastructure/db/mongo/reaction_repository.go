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

const collectionReactions = "reactions"

type ReactionRepository struct {
	coll *mongo.Collection
}

func NewReactionRepository(db *mongo.Database) *ReactionRepository {
	return &ReactionRepository{coll: db.Collection(collectionReactions)}
}

type mongoReaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      string             `bson:"type"`
	Blog      primitive.ObjectID `bson:"blog"`
	Username  string             `bson:"username"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (mr *mongoReaction) toDomain() *domain.Reaction {
	return &domain.Reaction{
		ID:        mr.ID.Hex(),
		Type:      domain.ReactionType(mr.Type),
		Blog:      mr.Blog.Hex(),
		Username:  mr.Username,
		Timestamp: mr.Timestamp.UTC(),
	}
}

// Upsert keeps a single reaction per (blog, username).
func (r *ReactionRepository) Upsert(ctx context.Context, re *domain.Reaction) (*domain.Reaction, bool, error) {
	blog, err := objectID(re.Blog)
	if err != nil {
		return nil, false, err
	}

	key := bson.M{"blog": blog, "username": re.Username}
	fields := bson.M{"type": string(re.Type), "timestamp": re.Timestamp}

	var doc mongoReaction
	created, err := upsertByKey(ctx, r.coll, key, fields, &doc)
	if err != nil {
		return nil, false, err
	}
	return doc.toDomain(), created, nil
}

func (r *ReactionRepository) FindByID(ctx context.Context, blogID, id string) (*domain.Reaction, error) {
	filter, err := scopedFilter(blogID, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoReaction
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		return nil, translate(err, "find reaction")
	}
	return mr.toDomain(), nil
}

func (r *ReactionRepository) ListByBlog(ctx context.Context, blogID string) ([]*domain.Reaction, error) {
	blog, err := objectID(blogID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"blog": blog}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, translate(err, "find reactions")
	}
	reactions, err := decodeAll(ctx, cur, (*mongoReaction).toDomain)
	return reactions, translate(err, "decode reactions")
}

func (r *ReactionRepository) DeleteByBlog(ctx context.Context, blogID string) (int64, error) {
	return deleteByBlog(ctx, r.coll, blogID)
}
