package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpecs lists every index the repositories rely on. The unique compound
// indexes on reactions and ratings back the one-per-key upsert guarantee.
var indexSpecs = map[string][]mongo.IndexModel{
	collectionUsers: {
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
	},
	collectionRestaurants: {
		{Keys: bson.D{{Key: "restaurateur", Value: 1}, {Key: "isActive", Value: 1}}, Options: options.Index().SetName("idx_restaurateur_active")},
	},
	collectionBlogs: {
		{Keys: bson.D{{Key: "restaurant", Value: 1}, {Key: "timestamp", Value: -1}}, Options: options.Index().SetName("idx_restaurant_timestamp")},
	},
	collectionComments: {
		{Keys: bson.D{{Key: "blog", Value: 1}, {Key: "timestamp", Value: 1}}, Options: options.Index().SetName("idx_blog_timestamp")},
	},
	collectionReactions: {
		{Keys: bson.D{{Key: "blog", Value: 1}, {Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_blog_username")},
	},
	collectionRatings: {
		{Keys: bson.D{{Key: "restaurant", Value: 1}, {Key: "blogger", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_restaurant_blogger")},
	},
}

// EnsureIndexes creates the indexes for every collection. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, name := range IndexedCollections() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexSpecs[name]); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}

// IndexedCollections returns the collection names in creation order.
func IndexedCollections() []string {
	return []string{
		collectionUsers,
		collectionRestaurants,
		collectionBlogs,
		collectionComments,
		collectionReactions,
		collectionRatings,
	}
}
