package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// upsertByKey sets fields on the document matching key, inserting it when
// absent, and decodes the stored document into out. Two concurrent upserts
// on a missing key can both attempt the insert; the loser hits the unique
// index and is retried once, which then matches the winner's document.
func upsertByKey(ctx context.Context, coll *mongo.Collection, key bson.M, fields bson.M, out any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": fields}
	opts := options.Update().SetUpsert(true)

	res, err := coll.UpdateOne(ctx, key, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		res, err = coll.UpdateOne(ctx, key, update, opts)
	}
	if err != nil {
		return false, translate(err, "upsert "+coll.Name())
	}

	if err := coll.FindOne(ctx, key).Decode(out); err != nil {
		return false, translate(err, "reload "+coll.Name())
	}
	return res.UpsertedCount > 0, nil
}
