package mongo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cafecritique/review-api/internal/core/domain"
)

const collectionRestaurants = "restaurants"

type RestaurantRepository struct {
	coll *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{coll: db.Collection(collectionRestaurants)}
}

type mongoRestaurant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	Location     string             `bson:"location"`
	Restaurateur string             `bson:"restaurateur"`
	CoverImage   string             `bson:"coverImage"`
	IsActive     bool               `bson:"isActive"`
}

func (mr *mongoRestaurant) toDomain() *domain.Restaurant {
	return &domain.Restaurant{
		ID:           mr.ID.Hex(),
		Name:         mr.Name,
		Description:  mr.Description,
		Location:     mr.Location,
		Restaurateur: mr.Restaurateur,
		CoverImage:   mr.CoverImage,
		IsActive:     mr.IsActive,
	}
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRestaurant{
		ID:           primitive.NewObjectID(),
		Name:         rest.Name,
		Description:  rest.Description,
		Location:     rest.Location,
		Restaurateur: rest.Restaurateur,
		CoverImage:   rest.CoverImage,
		IsActive:     rest.IsActive,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate(err, "insert restaurant")
	}
	return doc.toDomain(), nil
}

// Replace overwrites the mutable fields. coverImage is left untouched.
func (r *RestaurantRepository) Replace(ctx context.Context, rest *domain.Restaurant) error {
	oid, err := objectID(rest.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":         rest.Name,
		"description":  rest.Description,
		"location":     rest.Location,
		"restaurateur": rest.Restaurateur,
		"isActive":     rest.IsActive,
	}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return translate(err, "update restaurant")
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *RestaurantRepository) FindActiveByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid, "isActive": true})
}

func (r *RestaurantRepository) ListActive(ctx context.Context) ([]*domain.Restaurant, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

// ListActiveByName matches the whole name, ignoring case.
func (r *RestaurantRepository) ListActiveByName(ctx context.Context, name string) ([]*domain.Restaurant, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}
	return r.find(ctx, bson.M{"isActive": true, "name": pattern})
}

func (r *RestaurantRepository) ListActiveByOwner(ctx context.Context, username string) ([]*domain.Restaurant, error) {
	return r.find(ctx, bson.M{"isActive": true, "restaurateur": username})
}

func (r *RestaurantRepository) ActiveIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	active := make(map[string]struct{}, len(oids))
	if len(oids) == 0 {
		return active, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": bson.M{"$in": oids}, "isActive": true}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, translate(err, "find active restaurants")
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, translate(err, "decode restaurant id")
		}
		active[doc.ID.Hex()] = struct{}{}
	}
	return active, translate(cur.Err(), "iterate restaurants")
}

func (r *RestaurantRepository) findOne(ctx context.Context, filter bson.M) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRestaurant
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		return nil, translate(err, "find restaurant")
	}
	return mr.toDomain(), nil
}

func (r *RestaurantRepository) find(ctx context.Context, filter bson.M) ([]*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err, "find restaurants")
	}
	restaurants, err := decodeAll(ctx, cur, (*mongoRestaurant).toDomain)
	return restaurants, translate(err, "decode restaurants")
}
