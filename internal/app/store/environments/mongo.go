// internal/app/store/environments/mongo.go
package environmentsstore

import (
	"context"
	"errors"

	"github.com/dalemusser/frontenv/internal/domain/environment"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo provides access to the environments collection.
// One document per name; the unique index is created by system/indexes.
type Mongo struct {
	c *mongo.Collection
}

// NewMongo creates a store over db's environments collection.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection(CollectionName)}
}

// Publish upserts env under name.
func (s *Mongo) Publish(ctx context.Context, name string, env environment.Environment) (Record, error) {
	rec, err := NewRecord(name, env)
	if err != nil {
		return Record{}, err
	}

	filter := bson.M{"name": rec.Name}
	update := bson.M{
		"$set": bson.M{
			"name":         rec.Name,
			"environment":  rec.Environment,
			"revision":     rec.Revision,
			"published_at": rec.PublishedAt,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved Record
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return Record{}, err
	}
	return saved, nil
}

// Get returns the descriptor published under name.
func (s *Mongo) Get(ctx context.Context, name string) (Record, error) {
	var rec Record
	err := s.c.FindOne(ctx, bson.M{"name": NormalizeName(name)}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns every record sorted by name.
func (s *Mongo) List(ctx context.Context) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Record{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
