package snapshot

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore stores snapshots in a MongoDB collection, one document per
// snapshot keyed by name. Suited to durable multi-project storage.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// mongoEntry is the stored document shape.
type mongoEntry struct {
	Name    string    `bson:"_id"`
	SavedAt time.Time `bson:"saved_at"`
	Data    []byte    `bson:"data"`
}

// NewMongoStore connects to MongoDB at the given URI and uses the
// "snapshots" collection of the named database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("snapshots"),
	}, nil
}

// Get retrieves a snapshot by name.
func (s *MongoStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var entry mongoEntry
	err := s.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Data, true, nil
}

// Set stores a snapshot under the given name, replacing any previous one.
func (s *MongoStore) Set(ctx context.Context, name string, data []byte) error {
	entry := mongoEntry{Name: name, SavedAt: time.Now().UTC(), Data: data}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": name}, entry,
		options.Replace().SetUpsert(true))
	return err
}

// List returns all snapshot names in lexical order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var entry mongoEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		names = append(names, entry.Name)
	}
	return names, cursor.Err()
}

// Delete removes a snapshot. Deleting a missing name is a no-op.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": name})
	return err
}

// Close disconnects the underlying MongoDB client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
