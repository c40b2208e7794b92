package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/refgraph/pkg/snapshot"
)

// MongoStore keeps snapshots in a MongoDB collection. It is the backend
// for server deployments where several instances share one store.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore connects to the MongoDB deployment at uri and stores
// snapshots in the "snapshots" collection of db. The connection is
// verified lazily; call Ping to check the server is reachable.
func NewMongoStore(ctx context.Context, uri, db string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection("snapshots"),
	}, nil
}

// Ping checks that the deployment is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return nil
}

// Save implements Store.
func (s *MongoStore) Save(ctx context.Context, name string, g snapshot.Graph) (*Record, error) {
	rec, err := newRecord(uuid.NewString(), name, g)
	if err != nil {
		return nil, err
	}
	if _, err := s.coll.InsertOne(ctx, Entry{Record: *rec, Graph: g}); err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}
	return rec, nil
}

// Load implements Store.
func (s *MongoStore) Load(ctx context.Context, id string) (*Entry, error) {
	var entry Entry
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot: %w", err)
	}
	return &entry, nil
}

// List implements Store. The graph payload is excluded by projection so
// listing stays cheap for large snapshots.
func (s *MongoStore) List(ctx context.Context) ([]Record, error) {
	opts := options.Find().
		SetProjection(bson.M{"graph": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var records []Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot records: %w", err)
	}
	return records, nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from the deployment.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}
