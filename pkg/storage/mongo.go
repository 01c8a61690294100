package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "lodviz"
	DefaultMongoCollection = "charts"
	mongoConnectTimeout    = 10 * time.Second
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string // default DefaultMongoDatabase
	Collection string // default DefaultMongoCollection
}

// MongoStore keeps charts in a MongoDB collection. Results are stored as
// raw JSON bytes so the document shape does not follow the result type.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoChart is the document layout of a Chart.
type mongoChart struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title,omitempty"`
	Mark      string    `bson:"mark"`
	CacheKey  string    `bson:"cache_key,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	Result    []byte    `bson:"result,omitempty"`
}

func toMongo(c *Chart) mongoChart {
	return mongoChart{
		ID:        c.ID,
		Title:     c.Title,
		Mark:      c.Mark,
		CacheKey:  c.CacheKey,
		CreatedAt: c.CreatedAt,
		Result:    c.Result,
	}
}

func (d mongoChart) chart() *Chart {
	return &Chart{
		ID:        d.ID,
		Title:     d.Title,
		Mark:      d.Mark,
		CacheKey:  d.CacheKey,
		CreatedAt: d.CreatedAt.UTC(),
		Result:    d.Result,
	}
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures
// the created_at index used by List.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo: uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	index := mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}}
	if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Chart, error) {
	var doc mongoChart
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find chart: %w", err)
	}
	return doc.chart(), nil
}

func (s *MongoStore) Put(ctx context.Context, c *Chart) error {
	if err := validate(c); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, toMongo(c), opts); err != nil {
		return fmt.Errorf("mongo put chart: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Chart, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(listLimit(limit))).
		SetProjection(bson.M{"result": 0})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list charts: %w", err)
	}
	var docs []mongoChart
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode charts: %w", err)
	}
	out := make([]*Chart, len(docs))
	for i, d := range docs {
		out[i] = d.chart()
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo delete chart: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
