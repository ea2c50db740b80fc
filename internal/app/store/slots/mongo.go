package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/tujitume/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "tujitume"
	slotsCollection      = "slots"
)

type slotDoc struct {
	Key       string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo stores one document per slot in the `slots` collection.
//
// Apply runs as an ordered bulk write. Without a replica set MongoDB cannot
// make the batch atomic; an ordered write stops at the first failure, so a
// partial batch only ever applies a prefix of its operations.
type Mongo struct {
	client *mongo.Client
	c      *mongo.Collection
}

// OpenMongo connects to uri and uses the named database.
func OpenMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	if uri == "" {
		uri = defaultMongoURI
	}
	if database == "" {
		database = defaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMongo(client, client.Database(database)), nil
}

// NewMongo wraps an existing connection. The client is disconnected on Close.
func NewMongo(client *mongo.Client, db *mongo.Database) *Mongo {
	return &Mongo{client: client, c: db.Collection(slotsCollection)}
}

func (s *Mongo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc slotDoc
	err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, mapMongoErr(err)
	}
	if doc.Payload == nil {
		doc.Payload = []byte{}
	}
	return doc.Payload, true, nil
}

func (s *Mongo) Put(ctx context.Context, key string, value []byte) error {
	return s.Apply(ctx, NewBatch().Put(key, value))
}

func (s *Mongo) Delete(ctx context.Context, key string) error {
	return s.Apply(ctx, NewBatch().Delete(key))
}

func (s *Mongo) Apply(ctx context.Context, b *Batch) error {
	if err := b.validate(); err != nil {
		return err
	}
	if b.Len() == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, b.Len())
	for _, op := range b.Ops() {
		if op.Delete {
			models = append(models, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": op.Key}))
			continue
		}
		v := op.Value
		if v == nil {
			v = []byte{}
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": op.Key}).
			SetReplacement(slotDoc{Key: op.Key, Payload: v, UpdatedAt: now}).
			SetUpsert(true))
	}
	if _, err := s.c.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("bulk write slots: %w", mapMongoErr(err))
	}
	return nil
}

func (s *Mongo) Ping(ctx context.Context) error {
	return mapMongoErr(s.client.Ping(ctx, readpref.Primary()))
}

func (s *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Ping())
	defer cancel()
	return s.client.Disconnect(ctx)
}

func mapMongoErr(err error) error {
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return ErrClosed
	}
	return err
}

var _ Store = (*Mongo)(nil)
