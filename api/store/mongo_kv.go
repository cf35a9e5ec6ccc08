/* mongo_kv.go
 * Contains the MongoDB backend. Every record is one document in the match_records collection keyed by _id.
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recordsCollection = "match_records"

type MongoKV struct {
	Client     *mongo.Client
	Database   *mongo.Database
	Collection *mongo.Collection
}

// recordDocument is the stored shape of one key
type recordDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoKV connects to mongoURI and uses the match_records collection of dbName
func NewMongoKV(ctx context.Context, dbName string, mongoURI string) (*MongoKV, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	db := client.Database(dbName)
	return &MongoKV{
		Client:     client,
		Database:   db,
		Collection: db.Collection(recordsCollection),
	}, nil
}

func (m *MongoKV) Get(ctx context.Context, key string) ([]byte, error) {
	var doc recordDocument
	err := m.Collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (m *MongoKV) Set(ctx context.Context, key string, value []byte) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"value": string(value), "updatedAt": time.Now().UTC()}}
	_, err := m.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert %s: %w", key, err)
	}
	return nil
}

// SetNX relies on the unique _id index: a second insert fails with a duplicate key error
func (m *MongoKV) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	_, err := m.Collection.InsertOne(ctx, recordDocument{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()})
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mongo insert %s: %w", key, err)
	}
	return true, nil
}

func (m *MongoKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := m.Collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}})
	return err
}

func (m *MongoKV) Close() error {
	return m.Client.Disconnect(context.Background())
}
