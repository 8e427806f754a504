package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stores each kind in its own collection, keyed by _id = record id
type MongoBackend struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoBackend(client *mongo.Client, database string) *MongoBackend {
	return &MongoBackend{client: client, db: client.Database(database)}
}

func NewMongoBackendFromURL(ctx context.Context, mongoURL, database string) (*MongoBackend, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return NewMongoBackend(client, database), nil
}

func (m *MongoBackend) Insert(ctx context.Context, kind string, doc Document) error {
	stored := doc.clone()
	stored["_id"] = doc.ID()

	_, err := m.db.Collection(kind).InsertOne(ctx, bson.M(stored))
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}

	return err
}

func (m *MongoBackend) Find(ctx context.Context, kind string, q Query) ([]Document, error) {
	filter := bson.M{}
	for field, value := range q.Criteria {
		filter[field] = value
	}

	direction := 1
	if q.Order.Desc {
		direction = -1
	}

	opts := options.Find().SetSort(bson.D{
		{Key: q.Order.Field, Value: direction},
		{Key: "_id", Value: 1},
	})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := m.db.Collection(kind).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []Document
	for cur.Next(ctx) {
		doc, err := fromBSON(cur.Current)
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

func (m *MongoBackend) Get(ctx context.Context, kind, id string) (Document, error) {
	raw, err := m.db.Collection(kind).FindOne(ctx, bson.M{"_id": id}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return fromBSON(raw)
}

func (m *MongoBackend) Replace(ctx context.Context, kind, id string, doc Document) error {
	stored := doc.clone()
	stored["_id"] = id

	result, err := m.db.Collection(kind).ReplaceOne(ctx, bson.M{"_id": id}, bson.M(stored))
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *MongoBackend) Increment(ctx context.Context, kind, id, field string, delta int, updated string) (Document, error) {
	update := bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{FieldUpdatedDate: updated},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	raw, err := m.db.Collection(kind).FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return fromBSON(raw)
}

func (m *MongoBackend) Delete(ctx context.Context, kind, id string) error {
	result, err := m.db.Collection(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *MongoBackend) Clear(ctx context.Context, kind string) error {
	_, err := m.db.Collection(kind).DeleteMany(ctx, bson.M{})
	return err
}

func (m *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return m.client.Disconnect(ctx)
}

// relaxed extended JSON keeps numbers, strings and arrays in plain JSON form
func fromBSON(raw bson.Raw) (Document, error) {
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to convert stored record: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("stored record is not a JSON object: %w", err)
	}

	delete(doc, "_id")
	return doc, nil
}
