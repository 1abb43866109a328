package storage

import (
	"context"

	"socialhub/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoBackend keeps one document per key, the key being the document id.
type MongoBackend struct {
	collection common.CollectionHelper
}

func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	return mongo.Connect(ctx, options.Client().ApplyURI(uri))
}

func NewMongoBackend(db *mongo.Database, collection string) *MongoBackend {
	return &MongoBackend{collection: &common.MongoCollection{Collection: db.Collection(collection)}}
}

func (b *MongoBackend) Get(ctx context.Context, key string) ([]byte, error) {
	doc := &kvDocument{}
	err := b.collection.FindOne(ctx, bson.M{"_id": key}).Decode(doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return []byte(doc.Value), nil
}

func (b *MongoBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.collection.UpdateOne(ctx, bson.M{"_id": key},
		bson.D{
			{Key: "$set", Value: bson.D{{Key: "value", Value: string(value)}}},
		},
		options.Update().SetUpsert(true))
	return err
}

func (b *MongoBackend) Delete(ctx context.Context, key string) error {
	_, err := b.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
