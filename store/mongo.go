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

// mongoDocument is one saved store, keyed by the store key.
type mongoDocument struct {
	Key       string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoPersister keeps each key as a single document in one collection.
type MongoPersister struct {
	col *mongo.Collection
}

func NewMongoPersister(client *mongo.Client, dbName, collection string) *MongoPersister {
	if collection == "" {
		collection = "store_documents"
	}
	return &MongoPersister{col: client.Database(dbName).Collection(collection)}
}

func (p *MongoPersister) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc mongoDocument
	err := p.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", key, err)
	}
	return []byte(doc.Data), nil
}

func (p *MongoPersister) Save(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := mongoDocument{Key: key, Data: string(data), UpdatedAt: time.Now()}
	_, err := p.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}
