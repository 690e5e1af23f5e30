package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func uniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

// ensureIndexes provisions the given indexes. If an index with the same key
// pattern already exists with incompatible options, the existing indexes are
// dropped and recreated so a stale schema never blocks startup.
func ensureIndexes(ctx context.Context, col *mongo.Collection, indexes ...mongo.IndexModel) error {
	_, err := col.Indexes().CreateMany(ctx, indexes)
	if err == nil {
		return nil
	}
	// stale/incompatible index definitions: rebuild from scratch
	if _, dropErr := col.Indexes().DropAll(ctx); dropErr != nil {
		return err
	}
	_, err = col.Indexes().CreateMany(ctx, indexes)
	return err
}
