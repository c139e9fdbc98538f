package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by the repositories and index setup.
const (
	UsersCollection          = "users"
	DocumentsCollection      = "documents"
	QueryLogsCollection      = "query_logs"
	StudentQueriesCollection = "student_queries"
)

func ConnectMongoDB(cfg *Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Test connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	err = createIndexes(ctx, client.Database(cfg.DBName))
	if err != nil {
		return nil, fmt.Errorf("failed to create indexes: %v", err)
	}

	return client, nil
}

func createIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		DocumentsCollection: {
			{Keys: bson.D{{Key: "division", Value: 1}, {Key: "uploaded_at", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{
				// Upload dedupe: identical content hashes to the same key
				Keys:    bson.D{{Key: "content_hash", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		QueryLogsCollection: {
			{Keys: bson.D{{Key: "division", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "division", Value: 1}, {Key: "answered", Value: 1}}},
		},
		StudentQueriesCollection: {
			{Keys: bson.D{{Key: "division", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "student_username", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}
