package database

import (
	"context"
	"fmt"

	"college-chatbot/internal/config"
	"college-chatbot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QueryLogRepository struct {
	col *mongo.Collection
}

func NewQueryLogRepository(db *mongo.Database) *QueryLogRepository {
	return &QueryLogRepository{col: db.Collection(config.QueryLogsCollection)}
}

func (r *QueryLogRepository) Create(ctx context.Context, entry *models.QueryLog) error {
	res, err := r.col.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("insert query log: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = id
	}
	return nil
}

func (r *QueryLogRepository) CountByDivision(ctx context.Context, division string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"division": division})
}

// topQueriesPipeline groups identical question text and keeps the most frequent.
func topQueriesPipeline(division string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "division", Value: division}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$query"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
}

func (r *QueryLogRepository) TopQueries(ctx context.Context, division string, limit int) ([]models.QueryCount, error) {
	cursor, err := r.col.Aggregate(ctx, topQueriesPipeline(division, limit))
	if err != nil {
		return nil, fmt.Errorf("aggregate top queries: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make([]models.QueryCount, 0)
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode top queries: %w", err)
	}
	return counts, nil
}

func (r *QueryLogRepository) RecentUnanswered(ctx context.Context, division string, limit int) ([]models.QueryLog, error) {
	return r.find(ctx, bson.M{"division": division, "answered": false}, int64(limit))
}

// ListByDivision returns every entry of the division, newest first.
func (r *QueryLogRepository) ListByDivision(ctx context.Context, division string) ([]models.QueryLog, error) {
	return r.find(ctx, bson.M{"division": division}, 0)
}

func (r *QueryLogRepository) DeleteByDivision(ctx context.Context, division string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"division": division})
	if err != nil {
		return 0, fmt.Errorf("delete query logs: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *QueryLogRepository) find(ctx context.Context, filter bson.M, limit int64) ([]models.QueryLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find query logs: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]models.QueryLog, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode query logs: %w", err)
	}
	return entries, nil
}
