package database

import (
	"context"
	"fmt"
	"time"

	"college-chatbot/internal/config"
	"college-chatbot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StudentQueryRepository struct {
	col *mongo.Collection
}

func NewStudentQueryRepository(db *mongo.Database) *StudentQueryRepository {
	return &StudentQueryRepository{col: db.Collection(config.StudentQueriesCollection)}
}

func (r *StudentQueryRepository) Create(ctx context.Context, q *models.StudentQuery) error {
	res, err := r.col.InsertOne(ctx, q)
	if err != nil {
		return fmt.Errorf("insert student query: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = id
	}
	return nil
}

func (r *StudentQueryRepository) ListByDivision(ctx context.Context, division string) ([]models.StudentQuery, error) {
	return r.find(ctx, bson.M{"division": division})
}

func (r *StudentQueryRepository) ListByStudent(ctx context.Context, username string) ([]models.StudentQuery, error) {
	return r.find(ctx, bson.M{"student_username": username})
}

// Reply stores the faculty reply and returns the updated query. Queries of another
// division are reported as ErrNotFound.
func (r *StudentQueryRepository) Reply(ctx context.Context, id primitive.ObjectID, division, reply string, at time.Time) (*models.StudentQuery, error) {
	update := bson.M{"$set": bson.M{
		"reply_text":  reply,
		"status":      models.StudentQueryAnswered,
		"answered_at": at,
	}}

	var updated models.StudentQuery
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id, "division": division}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

func (r *StudentQueryRepository) find(ctx context.Context, filter bson.M) ([]models.StudentQuery, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find student queries: %w", err)
	}
	defer cursor.Close(ctx)

	queries := make([]models.StudentQuery, 0)
	if err := cursor.All(ctx, &queries); err != nil {
		return nil, fmt.Errorf("decode student queries: %w", err)
	}
	return queries, nil
}
