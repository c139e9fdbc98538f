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

type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(config.DocumentsCollection)}
}

// divisionFilter matches documents of the division plus the "all" wildcard.
func divisionFilter(division string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"division": division},
		bson.M{"division": models.DivisionAll},
	}}
}

// FindByDivision returns the division's documents plus "all" documents, newest first.
func (r *DocumentRepository) FindByDivision(ctx context.Context, division string) ([]models.Document, error) {
	cursor, err := r.col.Find(ctx, divisionFilter(division),
		options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]models.Document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) ExistsByContentHash(ctx context.Context, hash string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"content_hash": hash},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch translate(err) {
	case nil:
		return true, nil
	case ErrNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("lookup content hash: %w", err)
	}
}

// Create inserts doc and sets its ID. A content hash collision yields ErrDuplicate.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
