package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryLog is the append-only analytics record of one /ask request.
type QueryLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Query     string             `bson:"query" json:"query"`
	Answer    string             `bson:"answer,omitempty" json:"answer,omitempty"`
	Division  string             `bson:"division" json:"division"`
	Answered  bool               `bson:"answered" json:"answered"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// QueryCount is one row of the top-queries aggregation.
type QueryCount struct {
	Query string `bson:"_id" json:"_id"`
	Count int    `bson:"count" json:"count"`
}

// AnalyticsSummary is the per-division dashboard payload.
type AnalyticsSummary struct {
	TotalQueries      int64        `json:"totalQueries"`
	TopQueries        []QueryCount `json:"topQueries"`
	UnansweredQueries []QueryLog   `json:"unansweredQueries"`
}
