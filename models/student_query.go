package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student query statuses
const (
	StudentQueryUnanswered = "unanswered"
	StudentQueryAnswered   = "answered"
)

// StudentQuery is a question a student escalates directly to division faculty.
type StudentQuery struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StudentUsername string             `bson:"student_username" json:"studentUsername"`
	Division        string             `bson:"division" json:"division"`
	QueryText       string             `bson:"query_text" json:"queryText"`
	ReplyText       string             `bson:"reply_text" json:"replyText"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	AnsweredAt      *time.Time         `bson:"answered_at,omitempty" json:"answeredAt,omitempty"`
}

type StudentQueryRequest struct {
	Query string `json:"query"`
}

type StudentQueryReplyRequest struct {
	Reply string `json:"reply"`
}
