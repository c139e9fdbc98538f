package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DivisionAll marks a document visible to every division.
const DivisionAll = "all"

// Document is a faculty-uploaded knowledge snippet.
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Category    string             `bson:"category" json:"category"`
	FileName    string             `bson:"file_name" json:"fileName"`
	Content     string             `bson:"content" json:"content"`
	ContentHash string             `bson:"content_hash" json:"-"`
	Division    string             `bson:"division" json:"division"`
	UploadedAt  time.Time          `bson:"uploaded_at" json:"uploadedAt"`
}

// Supported upload MIME types
const (
	MIMETypePlainText   = "text/plain"
	MIMETypeSpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMETypePDF         = "application/pdf"
)
