package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"college-chatbot/internal/database"
	"college-chatbot/internal/logger"
	"college-chatbot/internal/telemetry"
	"college-chatbot/models"
	"college-chatbot/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrDuplicateContent = errors.New("document content already exists")
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidID        = errors.New("invalid id")
	ErrMissingCategory  = errors.New("document category is required")
)

// DocumentStore is the knowledge document collection.
type DocumentStore interface {
	DocumentFinder
	ExistsByContentHash(ctx context.Context, hash string) (bool, error)
	Create(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UploadInput struct {
	FileName string
	MIMEType string
	Category string
	Division string
	Data     []byte
}

// DocumentService manages the faculty side of the knowledge base.
type DocumentService struct {
	store     DocumentStore
	selector  *RetrievalSelector
	extractor *TextExtractor
	metrics   *telemetry.Metrics
	now       func() time.Time
}

func NewDocumentService(store DocumentStore, extractor *TextExtractor, metrics *telemetry.Metrics) *DocumentService {
	return &DocumentService{
		store:     store,
		selector:  NewRetrievalSelector(store),
		extractor: extractor,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Upload extracts the file's text and stores it, rejecting content that is already
// stored byte for byte. A blank division is stored as "all".
func (s *DocumentService) Upload(ctx context.Context, in UploadInput) (*models.Document, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		s.metrics.RecordDocumentUpload(ctx, "rejected")
		return nil, ErrMissingCategory
	}

	content, err := s.extractor.Extract(in.MIMEType, in.Data)
	if err != nil {
		s.metrics.RecordDocumentUpload(ctx, "rejected")
		return nil, err
	}

	hash := utils.ContentHash(content)
	exists, err := s.store.ExistsByContentHash(ctx, hash)
	if err != nil {
		s.metrics.RecordDocumentUpload(ctx, "error")
		return nil, fmt.Errorf("check duplicate content: %w", err)
	}
	if exists {
		s.metrics.RecordDocumentUpload(ctx, "duplicate")
		return nil, ErrDuplicateContent
	}

	division := strings.TrimSpace(in.Division)
	if division == "" {
		division = models.DivisionAll
	}

	doc := &models.Document{
		Category:    category,
		FileName:    in.FileName,
		Content:     content,
		ContentHash: hash,
		Division:    division,
		UploadedAt:  s.now(),
	}
	if err := s.store.Create(ctx, doc); err != nil {
		// A concurrent upload of the same content loses on the unique index
		if errors.Is(err, database.ErrDuplicate) {
			s.metrics.RecordDocumentUpload(ctx, "duplicate")
			return nil, ErrDuplicateContent
		}
		s.metrics.RecordDocumentUpload(ctx, "error")
		return nil, fmt.Errorf("store document: %w", err)
	}

	s.metrics.RecordDocumentUpload(ctx, "stored")
	logger.Info("document added", "file_name", doc.FileName, "division", doc.Division, "bytes", len(content))
	return doc, nil
}

// List returns what the assistant would see for the division, newest first.
func (s *DocumentService) List(ctx context.Context, division string) ([]models.Document, error) {
	return s.selector.SelectDocuments(ctx, division)
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	if err := s.store.Delete(ctx, oid); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("delete document: %w", err)
	}

	logger.Info("document deleted", "id", id)
	return nil
}
