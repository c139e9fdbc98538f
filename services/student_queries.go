package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"college-chatbot/internal/database"
	"college-chatbot/internal/logger"
	"college-chatbot/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyStudentQuery    = errors.New("query text is required")
	ErrEmptyReply           = errors.New("reply text is required")
	ErrStudentQueryNotFound = errors.New("student query not found")
)

// StudentQueryStore is the student_queries collection.
type StudentQueryStore interface {
	Create(ctx context.Context, q *models.StudentQuery) error
	ListByDivision(ctx context.Context, division string) ([]models.StudentQuery, error)
	ListByStudent(ctx context.Context, username string) ([]models.StudentQuery, error)
	Reply(ctx context.Context, id primitive.ObjectID, division, reply string, at time.Time) (*models.StudentQuery, error)
}

// StudentQueryService lets students escalate a question to their division's faculty.
type StudentQueryService struct {
	store StudentQueryStore
	now   func() time.Time
}

func NewStudentQueryService(store StudentQueryStore) *StudentQueryService {
	return &StudentQueryService{store: store, now: time.Now}
}

func (s *StudentQueryService) Submit(ctx context.Context, username, division, text string) (*models.StudentQuery, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyStudentQuery
	}

	q := &models.StudentQuery{
		StudentUsername: username,
		Division:        division,
		QueryText:       text,
		Status:          models.StudentQueryUnanswered,
		CreatedAt:       s.now(),
	}
	if err := s.store.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create student query: %w", err)
	}

	logger.Info("student query submitted", "student", username, "division", division)
	return q, nil
}

func (s *StudentQueryService) ListByDivision(ctx context.Context, division string) ([]models.StudentQuery, error) {
	queries, err := s.store.ListByDivision(ctx, strings.TrimSpace(division))
	if err != nil {
		return nil, fmt.Errorf("list student queries: %w", err)
	}
	return queries, nil
}

func (s *StudentQueryService) ListMine(ctx context.Context, username string) ([]models.StudentQuery, error) {
	queries, err := s.store.ListByStudent(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list student queries: %w", err)
	}
	return queries, nil
}

// Reply answers a query. Faculty may only answer queries of their own division.
func (s *StudentQueryService) Reply(ctx context.Context, id, facultyDivision, reply string) (*models.StudentQuery, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, ErrEmptyReply
	}

	q, err := s.store.Reply(ctx, oid, facultyDivision, reply, s.now())
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrStudentQueryNotFound
		}
		return nil, fmt.Errorf("reply to student query: %w", err)
	}

	logger.Info("student query answered", "id", id, "division", facultyDivision)
	return q, nil
}
