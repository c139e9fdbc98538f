package services

import (
	"context"
	"fmt"
	"strings"

	"college-chatbot/internal/logger"
	"college-chatbot/models"
)

const (
	topQueriesLimit        = 5
	unansweredQueriesLimit = 10
)

// QueryLogStore is the analytics view over the query log collection.
type QueryLogStore interface {
	QueryLogWriter
	CountByDivision(ctx context.Context, division string) (int64, error)
	TopQueries(ctx context.Context, division string, limit int) ([]models.QueryCount, error)
	RecentUnanswered(ctx context.Context, division string, limit int) ([]models.QueryLog, error)
	ListByDivision(ctx context.Context, division string) ([]models.QueryLog, error)
	DeleteByDivision(ctx context.Context, division string) (int64, error)
}

type AnalyticsService struct {
	logs QueryLogStore
}

func NewAnalyticsService(logs QueryLogStore) *AnalyticsService {
	return &AnalyticsService{logs: logs}
}

// Summary reports the division's total, its five most repeated questions and its
// ten latest unanswered ones.
func (s *AnalyticsService) Summary(ctx context.Context, division string) (*models.AnalyticsSummary, error) {
	division = strings.TrimSpace(division)

	total, err := s.logs.CountByDivision(ctx, division)
	if err != nil {
		return nil, fmt.Errorf("count queries: %w", err)
	}

	top, err := s.logs.TopQueries(ctx, division, topQueriesLimit)
	if err != nil {
		return nil, fmt.Errorf("top queries: %w", err)
	}

	unanswered, err := s.logs.RecentUnanswered(ctx, division, unansweredQueriesLimit)
	if err != nil {
		return nil, fmt.Errorf("unanswered queries: %w", err)
	}

	if top == nil {
		top = []models.QueryCount{}
	}
	if unanswered == nil {
		unanswered = []models.QueryLog{}
	}

	return &models.AnalyticsSummary{
		TotalQueries:      total,
		TopQueries:        top,
		UnansweredQueries: unanswered,
	}, nil
}

// Clear removes every query log entry of the division.
func (s *AnalyticsService) Clear(ctx context.Context, division string) (int64, error) {
	deleted, err := s.logs.DeleteByDivision(ctx, strings.TrimSpace(division))
	if err != nil {
		return 0, fmt.Errorf("clear analytics: %w", err)
	}

	logger.Info("analytics cleared", "division", division, "deleted", deleted)
	return deleted, nil
}
