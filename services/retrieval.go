package services

import (
	"context"
	"fmt"
	"sort"

	"college-chatbot/models"
)

// DocumentFinder returns documents whose division is the given one or "all".
type DocumentFinder interface {
	FindByDivision(ctx context.Context, division string) ([]models.Document, error)
}

type RetrievalSelector struct {
	finder DocumentFinder
}

func NewRetrievalSelector(finder DocumentFinder) *RetrievalSelector {
	return &RetrievalSelector{finder: finder}
}

// SelectDocuments returns the division's documents plus "all" documents, most
// recently uploaded first. No match yields an empty slice and a nil error.
func (s *RetrievalSelector) SelectDocuments(ctx context.Context, division string) ([]models.Document, error) {
	found, err := s.finder.FindByDivision(ctx, division)
	if err != nil {
		return nil, fmt.Errorf("select documents for division %q: %w", division, err)
	}

	docs := make([]models.Document, 0, len(found))
	for _, doc := range found {
		if doc.Division == division || doc.Division == models.DivisionAll {
			docs = append(docs, doc)
		}
	}

	// Prompt order follows this sort, so it must hold whatever the store returns
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}
