package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"college-chatbot/internal/database"
	"college-chatbot/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryDocuments mirrors DocumentRepository semantics in memory.
type memoryDocuments struct {
	mu      sync.Mutex
	docs    []models.Document
	findErr error
	finds   int
}

func (m *memoryDocuments) FindByDivision(_ context.Context, division string) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	if m.findErr != nil {
		return nil, m.findErr
	}

	out := make([]models.Document, 0)
	for _, d := range m.docs {
		if d.Division == division || d.Division == models.DivisionAll {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (m *memoryDocuments) ExistsByContentHash(_ context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.ContentHash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryDocuments) Create(_ context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.ContentHash == doc.ContentHash {
			return database.ErrDuplicate
		}
	}
	doc.ID = primitive.NewObjectID()
	m.docs = append(m.docs, *doc)
	return nil
}

func (m *memoryDocuments) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.docs {
		if d.ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

// memoryQueryLogs records every entry written.
type memoryQueryLogs struct {
	mu        sync.Mutex
	entries   []models.QueryLog
	createErr error
}

func (m *memoryQueryLogs) Create(_ context.Context, entry *models.QueryLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	entry.ID = primitive.NewObjectID()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryQueryLogs) all() []models.QueryLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.QueryLog(nil), m.entries...)
}

type stubGenerator struct {
	mu      sync.Mutex
	answer  string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func doc(category, content, division string, minutes int) models.Document {
	return models.Document{
		ID:         primitive.NewObjectID(),
		Category:   category,
		FileName:   category + ".txt",
		Content:    content,
		Division:   division,
		UploadedAt: baseTime.Add(time.Duration(minutes) * time.Minute),
	}
}

func (m *memoryQueryLogs) byDivision(division string) []models.QueryLog {
	out := make([]models.QueryLog, 0)
	for _, e := range m.entries {
		if e.Division == division {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memoryQueryLogs) CountByDivision(_ context.Context, division string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byDivision(division))), nil
}

func (m *memoryQueryLogs) TopQueries(_ context.Context, division string, limit int) ([]models.QueryCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[string]int{}
	for _, e := range m.byDivision(division) {
		counts[e.Query]++
	}
	out := make([]models.QueryCount, 0, len(counts))
	for q, c := range counts {
		out = append(out, models.QueryCount{Query: q, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Query < out[j].Query
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryQueryLogs) RecentUnanswered(_ context.Context, division string, limit int) ([]models.QueryLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.QueryLog, 0)
	for _, e := range m.byDivision(division) {
		if !e.Answered {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryQueryLogs) ListByDivision(_ context.Context, division string) ([]models.QueryLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byDivision(division), nil
}

func (m *memoryQueryLogs) DeleteByDivision(_ context.Context, division string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	var deleted int64
	for _, e := range m.entries {
		if e.Division == division {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return deleted, nil
}

func logEntry(query, division string, answered bool, minutes int) models.QueryLog {
	return models.QueryLog{
		ID:        primitive.NewObjectID(),
		Query:     query,
		Answer:    "a",
		Division:  division,
		Answered:  answered,
		CreatedAt: baseTime.Add(time.Duration(minutes) * time.Minute),
	}
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]models.User{}}
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return database.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	m.users[user.Username] = *user
	return nil
}

type memoryStudentQueries struct {
	mu      sync.Mutex
	queries []models.StudentQuery
}

func (m *memoryStudentQueries) Create(_ context.Context, q *models.StudentQuery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q.ID = primitive.NewObjectID()
	m.queries = append(m.queries, *q)
	return nil
}

func (m *memoryStudentQueries) list(keep func(models.StudentQuery) bool) []models.StudentQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.StudentQuery, 0)
	for _, q := range m.queries {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memoryStudentQueries) ListByDivision(_ context.Context, division string) ([]models.StudentQuery, error) {
	return m.list(func(q models.StudentQuery) bool { return q.Division == division }), nil
}

func (m *memoryStudentQueries) ListByStudent(_ context.Context, username string) ([]models.StudentQuery, error) {
	return m.list(func(q models.StudentQuery) bool { return q.StudentUsername == username }), nil
}

func (m *memoryStudentQueries) Reply(_ context.Context, id primitive.ObjectID, division, reply string, at time.Time) (*models.StudentQuery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.queries {
		q := &m.queries[i]
		if q.ID == id && q.Division == division {
			q.ReplyText = reply
			q.Status = models.StudentQueryAnswered
			q.AnsweredAt = &at
			updated := *q
			return &updated, nil
		}
	}
	return nil, database.ErrNotFound
}
