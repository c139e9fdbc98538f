package routes

import (
	"context"
	"errors"
	"sync"
	"time"

	"college-chatbot/models"
	"college-chatbot/services"
	"college-chatbot/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "routes-secret"

type stubFinder struct {
	docs []models.Document
	err  error
}

func (f *stubFinder) FindByDivision(_ context.Context, division string) ([]models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Document
	for _, d := range f.docs {
		if d.Division == division || d.Division == models.DivisionAll {
			out = append(out, d)
		}
	}
	return out, nil
}

type recordingGenerator struct {
	mu      sync.Mutex
	answer  string
	err     error
	prompts []string
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.answer, g.err
}

type recordingLogs struct {
	mu      sync.Mutex
	entries []models.QueryLog
}

func (l *recordingLogs) Create(_ context.Context, entry *models.QueryLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, *entry)
	return nil
}

type stubDocuments struct {
	uploaded  []services.UploadInput
	uploadErr error
	listed    []models.Document
	deleteErr error
}

func (s *stubDocuments) Upload(_ context.Context, in services.UploadInput) (*models.Document, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	s.uploaded = append(s.uploaded, in)
	return &models.Document{ID: primitive.NewObjectID(), FileName: in.FileName, Division: in.Division}, nil
}

func (s *stubDocuments) List(context.Context, string) ([]models.Document, error) {
	return s.listed, nil
}

func (s *stubDocuments) Delete(context.Context, string) error {
	return s.deleteErr
}

type stubAnalytics struct {
	summary *models.AnalyticsSummary
	cleared []string
	export  []byte
}

func (s *stubAnalytics) Summary(context.Context, string) (*models.AnalyticsSummary, error) {
	return s.summary, nil
}

func (s *stubAnalytics) Clear(_ context.Context, division string) (int64, error) {
	s.cleared = append(s.cleared, division)
	return 3, nil
}

func (s *stubAnalytics) ExportExcel(context.Context, string) ([]byte, error) {
	if s.export == nil {
		return nil, errors.New("export failed")
	}
	return s.export, nil
}

type stubAuth struct {
	loginErr    error
	registerErr error
}

func (s *stubAuth) Login(_ context.Context, req models.LoginRequest) (*services.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &services.LoginResult{
		Token: "signed-token",
		User:  models.UserInfo{Username: req.Username, Role: req.Role, Division: "1"},
	}, nil
}

func (s *stubAuth) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &models.User{Username: req.Username, Role: req.Role, Division: req.Division}, nil
}

type stubStudentQueries struct {
	submitted []models.StudentQuery
	replyErr  error
	replies   []string
}

func (s *stubStudentQueries) Submit(_ context.Context, username, division, text string) (*models.StudentQuery, error) {
	if text == "" {
		return nil, services.ErrEmptyStudentQuery
	}
	q := models.StudentQuery{ID: primitive.NewObjectID(), StudentUsername: username, Division: division, QueryText: text, Status: models.StudentQueryUnanswered}
	s.submitted = append(s.submitted, q)
	return &q, nil
}

func (s *stubStudentQueries) ListByDivision(_ context.Context, division string) ([]models.StudentQuery, error) {
	out := []models.StudentQuery{}
	for _, q := range s.submitted {
		if q.Division == division {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *stubStudentQueries) ListMine(_ context.Context, username string) ([]models.StudentQuery, error) {
	out := []models.StudentQuery{}
	for _, q := range s.submitted {
		if q.StudentUsername == username {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *stubStudentQueries) Reply(_ context.Context, id, facultyDivision, reply string) (*models.StudentQuery, error) {
	if s.replyErr != nil {
		return nil, s.replyErr
	}
	s.replies = append(s.replies, id+"@"+facultyDivision)
	return &models.StudentQuery{ReplyText: reply, Status: models.StudentQueryAnswered}, nil
}

func bearer(role, division string) string {
	token, err := utils.GenerateJWT(role+division, role, division, testSecret, time.Hour)
	if err != nil {
		panic(err)
	}
	return "Bearer " + token
}
