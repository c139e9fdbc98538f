package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"college-chatbot/internal/logger"
	"college-chatbot/internal/telemetry"
	"college-chatbot/models"
)

// Fixed user-facing messages of the ask pipeline.
const (
	NoKnowledgeMessage     = "I'm sorry, there is no knowledge document available for your division yet."
	ProcessingErrorMessage = "An error occurred while processing your question."
)

var (
	ErrInvalidRequest  = errors.New("query and division are required")
	ErrUpstreamFailure = errors.New("upstream failure")
	ErrLogWrite        = errors.New("query log write failed")
)

// Outcome classifies a finished pipeline run.
type Outcome string

const (
	OutcomeAnswered        Outcome = "answered"
	OutcomeRefused         Outcome = "refused"
	OutcomeNoKnowledge     Outcome = "no_knowledge"
	OutcomeUpstreamFailure Outcome = "upstream_failure"
)

// Generator is the external generative-answer service.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QueryLogWriter appends one analytics entry.
type QueryLogWriter interface {
	Create(ctx context.Context, entry *models.QueryLog) error
}

type AskInput struct {
	Query    string
	Division string
	History  []models.ConversationTurn
}

type AskResult struct {
	Answer   string
	Answered bool
	Outcome  Outcome
}

// AnswerService runs selector, assembler, model and classifier for one question and
// writes exactly one query log entry for every well-formed request.
type AnswerService struct {
	selector  *RetrievalSelector
	assembler *PromptAssembler
	generator Generator
	logs      QueryLogWriter
	metrics   *telemetry.Metrics
	now       func() time.Time
}

func NewAnswerService(selector *RetrievalSelector, assembler *PromptAssembler, generator Generator, logs QueryLogWriter, metrics *telemetry.Metrics) *AnswerService {
	return &AnswerService{
		selector:  selector,
		assembler: assembler,
		generator: generator,
		logs:      logs,
		metrics:   metrics,
		now:       time.Now,
	}
}

// AnswerQuery answers one question. Errors wrap ErrInvalidRequest (nothing logged),
// ErrUpstreamFailure (logged as unanswered; the result still carries the generic
// message) or ErrLogWrite.
func (s *AnswerService) AnswerQuery(ctx context.Context, in AskInput) (*AskResult, error) {
	if in.Query == "" || in.Division == "" {
		return nil, ErrInvalidRequest
	}

	// Past validation the run always reaches its log write
	ctx = context.WithoutCancel(ctx)
	log := logger.With("division", in.Division, "history_turns", len(in.History))

	result, upstreamErr := s.run(ctx, in)
	if upstreamErr != nil {
		log.Error("ask pipeline failed", "error", upstreamErr)
	}

	entry := &models.QueryLog{
		Query:     in.Query,
		Answer:    result.Answer,
		Division:  in.Division,
		Answered:  result.Answered,
		CreatedAt: s.now(),
	}
	err := s.logs.Create(ctx, entry)
	s.metrics.RecordDatabaseOperation(ctx, "insert", "query_logs", err == nil)
	if err != nil {
		log.Error("failed to write query log", "outcome", string(result.Outcome), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrLogWrite, err)
	}

	s.metrics.RecordAskOutcome(ctx, string(result.Outcome), in.Division)
	log.Info("question handled", "outcome", string(result.Outcome), "answered", result.Answered)

	if upstreamErr != nil {
		return result, fmt.Errorf("%w: %v", ErrUpstreamFailure, upstreamErr)
	}
	return result, nil
}

// run produces the result to log; a non-nil error means the upstream failure branch.
func (s *AnswerService) run(ctx context.Context, in AskInput) (*AskResult, error) {
	docs, err := s.selector.SelectDocuments(ctx, in.Division)
	if err != nil {
		return failureResult(), err
	}

	if len(docs) == 0 {
		return &AskResult{Answer: NoKnowledgeMessage, Answered: false, Outcome: OutcomeNoKnowledge}, nil
	}

	prompt := s.assembler.Assemble(docs, in.History, in.Query)

	start := time.Now()
	answer, err := s.generator.Generate(ctx, prompt)
	s.metrics.RecordModelLatency(ctx, time.Since(start).Seconds(), err == nil)
	if err != nil {
		return failureResult(), fmt.Errorf("generate answer: %w", err)
	}

	if ClassifyAnswer(answer) {
		return &AskResult{Answer: answer, Answered: true, Outcome: OutcomeAnswered}, nil
	}
	return &AskResult{Answer: answer, Answered: false, Outcome: OutcomeRefused}, nil
}

func failureResult() *AskResult {
	return &AskResult{Answer: ProcessingErrorMessage, Answered: false, Outcome: OutcomeUpstreamFailure}
}
