package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"college-chatbot/internal/logger"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"
)

var (
	ErrRateLimited   = errors.New("gemini rate limit exceeded")
	ErrCircuitOpen   = errors.New("gemini circuit breaker open")
	ErrEmptyResponse = errors.New("gemini returned no text")
)

type generateFunc func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)

// GeminiClient issues single, non-streaming generate calls. It never retries and
// never substitutes a canned answer: every failure is returned to the caller.
type GeminiClient struct {
	client      *genai.Client
	model       string
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
	generate    generateFunc
}

func NewGeminiClient(ctx context.Context, apiKey, model string, rpm int) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	gc := newGeminiClient(model, rpm, func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
		return client.GenerativeModel(model).GenerateContent(ctx, genai.Text(prompt))
	})
	gc.client = client
	return gc, nil
}

func newGeminiClient(model string, rpm int, fn generateFunc) *GeminiClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	limit := rate.Inf
	burst := 1
	if rpm > 0 {
		limit = rate.Limit(float64(rpm) / 60.0)
		burst = max(1, rpm/10)
	}

	return &GeminiClient{
		model:       model,
		breaker:     breaker,
		rateLimiter: rate.NewLimiter(limit, burst),
		generate:    fn,
	}
}

// Generate sends prompt to the model and returns the concatenated response text.
func (gc *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("gemini-client")
	ctx, span := tracer.Start(ctx, "gemini.generate_content")
	defer span.End()

	span.SetAttributes(
		attribute.String("gemini.model", gc.model),
		attribute.Int("gemini.prompt_chars", len(prompt)),
	)

	// Non-blocking: an exhausted budget fails the request instead of queueing it
	if !gc.rateLimiter.Allow() {
		span.SetAttributes(attribute.Bool("gemini.rate_limited", true))
		span.SetStatus(codes.Error, ErrRateLimited.Error())
		return "", ErrRateLimited
	}

	result, err := gc.breaker.Execute(func() (interface{}, error) {
		resp, err := gc.generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return responseText(resp)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			span.SetAttributes(attribute.Bool("gemini.circuit_breaker_open", true))
			err = ErrCircuitOpen
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	text := result.(string)
	span.SetAttributes(attribute.Int("gemini.response_chars", len(text)))
	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// Close the client
func (gc *GeminiClient) Close() error {
	if gc.client != nil {
		return gc.client.Close()
	}
	return nil
}
