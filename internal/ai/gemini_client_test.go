package ai

import (
	"context"
	"errors"
	"testing"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, genai.Text(p))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestGenerate_ReturnsJoinedText(t *testing.T) {
	var gotPrompt string
	gc := newGeminiClient("test-model", 0, func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
		gotPrompt = prompt
		return textResponse("The exam ", "is on May 5."), nil
	})

	text, err := gc.Generate(context.Background(), "When is the exam?")
	require.NoError(t, err)
	assert.Equal(t, "The exam is on May 5.", text)
	assert.Equal(t, "When is the exam?", gotPrompt)
}

func TestGenerate_EmptyResponseIsError(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"nil":          nil,
		"no candidate": {},
		"nil content":  {Candidates: []*genai.Candidate{{}}},
		"blank text":   textResponse("  "),
	}

	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			gc := newGeminiClient("test-model", 0, func(context.Context, string) (*genai.GenerateContentResponse, error) {
				return resp, nil
			})
			_, err := gc.Generate(context.Background(), "q")
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestGenerate_NoRetryOnFailure(t *testing.T) {
	calls := 0
	upstream := errors.New("quota exceeded")
	gc := newGeminiClient("test-model", 0, func(context.Context, string) (*genai.GenerateContentResponse, error) {
		calls++
		return nil, upstream
	})

	_, err := gc.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, 1, calls)
}

func TestGenerate_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	calls := 0
	gc := newGeminiClient("test-model", 0, func(context.Context, string) (*genai.GenerateContentResponse, error) {
		calls++
		return nil, errors.New("unavailable")
	})

	for i := 0; i < 3; i++ {
		_, err := gc.Generate(context.Background(), "q")
		require.Error(t, err)
	}

	_, err := gc.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 3, calls)
}

func TestGenerate_RateLimitFailsFast(t *testing.T) {
	gc := newGeminiClient("test-model", 1, func(context.Context, string) (*genai.GenerateContentResponse, error) {
		return textResponse("ok"), nil
	})

	_, err := gc.Generate(context.Background(), "q")
	require.NoError(t, err)

	_, err = gc.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestClose_WithoutClient(t *testing.T) {
	gc := newGeminiClient("test-model", 0, nil)
	assert.NoError(t, gc.Close())
}
