package llm

import (
	"context"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agorasim/agora/internal/domain"
	"github.com/agorasim/agora/internal/randx"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"plain decimal", "0.7", 0.7, true},
		{"surrounding whitespace", " 0.85\n", 0.85, true},
		{"integer zero", "0", 0, true},
		{"integer one", "1", 1, true},
		{"clamped high", "1.5", 1, true},
		{"clamped low", "-0.2", 0, true},
		{"prose response", "I would rate this essay 0.7", 0, false},
		{"empty response", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseScore(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestNoveltyDefaultWithoutComparisons(t *testing.T) {
	// No existing essays to compare against short-circuits before any
	// API call, so a dummy key is safe here.
	svc := NewOpenAIService("test-key", randx.New(1), zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, 0.8, svc.EvaluateEssayNovelty(ctx, "a fresh essay", domain.TopicEthics, nil))
	assert.Equal(t, 0.8, svc.EvaluateEssayNovelty(ctx, "a fresh essay", domain.TopicEthics, []string{}))
}

func TestNewOpenAIServiceDefaults(t *testing.T) {
	svc := NewOpenAIService("test-key", nil, nil)
	require.NotNil(t, svc)
	assert.Equal(t, openai.GPT3Dot5Turbo, svc.model)
	assert.NotNil(t, svc.rng)
	assert.NotNil(t, svc.logger)
}
