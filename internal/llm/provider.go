// Package llm provides the text-and-scoring collaborators behind
// domain.TextService: an OpenAI-backed implementation, a configurable
// mock for tests, and a factory keyed on the configured provider name.
package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/agorasim/agora/internal/domain"
	"github.com/agorasim/agora/internal/randx"
)

// Provider constants
const (
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
	ProviderMock   = "mock"
)

// NewTextService creates a text service based on the provider name.
// "none" yields the no-op service: essays and critiques keep their
// deterministic placeholder prose and scores stay at zero. The rng seeds
// the service's own fallback draws and is never shared with the model's
// stream, so trajectories are identical with or without a live provider.
func NewTextService(provider, apiKey string, rng *randx.Source, logger *zap.Logger) (domain.TextService, error) {
	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIService(apiKey, rng, logger), nil

	case ProviderNone:
		return domain.NopTextService{}, nil

	case ProviderMock:
		return NewMockTextService(), nil

	default:
		return nil, fmt.Errorf("unknown text provider: %s (valid options: openai, none, mock)", provider)
	}
}
