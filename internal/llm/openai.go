package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/agorasim/agora/internal/domain"
	"github.com/agorasim/agora/internal/randx"
)

const (
	essayMaxTokens   = 600
	essayTemperature = 0.8

	critiqueMaxTokens   = 400
	critiqueTemperature = 0.7

	evalMaxTokens   = 10
	evalTemperature = 0.3

	noveltyDefault = 0.8
)

// Fallback prose returned when the API call itself fails. Evaluation
// fallbacks are Beta draws instead, so failed runs still spread scores.
const (
	fallbackEssayText = "This philosophical inquiry examines fundamental questions about the nature of " +
		"reality, knowledge, and ethics. Through careful analysis and reasoned argument, we explore the " +
		"implications of various philosophical positions and their relevance to contemporary discourse."

	fallbackCritiqueText = "This critique offers a thoughtful examination of the presented arguments, " +
		"highlighting both strengths and potential areas for further consideration. The analysis draws " +
		"upon established philosophical traditions while engaging with contemporary scholarship."
)

// OpenAIService generates and evaluates philosophical prose through the
// OpenAI chat API. The contract is total: every failure collapses to a
// fallback value here, never past this boundary. Fallback score draws
// come from the service's own random stream so a flaky API never
// perturbs the simulation's trajectory.
type OpenAIService struct {
	client *openai.Client
	model  string
	rng    *randx.Source
	logger *zap.Logger
}

var _ domain.TextService = (*OpenAIService)(nil)

func NewOpenAIService(apiKey string, rng *randx.Source, logger *zap.Logger) *OpenAIService {
	if rng == nil {
		rng = randx.New(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIService{
		client: openai.NewClient(apiKey),
		model:  openai.GPT3Dot5Turbo,
		rng:    rng,
		logger: logger,
	}
}

func (s *OpenAIService) GenerateEssay(ctx context.Context, persona string, topic domain.Topic, beliefs domain.BeliefVector, citationIDs []uuid.UUID, citationTexts []string) string {
	text, err := s.complete(ctx, essayPrompt(persona, topic, beliefs, citationTexts), essayMaxTokens, essayTemperature)
	if err != nil {
		s.logger.Warn("essay generation failed, using fallback prose", zap.Error(err))
		return fallbackEssayText
	}
	return text
}

func (s *OpenAIService) GenerateCritique(ctx context.Context, persona string, targetText string, stance domain.Stance, beliefs domain.BeliefVector) string {
	text, err := s.complete(ctx, critiquePrompt(persona, targetText, stance, beliefs), critiqueMaxTokens, critiqueTemperature)
	if err != nil {
		s.logger.Warn("critique generation failed, using fallback prose", zap.Error(err))
		return fallbackCritiqueText
	}
	return text
}

func (s *OpenAIService) EvaluateEssayQuality(ctx context.Context, text string, topic domain.Topic, citationCount int) float64 {
	return s.evaluate(ctx, qualityPrompt(text, topic, citationCount), 3, 2)
}

func (s *OpenAIService) EvaluateEssayNovelty(ctx context.Context, text string, topic domain.Topic, existingTexts []string) float64 {
	if len(existingTexts) == 0 {
		return noveltyDefault
	}
	return s.evaluate(ctx, noveltyPrompt(text, topic, existingTexts), 2, 2)
}

func (s *OpenAIService) EvaluateCritiquePersuasiveness(ctx context.Context, text string, targetText string) float64 {
	return s.evaluate(ctx, persuasivenessPrompt(text, targetText), 2, 3)
}

func (s *OpenAIService) complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// evaluate asks for a single decimal score and falls back to a draw from
// Beta(alpha, beta) on any API or parse failure.
func (s *OpenAIService) evaluate(ctx context.Context, prompt string, alpha, beta float64) float64 {
	raw, err := s.complete(ctx, prompt, evalMaxTokens, evalTemperature)
	if err == nil {
		if score, ok := parseScore(raw); ok {
			return score
		}
		s.logger.Debug("unparseable evaluation response", zap.String("response", raw))
	} else {
		s.logger.Debug("evaluation call failed", zap.Error(err))
	}
	return s.rng.Beta(alpha, beta)
}

// parseScore reads a decimal score, clamping it into [0, 1].
func parseScore(raw string) (float64, bool) {
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, true
}
