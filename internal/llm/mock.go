package llm

import (
	"context"

	"github.com/google/uuid"

	"github.com/agorasim/agora/internal/domain"
)

// MockTextService is a configurable text service for testing.
// Set the response fields to control what each method returns.
type MockTextService struct {
	EssayResponse          string
	CritiqueResponse       string
	QualityResponse        float64
	NoveltyResponse        float64
	PersuasivenessResponse float64

	// Call tracking for assertions
	EssayCalls          []EssayCall
	CritiqueCalls       []CritiqueCall
	QualityCalls        []string
	NoveltyCalls        []NoveltyCall
	PersuasivenessCalls []string
}

type EssayCall struct {
	Persona   string
	Topic     domain.Topic
	Citations int
}

type CritiqueCall struct {
	Persona    string
	TargetText string
	Stance     domain.Stance
}

type NoveltyCall struct {
	Text     string
	Existing int
}

var _ domain.TextService = (*MockTextService)(nil)

func NewMockTextService() *MockTextService {
	return &MockTextService{
		EssayResponse:          "Mock essay examining the question at hand.",
		CritiqueResponse:       "Mock critique engaging the target essay.",
		QualityResponse:        0.75,
		NoveltyResponse:        0.5,
		PersuasivenessResponse: 0.6,
	}
}

func (s *MockTextService) GenerateEssay(ctx context.Context, persona string, topic domain.Topic, beliefs domain.BeliefVector, citationIDs []uuid.UUID, citationTexts []string) string {
	s.EssayCalls = append(s.EssayCalls, EssayCall{Persona: persona, Topic: topic, Citations: len(citationIDs)})
	return s.EssayResponse
}

func (s *MockTextService) GenerateCritique(ctx context.Context, persona string, targetText string, stance domain.Stance, beliefs domain.BeliefVector) string {
	s.CritiqueCalls = append(s.CritiqueCalls, CritiqueCall{Persona: persona, TargetText: targetText, Stance: stance})
	return s.CritiqueResponse
}

func (s *MockTextService) EvaluateEssayQuality(ctx context.Context, text string, topic domain.Topic, citationCount int) float64 {
	s.QualityCalls = append(s.QualityCalls, text)
	return s.QualityResponse
}

func (s *MockTextService) EvaluateEssayNovelty(ctx context.Context, text string, topic domain.Topic, existingTexts []string) float64 {
	s.NoveltyCalls = append(s.NoveltyCalls, NoveltyCall{Text: text, Existing: len(existingTexts)})
	return s.NoveltyResponse
}

func (s *MockTextService) EvaluateCritiquePersuasiveness(ctx context.Context, text string, targetText string) float64 {
	s.PersuasivenessCalls = append(s.PersuasivenessCalls, text)
	return s.PersuasivenessResponse
}

// Reset clears all recorded calls and resets responses to defaults.
func (s *MockTextService) Reset() {
	*s = *NewMockTextService()
}
