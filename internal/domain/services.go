package domain

import (
	"context"

	"github.com/google/uuid"
)

// TextService produces essay and critique prose and scores it. The contract
// is total: implementations must never fail past this boundary — any
// internal error collapses to a fallback value inside the implementation.
// An empty text return means "use the deterministic placeholder".
//
// EvaluateEssayNovelty returns a fixed 0.8 when no existing texts are
// supplied for comparison.
type TextService interface {
	GenerateEssay(ctx context.Context, persona string, topic Topic, beliefs BeliefVector, citationIDs []uuid.UUID, citationTexts []string) string
	GenerateCritique(ctx context.Context, persona string, targetText string, stance Stance, beliefs BeliefVector) string
	EvaluateEssayQuality(ctx context.Context, text string, topic Topic, citationCount int) float64
	EvaluateEssayNovelty(ctx context.Context, text string, topic Topic, existingTexts []string) float64
	EvaluateCritiquePersuasiveness(ctx context.Context, text string, targetText string) float64
}

// Mirror receives write-through notifications of simulation events for
// persistence. It is strictly an observer: nothing is ever read back during
// a run, and a failing mirror must not stop the simulation — callers log
// the error and continue.
type Mirror interface {
	CreateAgent(ctx context.Context, p *Philosopher) error
	CreateEssay(ctx context.Context, e *Essay) error
	CreateCritique(ctx context.Context, c *Critique) error
	CreateCitation(ctx context.Context, citingID, citedID uuid.UUID) error
	CreateSchool(ctx context.Context, s *School) error
	AddAgentToSchool(ctx context.Context, agentID uuid.UUID, schoolID string) error
	UpdateAgentInfluence(ctx context.Context, agentID uuid.UUID, influence float64) error
	UpdateEssayCitationCount(ctx context.Context, essayID uuid.UUID, count int) error
}

// NopTextService is the no-collaborator stand-in: empty text (so entities
// keep their placeholder prose) and zero scores.
type NopTextService struct{}

func (NopTextService) GenerateEssay(context.Context, string, Topic, BeliefVector, []uuid.UUID, []string) string {
	return ""
}

func (NopTextService) GenerateCritique(context.Context, string, string, Stance, BeliefVector) string {
	return ""
}

func (NopTextService) EvaluateEssayQuality(context.Context, string, Topic, int) float64 {
	return 0
}

func (NopTextService) EvaluateEssayNovelty(context.Context, string, Topic, []string) float64 {
	return 0
}

func (NopTextService) EvaluateCritiquePersuasiveness(context.Context, string, string) float64 {
	return 0
}

// NopMirror discards every event.
type NopMirror struct{}

func (NopMirror) CreateAgent(context.Context, *Philosopher) error            { return nil }
func (NopMirror) CreateEssay(context.Context, *Essay) error                  { return nil }
func (NopMirror) CreateCritique(context.Context, *Critique) error            { return nil }
func (NopMirror) CreateCitation(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (NopMirror) CreateSchool(context.Context, *School) error                { return nil }
func (NopMirror) AddAgentToSchool(context.Context, uuid.UUID, string) error  { return nil }
func (NopMirror) UpdateAgentInfluence(context.Context, uuid.UUID, float64) error {
	return nil
}
func (NopMirror) UpdateEssayCitationCount(context.Context, uuid.UUID, int) error {
	return nil
}
