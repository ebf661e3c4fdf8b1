package sim

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/agorasim/agora/internal/domain"
)

// maxCitationContexts caps how many cited essay bodies are handed to the
// text service as context for a new essay.
const maxCitationContexts = 3

// act lets one philosopher take its turn: an optional essay, then an
// optional critique. Both coin flips are always drawn so the random
// stream advances the same way whether or not the actions fire.
func (m *Model) act(ctx context.Context, p *domain.Philosopher) {
	tickNow := m.tick

	if m.rng.Coin(actionProb(baseEssayProb, p.Influence)) {
		m.writeEssay(ctx, p, tickNow)
	}
	if m.rng.Coin(actionProb(baseCritiqueProb, p.Influence)) {
		m.writeCritique(ctx, p, tickNow)
	}
}

// actionProb scales a base probability by influence, saturating once
// influence reaches the scale ceiling.
func actionProb(base, influence float64) float64 {
	return base * math.Min(influence/influenceScale, 1)
}

func (m *Model) writeEssay(ctx context.Context, author *domain.Philosopher, tickNow int) {
	topic := m.selectTopic(author)
	citations := m.selectCitations(author)

	essay := domain.NewEssay(author, topic, citations, tickNow)

	var citationTexts []string
	for _, id := range citations {
		cited, ok := m.essays.get(id)
		if !ok {
			continue
		}
		citationTexts = append(citationTexts, cited.Text)
		if len(citationTexts) == maxCitationContexts {
			break
		}
	}
	essay.SetText(m.text.GenerateEssay(ctx, author.Persona, topic, author.Beliefs, citations, citationTexts))

	// Novelty compares against every existing essay on the same topic,
	// before this one joins the pool.
	var peerTexts []string
	for _, e := range m.essays.all() {
		if e.Topic == topic {
			peerTexts = append(peerTexts, e.Text)
		}
	}
	quality := m.text.EvaluateEssayQuality(ctx, essay.Text, topic, len(citations))
	novelty := m.text.EvaluateEssayNovelty(ctx, essay.Text, topic, peerTexts)
	essay.SetScores(quality, novelty)

	author.RecordEssay(essay.ID, tickNow)
	m.addEssay(ctx, essay)
}

func (m *Model) writeCritique(ctx context.Context, critic *domain.Philosopher, tickNow int) {
	target := m.selectCritiqueTarget(critic)
	if target == nil {
		return
	}
	stance := domain.Stance(m.rng.Sign())

	critique := domain.NewCritique(critic, target.ID, stance, tickNow)
	critique.SetText(m.text.GenerateCritique(ctx, critic.Persona, target.Text, stance, critic.Beliefs))
	critique.SetPersuasiveness(m.text.EvaluateCritiquePersuasiveness(ctx, critique.Text, target.Text))

	critic.RecordCritique(critique.ID, tickNow)
	m.addCritique(ctx, critique)
}

// selectTopic draws a topic weighted by the absolute strength of the
// philosopher's leading belief components. A belief vector that is zero
// across the topic components yields a uniform draw.
func (m *Model) selectTopic(p *domain.Philosopher) domain.Topic {
	topics := domain.Topics()
	weights := make([]float64, len(topics))
	for i := range weights {
		if i < len(p.Beliefs) {
			weights[i] = math.Abs(p.Beliefs[i])
		}
	}
	return topics[m.rng.WeightedIndex(weights)]
}

// selectCitations picks a Poisson-distributed number of distinct essays
// by other authors. Cycles are allowed: citation is a directed reference
// graph, not a tree.
func (m *Model) selectCitations(author *domain.Philosopher) []uuid.UUID {
	available := m.availableEssays(author.ID)
	if len(available) == 0 {
		return nil
	}

	n := m.rng.Poisson(meanCitationsPerEssay)
	if n > len(available) {
		n = len(available)
	}
	if n == 0 {
		return nil
	}

	ids := make([]uuid.UUID, n)
	for i, idx := range m.rng.SampleDistinct(len(available), n) {
		ids[i] = available[idx].ID
	}
	return ids
}

// selectCritiqueTarget draws an essay by another author, weighted by the
// author's influence at the time the essay was written.
func (m *Model) selectCritiqueTarget(critic *domain.Philosopher) *domain.Essay {
	available := m.availableEssays(critic.ID)
	if len(available) == 0 {
		return nil
	}
	weights := make([]float64, len(available))
	for i, e := range available {
		weights[i] = e.AuthorInfluence
	}
	return available[m.rng.WeightedIndex(weights)]
}

// availableEssays returns every essay not authored by exclude, in
// creation order. Essays by dead authors stay available.
func (m *Model) availableEssays(exclude uuid.UUID) []*domain.Essay {
	all := m.essays.all()
	out := make([]*domain.Essay, 0, len(all))
	for _, e := range all {
		if e.AuthorID != exclude {
			out = append(out, e)
		}
	}
	return out
}

// addEssay registers a new essay and credits every cited essay (and its
// author, when still alive) with a citation.
func (m *Model) addEssay(ctx context.Context, essay *domain.Essay) {
	m.essays.add(essay.ID, essay)
	m.mirrorOp("create_essay", m.mirror.CreateEssay(ctx, essay))

	for _, citedID := range essay.Citations {
		cited, ok := m.essays.get(citedID)
		if !ok {
			continue
		}
		cited.AddCitation()
		if author, ok := m.agents.get(cited.AuthorID); ok {
			author.ReceiveCitation()
		}
		m.mirrorOp("create_citation", m.mirror.CreateCitation(ctx, essay.ID, citedID))
		m.mirrorOp("update_citation_count", m.mirror.UpdateEssayCitationCount(ctx, citedID, cited.CitationCount))
	}
}

// addCritique registers a new critique and immediately applies its
// effects on the critic and the target's author.
func (m *Model) addCritique(ctx context.Context, critique *domain.Critique) {
	m.critiques.add(critique.ID, critique)
	m.mirrorOp("create_critique", m.mirror.CreateCritique(ctx, critique))
	m.processCritiqueEffects(critique)
}
