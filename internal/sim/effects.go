package sim

import (
	"context"

	"github.com/agorasim/agora/internal/domain"
)

const (
	critiqueBetaAlpha = 2.0
	critiqueBetaBeta  = 2.0
)

// processCritiqueEffects resolves a freshly filed critique. Effects only
// apply when the target essay, the critic, and the target's author are
// all still present; otherwise the critique stands as written and no
// random draw is consumed.
func (m *Model) processCritiqueEffects(critique *domain.Critique) {
	target, ok := m.essays.get(critique.TargetID)
	if !ok {
		return
	}
	critic, ok := m.agents.get(critique.CriticID)
	if !ok {
		return
	}
	author, ok := m.agents.get(target.AuthorID)
	if !ok {
		return
	}

	// The model's own persuasiveness draw is authoritative and replaces
	// whatever the evaluator scored.
	persuasiveness := m.rng.Beta(critiqueBetaAlpha, critiqueBetaBeta)
	m.applyCritiqueEffect(critique, critic, author, persuasiveness)
}

// applyCritiqueEffect applies the influence and belief consequences of a
// critique with a known persuasiveness: the critic earns a flat reward
// for engaging, the author gains or loses in proportion to stance and
// persuasiveness, and a sufficiently persuasive supportive critique
// pulls the author's beliefs toward the critic's.
func (m *Model) applyCritiqueEffect(critique *domain.Critique, critic, author *domain.Philosopher, persuasiveness float64) {
	critique.SetPersuasiveness(persuasiveness)

	critic.UpdateInfluence(criticReward)
	author.UpdateInfluence(persuasiveness * stanceWeight * float64(critique.Stance))
	author.ReceiveCritique(critique.ID)

	if persuasiveness > beliefNudgeGate && critique.Stance > 0 {
		author.UpdateBeliefs(critic.Beliefs, beliefNudgeScale*persuasiveness)
	}
}

// updateInfluences applies the per-tick influence drift to every live
// philosopher: a constant decay, plus citation credit for essays and
// persuasiveness credit for critiques written within the recent window.
func (m *Model) updateInfluences(ctx context.Context) {
	for _, p := range m.agents.all() {
		delta := baseDecay

		for _, id := range p.EssaysWritten {
			if e, ok := m.essays.get(id); ok && m.tick-e.Tick <= recentWindow {
				delta += float64(e.CitationCount) * citationBonus
			}
		}
		for _, id := range p.CritiquesWritten {
			if c, ok := m.critiques.get(id); ok && m.tick-c.Tick <= recentWindow {
				delta += c.Persuasiveness * persuasionBonus
			}
		}

		p.UpdateInfluence(delta)
		m.mirrorOp("update_influence", m.mirror.UpdateAgentInfluence(ctx, p.ID, p.Influence))
	}
}
