package sim

import (
	"context"

	"go.uber.org/zap"

	"github.com/agorasim/agora/internal/domain"
)

// applyDeaths removes every philosopher who is both weak and inactive.
// Their essays and critiques stay in the record: dead philosophers keep
// being cited and critiqued, they just stop responding.
func (m *Model) applyDeaths() {
	var dead []*domain.Philosopher
	for _, p := range m.agents.all() {
		if p.EligibleForDeath(m.tick) {
			dead = append(dead, p)
		}
	}
	for _, p := range dead {
		m.agents.remove(p.ID)
		m.logger.Info("philosopher died",
			zap.String("agent_id", p.ID.String()),
			zap.String("persona", p.Persona),
			zap.Float64("influence", p.Influence),
			zap.Int("tick", m.tick),
		)
	}
}

// applyBirth spawns at most one descendant per lifecycle turn: a
// uniformly chosen high-influence parent produces a child with mutated
// beliefs and half the parent's influence, as long as the population
// stays under the growth cap.
func (m *Model) applyBirth(ctx context.Context) {
	var parents []*domain.Philosopher
	for _, p := range m.agents.all() {
		if p.Influence > birthInfluenceThreshold {
			parents = append(parents, p)
		}
	}
	if len(parents) == 0 {
		return
	}
	if float64(m.agents.size()) >= populationGrowthCap*float64(m.params.Agents) {
		return
	}

	parent := parents[m.rng.IntN(len(parents))]

	beliefs := parent.Beliefs.Clone()
	beliefs.AddScaled(m.rng.NormalVector(m.params.BeliefDim, 0, mutationSigma), 1)

	child := domain.NewDescendant(parent, beliefs, m.tick)
	m.agents.add(child.ID, child)
	m.mirrorOp("create_agent", m.mirror.CreateAgent(ctx, child))

	m.logger.Info("philosopher born",
		zap.String("agent_id", child.ID.String()),
		zap.String("persona", child.Persona),
		zap.String("parent_id", parent.ID.String()),
		zap.Int("tick", m.tick),
	)
}
