package sim

import "github.com/agorasim/agora/internal/domain"

// collectMetrics appends one row to the per-tick series. Called at the
// end of every step, after all of the tick's consequences have settled.
func (m *Model) collectMetrics() {
	var meanInfluence float64
	if n := m.agents.size(); n > 0 {
		for _, p := range m.agents.all() {
			meanInfluence += p.Influence
		}
		meanInfluence /= float64(n)
	}

	m.metrics = append(m.metrics, domain.TickMetrics{
		Tick:           m.tick,
		ActiveAgents:   m.agents.size(),
		TotalEssays:    m.essays.size(),
		TotalCritiques: m.critiques.size(),
		TotalSchools:   m.schools.size(),
		MeanInfluence:  meanInfluence,
	})
}

// Series returns a copy of the metrics collected so far, one row per
// completed tick.
func (m *Model) Series() []domain.TickMetrics {
	out := make([]domain.TickMetrics, len(m.metrics))
	copy(out, m.metrics)
	return out
}
