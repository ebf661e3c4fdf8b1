package sim

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agorasim/agora/internal/domain"
	"github.com/agorasim/agora/internal/schools"
)

// detectSchools reruns community detection over the live population and
// reconciles the school roster against the result. Membership is
// replaced wholesale: a school whose label stops appearing dissolves,
// and a philosopher left out of every cluster loses its affiliation.
func (m *Model) detectSchools(ctx context.Context) {
	if m.agents.size() < minDetectPopulation {
		return
	}

	live := m.agents.all()
	members := make([]schools.Member, 0, len(live))
	for _, p := range live {
		members = append(members, schools.Member{ID: p.ID, Beliefs: p.Beliefs})
	}

	// Citation edges run author-to-author. Edges involving dead authors
	// are dropped inside the detector, but the citations themselves stay
	// on record.
	var edges []schools.CitationEdge
	for _, e := range m.essays.all() {
		for _, citedID := range e.Citations {
			cited, ok := m.essays.get(citedID)
			if !ok {
				continue
			}
			edges = append(edges, schools.CitationEdge{
				From: e.AuthorID,
				To:   cited.AuthorID,
			})
		}
	}

	m.reconcileSchools(ctx, m.detector.Detect(members, edges))
}

func (m *Model) reconcileSchools(ctx context.Context, clusters []schools.Cluster) {
	assigned := make(map[uuid.UUID]string)
	seen := make(map[string]bool, len(clusters))

	for _, cluster := range clusters {
		seen[cluster.ID] = true

		school, ok := m.schools.get(cluster.ID)
		if !ok {
			school = domain.NewSchool(cluster.ID, m.agenda, m.tick)
			m.schools.add(school.ID, school)
			m.mirrorOp("create_school", m.mirror.CreateSchool(ctx, school))
			m.logger.Info("school founded",
				zap.String("school_id", school.ID),
				zap.Int("members", len(cluster.MemberIDs)),
				zap.Int("tick", m.tick),
			)
		}

		beliefs := make([]domain.BeliefVector, 0, len(cluster.MemberIDs))
		for _, id := range cluster.MemberIDs {
			if p, ok := m.agents.get(id); ok {
				beliefs = append(beliefs, p.Beliefs)
			}
		}

		school.SetMembers(cluster.MemberIDs, beliefs)
		m.refreshSchoolFitness(school)

		for _, id := range cluster.MemberIDs {
			assigned[id] = school.ID
		}
	}

	for _, label := range m.schools.keys() {
		if !seen[label] {
			m.schools.remove(label)
			m.logger.Info("school dissolved", zap.String("school_id", label), zap.Int("tick", m.tick))
		}
	}

	for _, p := range m.agents.all() {
		label := assigned[p.ID]
		if p.SchoolID == label {
			continue
		}
		p.SchoolID = label
		if label != "" {
			m.mirrorOp("add_agent_to_school", m.mirror.AddAgentToSchool(ctx, p.ID, label))
		}
	}
}

// refreshSchoolFitness rescores a school from its current members'
// essays and influence.
func (m *Model) refreshSchoolFitness(s *domain.School) {
	memberSet := make(map[uuid.UUID]bool, len(s.MemberIDs))
	var influenceSum float64
	var influenceN int
	for _, id := range s.MemberIDs {
		memberSet[id] = true
		if p, ok := m.agents.get(id); ok {
			influenceSum += p.Influence
			influenceN++
		}
	}

	var qualitySum float64
	var citations, essayN int
	for _, e := range m.essays.all() {
		if memberSet[e.AuthorID] {
			qualitySum += e.QualityScore
			citations += e.CitationCount
			essayN++
		}
	}

	var meanQuality, meanInfluence float64
	if essayN > 0 {
		meanQuality = qualitySum / float64(essayN)
	}
	if influenceN > 0 {
		meanInfluence = influenceSum / float64(influenceN)
	}
	s.UpdateFitness(meanQuality, citations, meanInfluence)
}
