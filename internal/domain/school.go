package domain

import "github.com/google/uuid"

// School is a detected community of thought. Schools are recomputed
// wholesale every detection cycle: membership is replaced, not merged, and
// a school whose label stops appearing is dissolved outright. A label that
// reappears keeps its founding tick and manifesto.
type School struct {
	ID           string       `json:"id"`
	Manifesto    string       `json:"manifesto"`
	MemberIDs    []uuid.UUID  `json:"member_ids"`
	Doctrine     BeliefVector `json:"doctrine_vector"`
	Fitness      float64      `json:"fitness"`
	FoundingTick int          `json:"founding_tick"`
}

func NewSchool(id string, agenda Agenda, tick int) *School {
	return &School{
		ID:           id,
		Manifesto:    GenerateManifesto(agenda),
		FoundingTick: tick,
	}
}

// SetMembers replaces the membership list and recomputes the doctrine
// vector as the mean of the members' current beliefs.
func (s *School) SetMembers(memberIDs []uuid.UUID, beliefs []BeliefVector) {
	s.MemberIDs = memberIDs
	if doctrine := MeanVectors(beliefs); doctrine != nil {
		s.Doctrine = doctrine
	}
}

// UpdateFitness scores the school from its members' output:
// mean essay quality weighted 0.4, citations received (capped) weighted 0.3,
// and mean member influence (capped) weighted 0.3.
func (s *School) UpdateFitness(meanEssayQuality float64, citationsReceived int, meanInfluence float64) {
	citationFactor := float64(citationsReceived) / 10.0
	if citationFactor > 2.0 {
		citationFactor = 2.0
	}
	influenceFactor := meanInfluence
	if influenceFactor > 5.0 {
		influenceFactor = 5.0
	}
	s.Fitness = meanEssayQuality*0.4 + citationFactor*0.3 + influenceFactor*0.3
}

func (s *School) Clone() *School {
	out := *s
	out.MemberIDs = append([]uuid.UUID(nil), s.MemberIDs...)
	out.Doctrine = s.Doctrine.Clone()
	return &out
}

var manifestosByTopic = map[Topic]string{
	TopicEthics:       "We hold that moral truth emerges through rigorous examination of duty and consequence",
	TopicEpistemology: "Knowledge must be grounded in systematic inquiry and critical reflection",
	TopicMetaphysics:  "Reality reveals itself through careful analysis of being and existence",
	TopicAesthetics:   "Beauty and artistic value demand philosophical understanding and appreciation",
	TopicPolitical:    "Just governance requires philosophical foundations and ethical principles",
	TopicMind:         "Consciousness and mental phenomena merit dedicated philosophical investigation",
	TopicLogic:        "Rational argument and valid inference form the bedrock of philosophical discourse",
}

const defaultManifesto = "We seek truth through philosophical inquiry and debate"

// GenerateManifesto derives a founding manifesto from the agenda in force
// when the school forms, keyed on the dominant topic.
func GenerateManifesto(agenda Agenda) string {
	if m, ok := manifestosByTopic[agenda.Dominant()]; ok {
		return m
	}
	return defaultManifesto
}
