package domain

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateManifesto(t *testing.T) {
	agenda := Agenda{
		TopicEthics:       0.1,
		TopicEpistemology: 0.6,
		TopicMetaphysics:  0.3,
	}

	got := GenerateManifesto(agenda)
	if got != manifestosByTopic[TopicEpistemology] {
		t.Errorf("manifesto = %q, want the epistemology line", got)
	}

	// Empty agenda falls back to the ethics line via the default dominant topic.
	if got := GenerateManifesto(Agenda{}); got != manifestosByTopic[TopicEthics] {
		t.Errorf("empty-agenda manifesto = %q", got)
	}
}

func TestAgendaDominantTieBreaksByCanonicalOrder(t *testing.T) {
	agenda := Agenda{
		TopicLogic:       0.5,
		TopicMetaphysics: 0.5,
	}
	// metaphysics precedes logic in canonical topic order
	if got := agenda.Dominant(); got != TopicMetaphysics {
		t.Errorf("Dominant() = %v, want metaphysics", got)
	}
}

func TestUpdateFitness(t *testing.T) {
	tests := []struct {
		name      string
		quality   float64
		citations int
		influence float64
		want      float64
	}{
		{"typical", 0.5, 5, 2.0, 0.5*0.4 + 0.5*0.3 + 2.0*0.3},
		{"citation factor capped at 2", 0.0, 100, 0.0, 2.0 * 0.3},
		{"influence factor capped at 5", 0.0, 0, 12.0, 5.0 * 0.3},
		{"all zero", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &School{ID: "school_0"}
			s.UpdateFitness(tt.quality, tt.citations, tt.influence)
			if math.Abs(s.Fitness-tt.want) > 1e-12 {
				t.Errorf("fitness = %v, want %v", s.Fitness, tt.want)
			}
		})
	}
}

func TestSetMembersRecomputesDoctrine(t *testing.T) {
	s := NewSchool("school_1", Agenda{TopicLogic: 1}, 6)

	members := []uuid.UUID{uuid.New(), uuid.New()}
	beliefs := []BeliefVector{{1, 3}, {3, 1}}
	s.SetMembers(members, beliefs)

	if len(s.MemberIDs) != 2 {
		t.Fatalf("members = %d, want 2", len(s.MemberIDs))
	}
	if s.Doctrine[0] != 2 || s.Doctrine[1] != 2 {
		t.Errorf("doctrine = %v, want [2 2]", s.Doctrine)
	}
	if s.FoundingTick != 6 {
		t.Errorf("founding tick = %d, want 6", s.FoundingTick)
	}
	if s.Manifesto != manifestosByTopic[TopicLogic] {
		t.Errorf("manifesto = %q", s.Manifesto)
	}

	// Replacement, not merge: a later detection pass swaps the list wholesale.
	s.SetMembers(members[:1], beliefs[:1])
	if len(s.MemberIDs) != 1 {
		t.Errorf("members after replacement = %d, want 1", len(s.MemberIDs))
	}
	if s.Doctrine[0] != 1 || s.Doctrine[1] != 3 {
		t.Errorf("doctrine after replacement = %v, want [1 3]", s.Doctrine)
	}
}
