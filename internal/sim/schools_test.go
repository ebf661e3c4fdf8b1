package sim

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/agorasim/agora/internal/domain"
	"github.com/agorasim/agora/internal/schools"
)

func idsOf(ps []*domain.Philosopher) []uuid.UUID {
	out := make([]uuid.UUID, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestDetectSchoolsShortCircuitsBelowMinimum(t *testing.T) {
	m := newTestModel(t, 41, Params{Agents: 2, BeliefDim: 10})
	ctx := context.Background()

	m.detectSchools(ctx)

	if got := m.schools.size(); got != 0 {
		t.Errorf("schools = %d with population 2, want 0", got)
	}
}

// With three philosophers pinned to identical beliefs, belief-space
// clustering must produce exactly one school on the first detection
// tick and never before it.
func TestSchoolAppearsOnDetectionTick(t *testing.T) {
	m := newTestModel(t, 42, Params{Agents: 3, BeliefDim: 10})
	ctx := context.Background()
	for _, p := range m.agents.all() {
		zeroBeliefs(p)
	}

	for i := 1; i <= 5; i++ {
		m.Step(ctx)
		if got := len(m.Snapshot().Schools); got != 0 {
			t.Fatalf("schools = %d at tick %d, detection runs only every 6", got, i)
		}
	}

	m.Step(ctx)
	snap := m.Snapshot()
	if len(snap.Schools) != 1 {
		t.Fatalf("schools = %d after tick 6, want 1", len(snap.Schools))
	}

	school := snap.Schools[0]
	if school.ID != "school_0" {
		t.Errorf("school id = %q, want school_0", school.ID)
	}
	if len(school.MemberIDs) != 3 {
		t.Errorf("school members = %d, want 3", len(school.MemberIDs))
	}
	if school.Manifesto == "" {
		t.Error("school manifesto empty")
	}
	if school.FoundingTick != 6 {
		t.Errorf("founding tick = %d, want 6", school.FoundingTick)
	}
	for _, p := range snap.Agents {
		if p.SchoolID != "school_0" {
			t.Errorf("agent %v school = %q, want school_0", p.ID, p.SchoolID)
		}
	}
}

func TestReconcileSchoolsMembershipIsReplaced(t *testing.T) {
	m := newTestModel(t, 43, Params{Agents: 5, BeliefDim: 10})
	ctx := context.Background()
	agents := m.agents.all()

	m.tick = 6
	m.reconcileSchools(ctx, []schools.Cluster{
		{ID: "school_0", MemberIDs: idsOf(agents[:3])},
	})

	school, ok := m.schools.get("school_0")
	if !ok {
		t.Fatal("school_0 not created")
	}
	if len(school.MemberIDs) != 3 {
		t.Fatalf("members = %d, want 3", len(school.MemberIDs))
	}
	manifesto := school.Manifesto
	if school.FoundingTick != 6 {
		t.Errorf("founding tick = %d, want 6", school.FoundingTick)
	}
	for _, p := range agents[:3] {
		if p.SchoolID != "school_0" {
			t.Errorf("member %v school = %q, want school_0", p.ID, p.SchoolID)
		}
	}

	// Next cycle the same label covers a different trio: membership is
	// replaced wholesale, identity (founding tick, manifesto) is kept,
	// and the dropped member loses its affiliation.
	m.tick = 12
	m.reconcileSchools(ctx, []schools.Cluster{
		{ID: "school_0", MemberIDs: idsOf(agents[2:5])},
	})

	school, _ = m.schools.get("school_0")
	if len(school.MemberIDs) != 3 {
		t.Fatalf("members after replacement = %d, want 3", len(school.MemberIDs))
	}
	if school.MemberIDs[0] != agents[2].ID {
		t.Errorf("first member = %v, want %v", school.MemberIDs[0], agents[2].ID)
	}
	if school.FoundingTick != 6 {
		t.Errorf("founding tick changed to %d on re-detection, want 6", school.FoundingTick)
	}
	if school.Manifesto != manifesto {
		t.Error("manifesto rewritten on re-detection")
	}
	if agents[0].SchoolID != "" || agents[1].SchoolID != "" {
		t.Errorf("dropped members keep school = %q/%q, want cleared",
			agents[0].SchoolID, agents[1].SchoolID)
	}
	for _, p := range agents[2:5] {
		if p.SchoolID != "school_0" {
			t.Errorf("member %v school = %q, want school_0", p.ID, p.SchoolID)
		}
	}
}

func TestReconcileSchoolsDissolvesMissingLabels(t *testing.T) {
	m := newTestModel(t, 44, Params{Agents: 6, BeliefDim: 10})
	ctx := context.Background()
	agents := m.agents.all()

	m.tick = 6
	m.reconcileSchools(ctx, []schools.Cluster{
		{ID: "school_0", MemberIDs: idsOf(agents[:3])},
		{ID: "school_1", MemberIDs: idsOf(agents[3:6])},
	})
	if got := m.schools.size(); got != 2 {
		t.Fatalf("schools = %d, want 2", got)
	}

	m.tick = 12
	m.reconcileSchools(ctx, []schools.Cluster{
		{ID: "school_0", MemberIDs: idsOf(agents[:3])},
	})

	if got := m.schools.size(); got != 1 {
		t.Fatalf("schools = %d after dissolution, want 1", got)
	}
	if _, ok := m.schools.get("school_1"); ok {
		t.Error("school_1 still present, want dissolved")
	}
	for _, p := range agents[3:6] {
		if p.SchoolID != "" {
			t.Errorf("agent %v school = %q after dissolution, want cleared", p.ID, p.SchoolID)
		}
	}

	m.tick = 18
	m.reconcileSchools(ctx, nil)
	if got := m.schools.size(); got != 0 {
		t.Errorf("schools = %d after empty detection, want 0", got)
	}
	for _, p := range agents {
		if p.SchoolID != "" {
			t.Errorf("agent %v school = %q after empty detection, want cleared", p.ID, p.SchoolID)
		}
	}
}

func TestReconcileSchoolsMembershipDisjoint(t *testing.T) {
	m := newTestModel(t, 45, Params{Agents: 9, BeliefDim: 10})
	ctx := context.Background()
	agents := m.agents.all()

	m.tick = 6
	m.reconcileSchools(ctx, []schools.Cluster{
		{ID: "school_0", MemberIDs: idsOf(agents[:4])},
		{ID: "school_1", MemberIDs: idsOf(agents[4:8])},
	})

	seen := make(map[string]string)
	for _, s := range m.schools.all() {
		for _, id := range s.MemberIDs {
			if prior, dup := seen[id.String()]; dup {
				t.Errorf("agent %v in both %s and %s", id, prior, s.ID)
			}
			seen[id.String()] = s.ID
		}
	}
	if got := len(seen); got != 8 {
		t.Errorf("assigned members = %d, want 8", got)
	}
}

func TestRefreshSchoolFitness(t *testing.T) {
	m := newTestModel(t, 46, Params{Agents: 3, BeliefDim: 10})
	ctx := context.Background()
	agents := m.agents.all()

	// One member essay with quality 0.5 and 4 citations received; member
	// influences 1.0, 2.0, 3.0.
	essay := domain.NewEssay(agents[0], domain.TopicEthics, nil, 0)
	essay.SetScores(0.5, 0.8)
	m.addEssay(ctx, essay)
	for i := 0; i < 4; i++ {
		essay.AddCitation()
	}
	agents[1].Influence = 2.0
	agents[2].Influence = 3.0

	m.tick = 6
	m.reconcileSchools(ctx, []schools.Cluster{
		{ID: "school_0", MemberIDs: idsOf(agents)},
	})

	school, _ := m.schools.get("school_0")
	want := 0.4*0.5 + 0.3*(4.0/10.0) + 0.3*2.0
	if !closeTo(school.Fitness, want) {
		t.Errorf("fitness = %v, want %v", school.Fitness, want)
	}

	// Doctrine is the mean of the members' current beliefs.
	if len(school.Doctrine) != 10 {
		t.Fatalf("doctrine dim = %d, want 10", len(school.Doctrine))
	}
	var wantFirst float64
	for _, p := range agents {
		wantFirst += p.Beliefs[0]
	}
	wantFirst /= 3
	if !closeTo(school.Doctrine[0], wantFirst) {
		t.Errorf("doctrine[0] = %v, want %v", school.Doctrine[0], wantFirst)
	}
}
