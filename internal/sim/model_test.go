package sim

import (
	"context"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/agorasim/agora/internal/domain"
	"github.com/agorasim/agora/internal/randx"
)

func newTestModel(t *testing.T, seed uint64, params Params) *Model {
	t.Helper()
	return NewModel(params, randx.New(seed), nil, nil, zap.NewNop())
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewModelSeedsPopulation(t *testing.T) {
	m := newTestModel(t, 1, Params{})

	if got := m.AgentCount(); got != DefaultAgents {
		t.Fatalf("agent count = %d, want %d", got, DefaultAgents)
	}
	if got := m.Tick(); got != 0 {
		t.Errorf("tick = %d, want 0", got)
	}

	for i, p := range m.agents.all() {
		want := domain.DefaultPersonas[i%len(domain.DefaultPersonas)]
		if p.Persona != want {
			t.Errorf("agent %d persona = %q, want %q", i, p.Persona, want)
		}
		if len(p.Beliefs) != domain.DefaultBeliefDim {
			t.Errorf("agent %d belief dim = %d, want %d", i, len(p.Beliefs), domain.DefaultBeliefDim)
		}
		if p.Influence != domain.InitialInfluence {
			t.Errorf("agent %d influence = %v, want %v", i, p.Influence, domain.InitialInfluence)
		}
	}
}

func TestNewModelWrapsPersonaRoster(t *testing.T) {
	m := newTestModel(t, 1, Params{Agents: 23})

	agents := m.agents.all()
	if len(agents) != 23 {
		t.Fatalf("agent count = %d, want 23", len(agents))
	}
	if got, want := agents[20].Persona, domain.DefaultPersonas[0]; got != want {
		t.Errorf("agent 20 persona = %q, want %q", got, want)
	}
	if got, want := agents[22].Persona, domain.DefaultPersonas[2]; got != want {
		t.Errorf("agent 22 persona = %q, want %q", got, want)
	}
}

func TestStepAdvancesTickAndMetrics(t *testing.T) {
	m := newTestModel(t, 2, Params{Agents: 5, BeliefDim: 10})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		m.Step(ctx)
	}

	if got := m.Tick(); got != 4 {
		t.Fatalf("tick = %d, want 4", got)
	}

	series := m.Series()
	if len(series) != 4 {
		t.Fatalf("series length = %d, want 4", len(series))
	}
	for i, row := range series {
		if row.Tick != i+1 {
			t.Errorf("series[%d].Tick = %d, want %d", i, row.Tick, i+1)
		}
		if row.ActiveAgents != 5 {
			t.Errorf("series[%d].ActiveAgents = %d, want 5", i, row.ActiveAgents)
		}
		if row.MeanInfluence <= 0 {
			t.Errorf("series[%d].MeanInfluence = %v, want > 0", i, row.MeanInfluence)
		}
	}

	last := series[len(series)-1]
	snap := m.Snapshot()
	if last.TotalEssays != len(snap.Essays) {
		t.Errorf("last row essays = %d, snapshot has %d", last.TotalEssays, len(snap.Essays))
	}
	if last.TotalCritiques != len(snap.Critiques) {
		t.Errorf("last row critiques = %d, snapshot has %d", last.TotalCritiques, len(snap.Critiques))
	}
}

func TestAgendaRedrawnEachStep(t *testing.T) {
	m := newTestModel(t, 3, Params{Agents: 4, BeliefDim: 10})
	ctx := context.Background()

	before := m.Agenda()
	assertAgendaWellFormed(t, before)

	m.Step(ctx)

	after := m.Agenda()
	assertAgendaWellFormed(t, after)

	same := true
	for topic, w := range before {
		if !closeTo(after[topic], w) {
			same = false
			break
		}
	}
	if same {
		t.Error("agenda unchanged after step, want a fresh draw")
	}

	snap := m.Snapshot()
	for topic, w := range after {
		if !closeTo(snap.Agenda[topic], w) {
			t.Errorf("snapshot agenda[%s] = %v, model has %v", topic, snap.Agenda[topic], w)
		}
	}
}

func assertAgendaWellFormed(t *testing.T, agenda domain.Agenda) {
	t.Helper()
	if len(agenda) != domain.TopicCount {
		t.Fatalf("agenda has %d topics, want %d", len(agenda), domain.TopicCount)
	}
	var sum float64
	for topic, w := range agenda {
		if w < 0 {
			t.Errorf("agenda[%s] = %v, want >= 0", topic, w)
		}
		sum += w
	}
	if !closeTo(sum, 1) {
		t.Errorf("agenda weights sum to %v, want 1", sum)
	}
}

// Two models built from equal seeds and equal parameters must produce
// identical trajectories. Entity ids differ between runs, so the
// comparison is positional over every run-determined field.
func TestSameSeedSameTrajectory(t *testing.T) {
	params := Params{Agents: 12, BeliefDim: 10}
	a := newTestModel(t, 42, params)
	b := newTestModel(t, 42, params)
	ctx := context.Background()

	for i := 0; i < 26; i++ {
		a.Step(ctx)
		b.Step(ctx)
	}

	sa, sb := a.Snapshot(), b.Snapshot()

	if sa.Tick != sb.Tick {
		t.Fatalf("ticks diverged: %d vs %d", sa.Tick, sb.Tick)
	}
	if len(sa.Agents) != len(sb.Agents) {
		t.Fatalf("agent counts diverged: %d vs %d", len(sa.Agents), len(sb.Agents))
	}
	for i := range sa.Agents {
		pa, pb := sa.Agents[i], sb.Agents[i]
		if pa.Persona != pb.Persona {
			t.Errorf("agent %d persona diverged: %q vs %q", i, pa.Persona, pb.Persona)
		}
		if !closeTo(pa.Influence, pb.Influence) {
			t.Errorf("agent %d influence diverged: %v vs %v", i, pa.Influence, pb.Influence)
		}
		for j := range pa.Beliefs {
			if !closeTo(pa.Beliefs[j], pb.Beliefs[j]) {
				t.Errorf("agent %d belief %d diverged: %v vs %v", i, j, pa.Beliefs[j], pb.Beliefs[j])
				break
			}
		}
		if pa.EssayCount != pb.EssayCount || pa.CritiquesWritten != pb.CritiquesWritten {
			t.Errorf("agent %d output diverged: %d/%d vs %d/%d",
				i, pa.EssayCount, pa.CritiquesWritten, pb.EssayCount, pb.CritiquesWritten)
		}
	}

	if len(sa.Essays) != len(sb.Essays) {
		t.Fatalf("essay counts diverged: %d vs %d", len(sa.Essays), len(sb.Essays))
	}
	for i := range sa.Essays {
		ea, eb := sa.Essays[i], sb.Essays[i]
		if ea.Topic != eb.Topic || ea.Tick != eb.Tick || ea.CitationCount != eb.CitationCount {
			t.Errorf("essay %d diverged: %s/%d/%d vs %s/%d/%d",
				i, ea.Topic, ea.Tick, ea.CitationCount, eb.Topic, eb.Tick, eb.CitationCount)
		}
		if len(ea.Citations) != len(eb.Citations) {
			t.Errorf("essay %d citation counts diverged: %d vs %d", i, len(ea.Citations), len(eb.Citations))
		}
		if ea.Text != eb.Text {
			t.Errorf("essay %d text diverged", i)
		}
	}

	if len(sa.Critiques) != len(sb.Critiques) {
		t.Fatalf("critique counts diverged: %d vs %d", len(sa.Critiques), len(sb.Critiques))
	}
	for i := range sa.Critiques {
		ca, cb := sa.Critiques[i], sb.Critiques[i]
		if ca.Stance != cb.Stance || ca.Tick != cb.Tick {
			t.Errorf("critique %d diverged: %d/%d vs %d/%d", i, ca.Stance, ca.Tick, cb.Stance, cb.Tick)
		}
		if !closeTo(ca.Persuasiveness, cb.Persuasiveness) {
			t.Errorf("critique %d persuasiveness diverged: %v vs %v", i, ca.Persuasiveness, cb.Persuasiveness)
		}
	}

	if len(sa.Schools) != len(sb.Schools) {
		t.Fatalf("school counts diverged: %d vs %d", len(sa.Schools), len(sb.Schools))
	}
	for i := range sa.Schools {
		qa, qb := sa.Schools[i], sb.Schools[i]
		if qa.ID != qb.ID || len(qa.MemberIDs) != len(qb.MemberIDs) {
			t.Errorf("school %d diverged: %s(%d) vs %s(%d)",
				i, qa.ID, len(qa.MemberIDs), qb.ID, len(qb.MemberIDs))
		}
		if !closeTo(qa.Fitness, qb.Fitness) {
			t.Errorf("school %d fitness diverged: %v vs %v", i, qa.Fitness, qb.Fitness)
		}
	}

	seriesA, seriesB := a.Series(), b.Series()
	if len(seriesA) != len(seriesB) {
		t.Fatalf("series lengths diverged: %d vs %d", len(seriesA), len(seriesB))
	}
	for i := range seriesA {
		ra, rb := seriesA[i], seriesB[i]
		if ra.Tick != rb.Tick || ra.ActiveAgents != rb.ActiveAgents ||
			ra.TotalEssays != rb.TotalEssays || ra.TotalCritiques != rb.TotalCritiques ||
			ra.TotalSchools != rb.TotalSchools || !closeTo(ra.MeanInfluence, rb.MeanInfluence) {
			t.Errorf("series row %d diverged: %+v vs %+v", i, ra, rb)
		}
	}
}

func TestSnapshotIsolation(t *testing.T) {
	m := newTestModel(t, 7, Params{Agents: 6, BeliefDim: 10})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		m.Step(ctx)
	}

	snap := m.Snapshot()
	tickAt := snap.Tick
	essaysAt := len(snap.Essays)
	influenceAt := snap.Agents[0].Influence

	// Advancing the model must not reach back into the taken snapshot.
	for i := 0; i < 5; i++ {
		m.Step(ctx)
	}
	if snap.Tick != tickAt || len(snap.Essays) != essaysAt {
		t.Error("snapshot mutated by subsequent steps")
	}
	if !closeTo(snap.Agents[0].Influence, influenceAt) {
		t.Error("snapshot agent influence mutated by subsequent steps")
	}

	// Mutating the snapshot must not reach into the model.
	live := m.agents.all()[0]
	liveBelief := live.Beliefs[0]
	fresh := m.Snapshot()
	fresh.Agents[0].Beliefs[0] = 99
	if !closeTo(live.Beliefs[0], liveBelief) {
		t.Error("mutating snapshot beliefs leaked into the model")
	}
	if len(fresh.Essays) > 0 {
		fresh.Essays[0].CitationCount = 1000
		if got := m.essays.all()[0].CitationCount; got == 1000 {
			t.Error("mutating snapshot essay leaked into the model")
		}
	}
}

func TestSeriesReturnsCopy(t *testing.T) {
	m := newTestModel(t, 8, Params{Agents: 4, BeliefDim: 10})
	ctx := context.Background()
	m.Step(ctx)

	series := m.Series()
	if len(series) != 1 {
		t.Fatalf("series length = %d, want 1", len(series))
	}
	series[0].TotalEssays = 12345

	if got := m.Series()[0].TotalEssays; got == 12345 {
		t.Error("mutating returned series leaked into the model")
	}
}

// Births only happen on lifecycle ticks. With every philosopher far
// above the parent threshold and a population below the growth cap, the
// first birth must land exactly on tick 12.
func TestLifecycleCadence(t *testing.T) {
	m := newTestModel(t, 9, Params{Agents: 3, BeliefDim: 10})
	ctx := context.Background()

	for _, p := range m.agents.all() {
		p.Influence = 5.0
	}

	for i := 1; i <= 11; i++ {
		m.Step(ctx)
		if got := m.AgentCount(); got != 3 {
			t.Fatalf("population changed to %d at tick %d, lifecycle runs only every 12", got, i)
		}
	}

	m.Step(ctx)
	if got := m.AgentCount(); got != 4 {
		t.Fatalf("population = %d after tick 12, want 4 (one birth)", got)
	}

	var child *domain.Philosopher
	for _, p := range m.agents.all() {
		if p.Persona != domain.BasePersona(p.Persona) {
			child = p
		}
	}
	if child == nil {
		t.Fatal("no descendant found after birth tick")
	}
	if child.BirthTick != 12 {
		t.Errorf("child birth tick = %d, want 12", child.BirthTick)
	}
}
