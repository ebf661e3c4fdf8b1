// Package sim runs the society itself: a discrete-time population of
// philosopher agents that write essays, critique each other, accumulate
// and lose influence, cluster into schools of thought, and die out or
// spawn descendants. All randomness flows through one injected source,
// so two models built with equal seeds and equal collaborators produce
// identical trajectories tick for tick.
package sim

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agorasim/agora/internal/domain"
	"github.com/agorasim/agora/internal/randx"
	"github.com/agorasim/agora/internal/schools"
)

// DefaultAgents is the initial population size when none is configured.
// It matches the persona roster length so every founding philosopher
// gets a distinct persona.
const DefaultAgents = 20

const (
	detectInterval    = 6
	lifecycleInterval = 12

	baseEssayProb    = 0.3
	baseCritiqueProb = 0.4
	influenceScale   = 10.0

	meanCitationsPerEssay = 2.0

	recentWindow     = 6
	baseDecay        = -0.01
	citationBonus    = 0.02
	persuasionBonus  = 0.01
	criticReward     = 0.05
	stanceWeight     = 0.1
	beliefNudgeGate  = 0.6
	beliefNudgeScale = 0.1

	birthInfluenceThreshold = 2.0
	populationGrowthCap     = 1.5
	mutationSigma           = 0.3

	minDetectPopulation = 3
)

// Params configures a Model. Zero values fall back to the defaults the
// society was tuned with.
type Params struct {
	Agents    int // initial population size
	BeliefDim int // belief vector dimensionality
}

func (p Params) withDefaults() Params {
	if p.Agents <= 0 {
		p.Agents = DefaultAgents
	}
	if p.BeliefDim <= 0 {
		p.BeliefDim = domain.DefaultBeliefDim
	}
	return p
}

// Model holds the full society state and advances it one tick at a time.
// It is not safe for concurrent use; callers that serve state while the
// model runs should publish snapshots through a StateHolder instead of
// sharing the model.
type Model struct {
	params Params
	rng    *randx.Source
	text   domain.TextService
	mirror domain.Mirror
	logger *zap.Logger

	detector *schools.Detector

	tick int

	agents    *registry[uuid.UUID, *domain.Philosopher]
	essays    *registry[uuid.UUID, *domain.Essay]
	critiques *registry[uuid.UUID, *domain.Critique]
	schools   *registry[string, *domain.School]

	agenda  domain.Agenda
	metrics []domain.TickMetrics
}

// NewModel builds a society and seeds its initial population. A nil rng
// falls back to a fixed-seed source; nil collaborators fall back to the
// no-op implementations, so the zero-dependency call
// NewModel(Params{}, nil, nil, nil, nil) yields a fully working model.
func NewModel(params Params, rng *randx.Source, text domain.TextService, mirror domain.Mirror, logger *zap.Logger) *Model {
	if rng == nil {
		rng = randx.New(0)
	}
	if text == nil {
		text = domain.NopTextService{}
	}
	if mirror == nil {
		mirror = domain.NopMirror{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		params:    params.withDefaults(),
		rng:       rng,
		text:      text,
		mirror:    mirror,
		logger:    logger,
		detector:  schools.NewDetector(rng, logger),
		agents:    newRegistry[uuid.UUID, *domain.Philosopher](),
		essays:    newRegistry[uuid.UUID, *domain.Essay](),
		critiques: newRegistry[uuid.UUID, *domain.Critique](),
		schools:   newRegistry[string, *domain.School](),
	}

	m.agenda = m.drawAgenda()
	m.seedPopulation(context.Background())
	return m
}

func (m *Model) seedPopulation(ctx context.Context) {
	for i := 0; i < m.params.Agents; i++ {
		persona := domain.DefaultPersonas[i%len(domain.DefaultPersonas)]
		beliefs := domain.BeliefVector(m.rng.NormalVector(m.params.BeliefDim, 0, 1))
		p := domain.NewPhilosopher(persona, beliefs, m.tick)
		m.agents.add(p.ID, p)
		m.mirrorOp("create_agent", m.mirror.CreateAgent(ctx, p))
	}
}

// Step advances the society by one tick: redraw the topic agenda, let
// every philosopher act in a freshly shuffled order, then settle the
// tick's consequences (influence drift, periodic school detection,
// periodic births and deaths) and record metrics.
func (m *Model) Step(ctx context.Context) {
	m.agenda = m.drawAgenda()

	for _, p := range m.activationOrder() {
		m.act(ctx, p)
	}

	m.tick++

	m.updateInfluences(ctx)

	if m.tick%detectInterval == 0 {
		m.detectSchools(ctx)
	}
	if m.tick%lifecycleInterval == 0 {
		m.applyDeaths()
		m.applyBirth(ctx)
	}

	m.collectMetrics()
}

func (m *Model) drawAgenda() domain.Agenda {
	weights := m.rng.Dirichlet(domain.TopicCount)
	agenda := make(domain.Agenda, domain.TopicCount)
	for i, t := range domain.Topics() {
		agenda[t] = weights[i]
	}
	return agenda
}

// activationOrder returns the live philosophers in a fresh random order.
// The shuffle is redrawn every tick.
func (m *Model) activationOrder() []*domain.Philosopher {
	order := m.agents.all()
	m.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// Tick reports the number of completed steps.
func (m *Model) Tick() int { return m.tick }

// AgentCount reports the live population size.
func (m *Model) AgentCount() int { return m.agents.size() }

// Agenda returns a copy of the topic agenda currently in force.
func (m *Model) Agenda() domain.Agenda { return m.agenda.Clone() }

// Snapshot captures a deep copy of the full society state. Mutating the
// returned value never touches the live model and vice versa.
func (m *Model) Snapshot() domain.ModelState {
	state := domain.ModelState{
		Tick:      m.tick,
		Agents:    make([]domain.PhilosopherState, 0, m.agents.size()),
		Essays:    make([]domain.Essay, 0, m.essays.size()),
		Critiques: make([]domain.Critique, 0, m.critiques.size()),
		Schools:   make([]domain.School, 0, m.schools.size()),
		Agenda:    m.agenda.Clone(),
	}
	for _, p := range m.agents.all() {
		state.Agents = append(state.Agents, p.State())
	}
	for _, e := range m.essays.all() {
		state.Essays = append(state.Essays, *e.Clone())
	}
	for _, c := range m.critiques.all() {
		state.Critiques = append(state.Critiques, *c.Clone())
	}
	for _, s := range m.schools.all() {
		state.Schools = append(state.Schools, *s.Clone())
	}
	return state
}

// mirrorOp logs and swallows a mirror failure. The mirror is an
// observer; it never stops the simulation.
func (m *Model) mirrorOp(op string, err error) {
	if err != nil {
		m.logger.Warn("mirror write failed",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
