package domain

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// InitialInfluence is the influence every founding philosopher starts with.
	InitialInfluence = 1.0

	// MinInfluence is the floor below which influence can never fall.
	MinInfluence = 0.1

	deathInfluenceThreshold = 0.5
	deathInactiveTicks      = 12
)

// DescendantSuffix marks a philosopher born inside the simulation rather
// than seeded at startup. It stacks across generations.
const DescendantSuffix = "_descendant"

// DefaultPersonas is the roster initial populations cycle through.
var DefaultPersonas = []string{
	"Kantian", "Humean", "Aristotelian", "Nietzschean", "Cartesian",
	"Utilitarian", "Existentialist", "Stoic", "Empiricist", "Rationalist",
	"Pragmatist", "Phenomenologist", "Analytic", "Continental", "Buddhist",
	"Confucian", "Platonic", "Hegelian", "Spinozan", "Lockean",
}

// BasePersona strips any descendant suffixes, returning the ancestral persona.
func BasePersona(persona string) string {
	if i := strings.Index(persona, "_"); i >= 0 {
		return persona[:i]
	}
	return persona
}

// Philosopher is a single agent in the society. All mutation goes through
// methods so the influence floor and belief bounds hold at all times.
type Philosopher struct {
	ID                uuid.UUID
	Persona           string
	Beliefs           BeliefVector
	Influence         float64
	SchoolID          string // empty when unaffiliated
	BirthTick         int
	LastActivityTick  int
	EssaysWritten     []uuid.UUID
	CritiquesWritten  []uuid.UUID
	CritiquesReceived []uuid.UUID
	CitationCount     int
}

// NewPhilosopher creates a founding philosopher with the given persona and
// starting beliefs. Beliefs are clipped on entry.
func NewPhilosopher(persona string, beliefs BeliefVector, tick int) *Philosopher {
	beliefs.Clip()
	return &Philosopher{
		ID:               uuid.New(),
		Persona:          persona,
		Beliefs:          beliefs,
		Influence:        InitialInfluence,
		BirthTick:        tick,
		LastActivityTick: tick,
	}
}

// NewDescendant creates a child of parent with the given (already mutated)
// beliefs. The child inherits half the parent's influence and carries the
// parent's persona with a descendant suffix.
func NewDescendant(parent *Philosopher, beliefs BeliefVector, tick int) *Philosopher {
	beliefs.Clip()
	return &Philosopher{
		ID:               uuid.New(),
		Persona:          parent.Persona + DescendantSuffix,
		Beliefs:          beliefs,
		Influence:        parent.Influence * 0.5,
		BirthTick:        tick,
		LastActivityTick: tick,
	}
}

// UpdateInfluence applies delta, clamped so influence never drops below
// MinInfluence. There is no upper bound.
func (p *Philosopher) UpdateInfluence(delta float64) {
	p.Influence += delta
	if p.Influence < MinInfluence {
		p.Influence = MinInfluence
	}
}

// UpdateBeliefs shifts this philosopher's beliefs by weight*v,
// keeping every component within bounds.
func (p *Philosopher) UpdateBeliefs(v BeliefVector, weight float64) {
	p.Beliefs.AddScaled(v, weight)
}

// EligibleForDeath reports whether this philosopher qualifies for removal
// at the given tick: influence below the death threshold and no authored
// essay or critique for more than the inactivity window. The caller decides
// whether removal actually happens.
func (p *Philosopher) EligibleForDeath(tick int) bool {
	return p.Influence < deathInfluenceThreshold &&
		tick-p.LastActivityTick > deathInactiveTicks
}

// RecordEssay notes an authored essay and refreshes activity.
func (p *Philosopher) RecordEssay(id uuid.UUID, tick int) {
	p.EssaysWritten = append(p.EssaysWritten, id)
	p.LastActivityTick = tick
}

// RecordCritique notes an authored critique and refreshes activity.
func (p *Philosopher) RecordCritique(id uuid.UUID, tick int) {
	p.CritiquesWritten = append(p.CritiquesWritten, id)
	p.LastActivityTick = tick
}

// ReceiveCritique notes a critique targeting one of this philosopher's
// essays. Receiving is not activity.
func (p *Philosopher) ReceiveCritique(id uuid.UUID) {
	p.CritiquesReceived = append(p.CritiquesReceived, id)
}

// ReceiveCitation bumps the running count of citations to this
// philosopher's essays.
func (p *Philosopher) ReceiveCitation() {
	p.CitationCount++
}

func (p *Philosopher) Clone() *Philosopher {
	out := *p
	out.Beliefs = p.Beliefs.Clone()
	out.EssaysWritten = append([]uuid.UUID(nil), p.EssaysWritten...)
	out.CritiquesWritten = append([]uuid.UUID(nil), p.CritiquesWritten...)
	out.CritiquesReceived = append([]uuid.UUID(nil), p.CritiquesReceived...)
	return &out
}
