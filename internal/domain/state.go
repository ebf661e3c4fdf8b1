package domain

import "github.com/google/uuid"

// PhilosopherState is the read-only serialized view of a live philosopher.
// Artifact id lists are reduced to counts.
type PhilosopherState struct {
	ID                uuid.UUID    `json:"id"`
	Persona           string       `json:"persona"`
	Beliefs           BeliefVector `json:"belief_vector"`
	Influence         float64      `json:"influence"`
	SchoolID          string       `json:"school_id,omitempty"`
	BirthTick         int          `json:"birth_tick"`
	EssayCount        int          `json:"essays_count"`
	CritiquesWritten  int          `json:"critiques_written"`
	CritiquesReceived int          `json:"critiques_received"`
	CitationCount     int          `json:"citation_count"`
}

// State reduces a philosopher to its serialized view, copying the beliefs.
func (p *Philosopher) State() PhilosopherState {
	return PhilosopherState{
		ID:                p.ID,
		Persona:           p.Persona,
		Beliefs:           p.Beliefs.Clone(),
		Influence:         p.Influence,
		SchoolID:          p.SchoolID,
		BirthTick:         p.BirthTick,
		EssayCount:        len(p.EssaysWritten),
		CritiquesWritten:  len(p.CritiquesWritten),
		CritiquesReceived: len(p.CritiquesReceived),
		CitationCount:     p.CitationCount,
	}
}

// ModelState is a fully settled, deep-copied view of the simulation after
// some tick. Mutating the live model never changes an already-taken state,
// and mutating a state never reaches back into the model.
type ModelState struct {
	Tick      int                `json:"tick"`
	Agents    []PhilosopherState `json:"agents"`
	Essays    []Essay            `json:"essays"`
	Critiques []Critique         `json:"critiques"`
	Schools   []School           `json:"schools"`
	Agenda    Agenda             `json:"topic_agenda"`
}

// TickMetrics is one row of the per-tick series collected at the end of
// every step.
type TickMetrics struct {
	Tick           int     `json:"tick"`
	ActiveAgents   int     `json:"active_agents"`
	TotalEssays    int     `json:"total_essays"`
	TotalCritiques int     `json:"total_critiques"`
	TotalSchools   int     `json:"total_schools"`
	MeanInfluence  float64 `json:"average_influence"`
}
