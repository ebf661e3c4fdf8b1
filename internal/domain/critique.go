package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Stance is the direction of a critique. There is no neutral stance and no
// magnitude gradation.
type Stance int

const (
	StanceSupport Stance = 1
	StanceOppose  Stance = -1
)

func (s Stance) Valid() bool {
	return s == StanceSupport || s == StanceOppose
}

// Critique is a directed response to one essay. The persuasiveness score is
// mutated exactly once after creation, when effects are processed.
type Critique struct {
	ID             uuid.UUID    `json:"id"`
	CriticID       uuid.UUID    `json:"critic_id"`
	TargetID       uuid.UUID    `json:"target_id"`
	Stance         Stance       `json:"stance"`
	Tick           int          `json:"tick"`
	BeliefContext  BeliefVector `json:"belief_vector"`
	Text           string       `json:"text"`
	Persuasiveness float64      `json:"persuasiveness_score"`
}

// NewCritique builds a critique of target by critic at the given tick,
// snapshotting the critic's beliefs.
func NewCritique(critic *Philosopher, targetID uuid.UUID, stance Stance, tick int) *Critique {
	return &Critique{
		ID:            uuid.New(),
		CriticID:      critic.ID,
		TargetID:      targetID,
		Stance:        stance,
		Tick:          tick,
		BeliefContext: critic.Beliefs.Clone(),
		Text:          PlaceholderCritiqueText(stance),
	}
}

// SetText replaces the critique body, keeping the placeholder if text is empty.
func (c *Critique) SetText(text string) {
	if text != "" {
		c.Text = text
	}
}

// SetPersuasiveness records the score used for influence effects.
func (c *Critique) SetPersuasiveness(score float64) {
	c.Persuasiveness = score
}

func (c *Critique) Clone() *Critique {
	out := *c
	out.BeliefContext = c.BeliefContext.Clone()
	return &out
}

// PlaceholderCritiqueText produces a deterministic critique body from the
// stance alone.
func PlaceholderCritiqueText(stance Stance) string {
	stanceWord := "supports"
	counter := ""
	if stance < 0 {
		stanceWord = "challenges"
		counter = "counter-"
	}
	return fmt.Sprintf(
		"This critique strongly %s the central thesis of the target essay, offering %sarguments "+
			"that draw from established philosophical traditions and contemporary scholarship.",
		stanceWord, counter,
	)
}
