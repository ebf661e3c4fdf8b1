package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Essay is an immutable piece of writing except for two controlled
// mutations: CitationCount grows as later essays cite it, and the quality
// and novelty scores are set once after creation.
type Essay struct {
	ID              uuid.UUID    `json:"id"`
	AuthorID        uuid.UUID    `json:"author_id"`
	Tick            int          `json:"tick"`
	Topic           Topic        `json:"topic"`
	Citations       []uuid.UUID  `json:"citations"`
	BeliefContext   BeliefVector `json:"belief_vector"`
	Text            string       `json:"text"`
	QualityScore    float64      `json:"quality_score"`
	NoveltyScore    float64      `json:"novelty_score"`
	CitationCount   int          `json:"citation_count"`
	AuthorInfluence float64      `json:"author_influence"`
}

// NewEssay builds an essay for the given author at the given tick.
// The belief context is snapshotted; later belief drift does not touch it.
// Text defaults to a deterministic template until a text service fills it.
func NewEssay(author *Philosopher, topic Topic, citations []uuid.UUID, tick int) *Essay {
	e := &Essay{
		ID:              uuid.New(),
		AuthorID:        author.ID,
		Tick:            tick,
		Topic:           topic,
		Citations:       citations,
		BeliefContext:   author.Beliefs.Clone(),
		AuthorInfluence: author.Influence,
	}
	e.Text = PlaceholderEssayText(author.Persona, topic, len(citations))
	return e
}

// SetText replaces the essay body, keeping the placeholder if text is empty.
func (e *Essay) SetText(text string) {
	if text != "" {
		e.Text = text
	}
}

// SetScores records the one-time quality and novelty evaluation.
func (e *Essay) SetScores(quality, novelty float64) {
	e.QualityScore = quality
	e.NoveltyScore = novelty
}

// AddCitation bumps the received-citation count. It only ever goes up.
func (e *Essay) AddCitation() {
	e.CitationCount++
}

func (e *Essay) Clone() *Essay {
	out := *e
	out.Citations = append([]uuid.UUID(nil), e.Citations...)
	out.BeliefContext = e.BeliefContext.Clone()
	return &out
}

// essayOpenings maps ancestral personas to a characteristic argumentative
// move used in placeholder essay text.
var essayOpenings = map[string]string{
	"Kantian":        "argues that the categorical imperative demands",
	"Humean":         "observes that experience suggests",
	"Aristotelian":   "maintains that virtue ethics requires",
	"Nietzschean":    "boldly proclaims that traditional values must",
	"Cartesian":      "through methodical doubt concludes that",
	"Utilitarian":    "calculates that the greatest good demands",
	"Existentialist": "authentically chooses to believe that",
	"Stoic":          "with equanimity accepts that nature dictates",
}

const defaultEssayOpening = "contends through careful reasoning that"

// PlaceholderEssayText produces a deterministic essay body from the author's
// persona, the topic, and the citation count. It is used whenever no text
// service is available or the service yields nothing.
func PlaceholderEssayText(persona string, topic Topic, citations int) string {
	opening, ok := essayOpenings[BasePersona(persona)]
	if !ok {
		opening = defaultEssayOpening
	}
	return fmt.Sprintf(
		"On the matter of %s, this philosopher %s a reconsideration of fundamental assumptions. "+
			"Drawing from previous scholarship, this work builds upon %d cited sources to advance "+
			"our understanding of this crucial philosophical domain.",
		topic, opening, citations,
	)
}
