package domain

// Topic is one of the fixed philosophical discourse categories.
type Topic string

const (
	TopicEthics       Topic = "ethics"
	TopicEpistemology Topic = "epistemology"
	TopicMetaphysics  Topic = "metaphysics"
	TopicAesthetics   Topic = "aesthetics"
	TopicPolitical    Topic = "political_philosophy"
	TopicMind         Topic = "philosophy_of_mind"
	TopicLogic        Topic = "logic"
)

// TopicCount is the number of fixed topics. The first TopicCount components
// of a belief vector carry per-topic affinity.
const TopicCount = 7

// Topics returns the fixed topic list in canonical order. The order matters:
// index i corresponds to belief vector component i.
func Topics() []Topic {
	return []Topic{
		TopicEthics,
		TopicEpistemology,
		TopicMetaphysics,
		TopicAesthetics,
		TopicPolitical,
		TopicMind,
		TopicLogic,
	}
}

func ValidTopic(t string) bool {
	switch Topic(t) {
	case TopicEthics, TopicEpistemology, TopicMetaphysics, TopicAesthetics,
		TopicPolitical, TopicMind, TopicLogic:
		return true
	}
	return false
}

// Agenda is the society-wide topic fashion signal for a single tick,
// a weight per topic summing to 1. It is redrawn fresh every tick rather
// than smoothed across ticks.
type Agenda map[Topic]float64

// Dominant returns the topic with the highest agenda weight, breaking ties
// by canonical topic order. An empty agenda defaults to ethics.
func (a Agenda) Dominant() Topic {
	best := TopicEthics
	bestW := -1.0
	for _, t := range Topics() {
		if w, ok := a[t]; ok && w > bestW {
			best = t
			bestW = w
		}
	}
	return best
}

func (a Agenda) Clone() Agenda {
	out := make(Agenda, len(a))
	for t, w := range a {
		out[t] = w
	}
	return out
}
