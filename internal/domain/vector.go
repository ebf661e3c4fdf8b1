package domain

import (
	"gonum.org/v1/gonum/floats"
)

const (
	// BeliefMin and BeliefMax bound every component of a belief vector.
	BeliefMin = -5.0
	BeliefMax = 5.0

	// DefaultBeliefDim is the dimensionality of belief space unless configured otherwise.
	DefaultBeliefDim = 50
)

// BeliefVector is a point in belief space. The first TopicCount components
// double as the agent's affinity for each of the fixed topics.
type BeliefVector []float64

// Clip clamps every component into [BeliefMin, BeliefMax] in place.
func (b BeliefVector) Clip() {
	for i, v := range b {
		if v < BeliefMin {
			b[i] = BeliefMin
		} else if v > BeliefMax {
			b[i] = BeliefMax
		}
	}
}

// AddScaled adds weight*v to the receiver in place and re-clips.
// This is the only channel through which one agent's beliefs move another's.
func (b BeliefVector) AddScaled(v BeliefVector, weight float64) {
	floats.AddScaled(b, weight, v)
	b.Clip()
}

// Cosine returns the cosine similarity between b and v.
// A zero vector has similarity 0 to everything, not an error.
func (b BeliefVector) Cosine(v BeliefVector) float64 {
	nb := floats.Norm(b, 2)
	nv := floats.Norm(v, 2)
	if nb == 0 || nv == 0 {
		return 0
	}
	return floats.Dot(b, v) / (nb * nv)
}

func (b BeliefVector) Clone() BeliefVector {
	out := make(BeliefVector, len(b))
	copy(out, b)
	return out
}

// MeanVectors returns the component-wise mean of the given vectors,
// or nil if none are given.
func MeanVectors(vectors []BeliefVector) BeliefVector {
	if len(vectors) == 0 {
		return nil
	}
	mean := make(BeliefVector, len(vectors[0]))
	for _, v := range vectors {
		floats.Add(mean, v)
	}
	floats.Scale(1/float64(len(vectors)), mean)
	return mean
}
