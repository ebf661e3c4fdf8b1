package schools

import (
	"gonum.org/v1/gonum/floats"

	"github.com/agorasim/agora/internal/domain"
)

// dbscan is density-based clustering over belief space with Euclidean
// distance. Output clusters hold point indices in ascending order; noise
// points appear in no cluster.
type dbscan struct {
	eps    float64
	minPts int
}

const (
	labelNone  = 0
	labelNoise = -1
)

func (d dbscan) cluster(points []domain.BeliefVector) [][]int {
	labels := make([]int, len(points))
	clusterID := 0

	for i := range points {
		if labels[i] != labelNone {
			continue
		}

		neighbors := d.neighborhood(points, i)
		if len(neighbors) < d.minPts {
			labels[i] = labelNoise
			continue
		}

		clusterID++
		labels[i] = clusterID

		// Breadth-first expansion from the core point. Noise points reached
		// here become border members; core neighbors extend the frontier.
		queue := append([]int(nil), neighbors...)
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if labels[j] == labelNoise {
				labels[j] = clusterID
			}
			if labels[j] != labelNone {
				continue
			}
			labels[j] = clusterID

			jn := d.neighborhood(points, j)
			if len(jn) >= d.minPts {
				queue = append(queue, jn...)
			}
		}
	}

	clusters := make([][]int, clusterID)
	for i, l := range labels {
		if l > 0 {
			clusters[l-1] = append(clusters[l-1], i)
		}
	}
	return clusters
}

// neighborhood returns every point within eps of points[i], including i itself.
func (d dbscan) neighborhood(points []domain.BeliefVector, i int) []int {
	var out []int
	for j := range points {
		if floats.Distance(points[i], points[j], 2) <= d.eps {
			out = append(out, j)
		}
	}
	return out
}
