// Package schools detects emergent schools of thought from the citation
// topology and belief geometry of the current population.
package schools

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/agorasim/agora/internal/domain"
)

const (
	// DefaultEps is the DBSCAN neighborhood radius in belief space.
	DefaultEps = 0.5
	// DefaultMinSamples is the minimum school size; smaller groups are
	// never emitted by any phase.
	DefaultMinSamples = 3

	cohesionThreshold = 0.7
	louvainResolution = 1.0
)

// Member is one live philosopher presented to the detector. Input order is
// part of the contract: output is deterministic given member order, edges,
// and the detector's random source.
type Member struct {
	ID      uuid.UUID
	Beliefs domain.BeliefVector
}

// CitationEdge is one citation event projected onto authors: the citing
// essay's author refers to the cited essay's author. Duplicates accumulate
// as edge weight. Edges naming unknown members are ignored.
type CitationEdge struct {
	From uuid.UUID
	To   uuid.UUID
}

// Cluster is one detected school candidate. IDs are synthetic labels
// assigned in output order; identity across detection cycles is carried by
// label reappearance, not by membership.
type Cluster struct {
	ID        string
	MemberIDs []uuid.UUID
}

type Detector struct {
	eps        float64
	minSamples int
	src        rand.Source
	logger     *zap.Logger
}

// NewDetector builds a detector with the default radius and minimum school
// size. The random source seeds the modularity search; the logger receives
// phase failures, which degrade that phase to empty rather than erroring.
func NewDetector(src rand.Source, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		eps:        DefaultEps,
		minSamples: DefaultMinSamples,
		src:        src,
		logger:     logger,
	}
}

// Detect runs the three-phase detection: Louvain communities over the
// citation graph, DBSCAN over belief space, then a merge that claims each
// member at most once, graph clusters first. Leftover members are swept
// into cohesive groups by average pairwise cosine similarity. Members the
// phases cannot place stay unassigned.
func (d *Detector) Detect(members []Member, edges []CitationEdge) []Cluster {
	if len(members) < d.minSamples {
		return nil
	}

	graphClusters := d.citationClusters(members, edges)
	beliefClusters := d.beliefClusters(members)

	return d.merge(members, graphClusters, beliefClusters)
}

// citationClusters partitions members via Louvain modularity over the
// weighted undirected citation graph. Only members that cite or are cited
// appear as nodes; a graph of fewer than three nodes yields nothing.
func (d *Detector) citationClusters(members []Member, edges []CitationEdge) (clusters [][]int) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("citation clustering failed", zap.Any("panic", r))
			clusters = nil
		}
	}()

	if len(edges) == 0 {
		return nil
	}

	index := make(map[uuid.UUID]int64, len(members))
	for i, m := range members {
		index[m.ID] = int64(i)
	}

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, e := range edges {
		uid, uok := index[e.From]
		vid, vok := index[e.To]
		if !uok || !vok || uid == vid {
			continue
		}
		w := 1.0
		if existing := g.WeightedEdge(uid, vid); existing != nil {
			w += existing.Weight()
		}
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(uid), T: simple.Node(vid), W: w})
	}

	if g.Nodes().Len() < DefaultMinSamples {
		return nil
	}

	reduced := community.Modularize(g, louvainResolution, d.src)
	for _, comm := range reduced.Communities() {
		if len(comm) < d.minSamples {
			continue
		}
		idx := make([]int, 0, len(comm))
		for _, n := range comm {
			idx = append(idx, int(n.ID()))
		}
		sort.Ints(idx)
		clusters = append(clusters, idx)
	}

	sort.Slice(clusters, func(i, j int) bool { return clusters[i][0] < clusters[j][0] })
	return clusters
}

// beliefClusters groups members by belief-space density. DBSCAN noise is
// excluded here; unplaced members get another chance in the cohesive sweep.
func (d *Detector) beliefClusters(members []Member) (clusters [][]int) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("belief clustering failed", zap.Any("panic", r))
			clusters = nil
		}
	}()

	if len(members) < d.minSamples {
		return nil
	}

	points := make([]domain.BeliefVector, len(members))
	for i, m := range members {
		points[i] = m.Beliefs
	}

	return dbscan{eps: d.eps, minPts: d.minSamples}.cluster(points)
}

// merge resolves overlapping cluster claims. Graph clusters claim first,
// then belief clusters; a cluster survives only if its still-unclaimed
// subset meets the minimum size. The leftover pool is then swept for
// cohesive groups.
func (d *Detector) merge(members []Member, graphClusters, beliefClusters [][]int) []Cluster {
	claimed := make([]bool, len(members))
	var out []Cluster
	counter := 0

	emit := func(idx []int) {
		ids := make([]uuid.UUID, len(idx))
		for i, m := range idx {
			ids[i] = members[m].ID
			claimed[m] = true
		}
		out = append(out, Cluster{ID: fmt.Sprintf("school_%d", counter), MemberIDs: ids})
		counter++
	}

	for _, cl := range append(append([][]int{}, graphClusters...), beliefClusters...) {
		var avail []int
		for _, idx := range cl {
			if !claimed[idx] {
				avail = append(avail, idx)
			}
		}
		if len(avail) >= d.minSamples {
			emit(avail)
		}
	}

	var remaining []int
	for i := range members {
		if !claimed[i] {
			remaining = append(remaining, i)
		}
	}
	if len(remaining) >= d.minSamples {
		for _, group := range d.cohesiveGroups(members, remaining) {
			emit(group)
		}
	}

	return out
}

// cohesiveGroups greedily grows groups from the leftover pool: the first
// unclaimed member seeds a group, and each later candidate joins if its
// mean cosine similarity to the group's current members exceeds the
// threshold. Undersized groups release their non-seed members back to the
// pool; the seed itself is spent either way.
func (d *Detector) cohesiveGroups(members []Member, pool []int) [][]int {
	pool = append([]int(nil), pool...)
	var groups [][]int

	for len(pool) >= d.minSamples {
		seed := pool[0]
		group := []int{seed}
		admitted := map[int]bool{seed: true}

		for _, cand := range pool[1:] {
			total := 0.0
			for _, m := range group {
				total += members[cand].Beliefs.Cosine(members[m].Beliefs)
			}
			if total/float64(len(group)) > cohesionThreshold {
				group = append(group, cand)
				admitted[cand] = true
			}
		}

		next := pool[:0]
		if len(group) >= d.minSamples {
			groups = append(groups, group)
			for _, idx := range pool[1:] {
				if !admitted[idx] {
					next = append(next, idx)
				}
			}
		} else {
			next = append(next, pool[1:]...)
		}
		pool = next
	}

	return groups
}
