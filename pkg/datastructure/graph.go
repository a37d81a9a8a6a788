package datastructure

import (
	"math"
	"sort"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/util"
)

type Index uint32

const INVALID_EDGE_INDEX = Index(math.MaxUint32)

// Edge is a directed road segment, the unit node of the routing graph.
// Successor edges are addressed per turn direction; a hole in the outgoing
// array means the direction does not exist at this edge.
type Edge struct {
	id           string
	length       float64
	vehicleCount int
	outgoing     [pkg.NUM_DIRECTIONS]Index
	outDegree    Index
}

func (e *Edge) GetID() string {
	return e.id
}

func (e *Edge) GetLength() float64 {
	return e.length
}

func (e *Edge) GetVehicleCount() int {
	return e.vehicleCount
}

// Graph is one tick's frozen snapshot of the road network: edge lengths,
// live vehicle counts, and the outgoing direction map of every edge. It is
// never mutated after Build, so concurrent per-vehicle searches need no locks.
type Graph struct {
	edges     []Edge
	idToIndex map[string]Index
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

// EdgeIndex resolves an external edge identifier to its dense arena index.
// Unknown identifiers are a caller error: the driver only hands the core
// identifiers observed from the live simulation.
func (g *Graph) EdgeIndex(id string) (Index, error) {
	idx, ok := g.idToIndex[id]
	if !ok {
		return INVALID_EDGE_INDEX, util.WrapErrorf(nil, util.ErrNotFound, "edge %q not in snapshot", id)
	}
	return idx, nil
}

func (g *Graph) EdgeID(idx Index) string {
	return g.edges[idx].id
}

func (g *Graph) EdgeLength(idx Index) float64 {
	return g.edges[idx].length
}

func (g *Graph) VehicleCount(idx Index) int {
	return g.edges[idx].vehicleCount
}

func (g *Graph) OutDegree(idx Index) Index {
	return g.edges[idx].outDegree
}

func (g *Graph) IsDeadEnd(idx Index) bool {
	return g.edges[idx].outDegree == 0
}

// OutgoingEdge returns the successor reached by leaving idx in direction d,
// or (INVALID_EDGE_INDEX, false) when the direction does not exist here.
func (g *Graph) OutgoingEdge(idx Index, d pkg.Direction) (Index, bool) {
	to := g.edges[idx].outgoing[d]
	if to == INVALID_EDGE_INDEX {
		return INVALID_EDGE_INDEX, false
	}
	return to, true
}

// ForOutgoingEdgesOf visits the existing outgoing directions of idx in
// direction rank order, which keeps every traversal deterministic.
func (g *Graph) ForOutgoingEdgesOf(idx Index, fn func(d pkg.Direction, to Index)) {
	for _, d := range pkg.Directions() {
		if to := g.edges[idx].outgoing[d]; to != INVALID_EDGE_INDEX {
			fn(d, to)
		}
	}
}

// ForEdges visits every edge in arena order.
func (g *Graph) ForEdges(fn func(idx Index, e *Edge)) {
	for i := range g.edges {
		fn(Index(i), &g.edges[i])
	}
}

// GraphBuilder accumulates the per-tick snapshot handed over by the external
// driver and freezes it into a Graph. Build rejects snapshots whose outgoing
// maps reference unknown edges: silently continuing would corrupt distance
// accounting downstream.
type GraphBuilder struct {
	edges     []Edge
	idToIndex map[string]Index
	pending   []pendingConnection
}

type pendingConnection struct {
	fromID string
	toID   string
	dir    pkg.Direction
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		idToIndex: make(map[string]Index),
	}
}

func (b *GraphBuilder) AddEdge(id string, length float64, vehicleCount int) error {
	if id == "" {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge id must not be empty")
	}
	if length <= 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %q length %f must be positive", id, length)
	}
	if vehicleCount < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %q vehicle count %d must be non-negative", id, vehicleCount)
	}
	if _, dup := b.idToIndex[id]; dup {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %q added twice", id)
	}

	e := Edge{id: id, length: length, vehicleCount: vehicleCount}
	for d := range e.outgoing {
		e.outgoing[d] = INVALID_EDGE_INDEX
	}
	b.idToIndex[id] = Index(len(b.edges))
	b.edges = append(b.edges, e)
	return nil
}

// Connect records "leaving fromID in direction d arrives at toID". Targets
// may be connected before they are added; Build checks the references.
func (b *GraphBuilder) Connect(fromID string, d pkg.Direction, toID string) error {
	if d >= pkg.NUM_DIRECTIONS {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "direction %d out of range", d)
	}
	b.pending = append(b.pending, pendingConnection{fromID: fromID, toID: toID, dir: d})
	return nil
}

func (b *GraphBuilder) Build() (*Graph, error) {
	for _, c := range b.pending {
		from, ok := b.idToIndex[c.fromID]
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrNotFound, "connection references unknown edge %q", c.fromID)
		}
		to, ok := b.idToIndex[c.toID]
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrNotFound, "connection %q -%s-> %q references unknown edge", c.fromID, c.dir, c.toID)
		}
		e := &b.edges[from]
		if e.outgoing[c.dir] != INVALID_EDGE_INDEX && e.outgoing[c.dir] != to {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"edge %q direction %s connected twice", c.fromID, c.dir)
		}
		if e.outgoing[c.dir] == INVALID_EDGE_INDEX {
			e.outgoing[c.dir] = to
			e.outDegree++
		}
	}
	b.pending = nil

	g := &Graph{edges: b.edges, idToIndex: b.idToIndex}
	b.edges = nil
	b.idToIndex = nil
	return g, nil
}

// EdgeIDs returns every identifier in the snapshot, sorted, for stable
// serialization and test output.
func (g *Graph) EdgeIDs() []string {
	ids := make([]string, 0, len(g.edges))
	for i := range g.edges {
		ids = append(ids, g.edges[i].id)
	}
	sort.Strings(ids)
	return ids
}
