package routing

import (
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
)

// Planner runs Dijkstra over a graph whose search nodes are the edges
// themselves. Distance accumulates the lengths of edges entered, including
// the source edge's own length as the starting cost, so two routes to the
// same edge compare by total road covered.
type Planner struct {
	engine *DecisionEngine

	dist      []float64
	plans     []da.DirectionPlan
	settled   []bool
	heapNodes []*da.PriorityQueueNode[da.Index]

	pq *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewPlanner(engine *DecisionEngine) *Planner {
	return &Planner{
		engine: engine,
		pq:     da.NewFourAryHeap[da.Index](),
	}
}

// PlanDirections returns the direction sequence recorded for the destination
// at termination, empty when the destination is unreachable. The returned
// plan is never aliased by the search arenas, callers may hold it after the
// planner is recycled.
func (p *Planner) PlanDirections(source, destination da.Index) da.DirectionPlan {
	p.Preallocate()
	graph := p.engine.graph

	p.dist[source] = graph.EdgeLength(source)
	sNode := da.NewPriorityQueueNode(p.dist[source], source)
	p.heapNodes[source] = sNode
	p.pq.Insert(sNode)

	for !p.pq.IsEmpty() {
		uNode, err := p.pq.ExtractMin()
		if err != nil {
			break
		}
		u := uNode.GetItem()
		p.settled[u] = true
		p.numSettledNodes++
		if u == destination {
			break
		}

		graph.ForOutgoingEdgesOf(u, func(d pkg.Direction, v da.Index) {
			if p.settled[v] {
				return
			}
			newDist := p.dist[u] + graph.EdgeLength(v)
			if newDist >= p.dist[v] {
				return
			}

			// value copy, so plans recorded for other edges never alias
			// the tail we are extending here
			p.plans[v] = p.plans[u].Extend(d)

			alreadyLabelled := p.dist[v] < pkg.INF_WEIGHT
			p.dist[v] = newDist
			if alreadyLabelled {
				p.pq.DecreaseKey(p.heapNodes[v], newDist)
			} else {
				vNode := da.NewPriorityQueueNode(newDist, v)
				p.heapNodes[v] = vNode
				p.pq.Insert(vNode)
			}
		})
	}

	if !p.settled[destination] {
		return da.DirectionPlan{}
	}
	return p.plans[destination]
}

// PlannedLength reports the settled distance of the last search's
// destination, INF_WEIGHT when it was unreachable.
func (p *Planner) PlannedLength(destination da.Index) float64 {
	return p.dist[destination]
}

func (p *Planner) Preallocate() {
	numberOfEdges := p.engine.graph.NumberOfEdges()
	p.dist = make([]float64, numberOfEdges)
	p.plans = make([]da.DirectionPlan, numberOfEdges)
	p.settled = make([]bool, numberOfEdges)
	p.heapNodes = make([]*da.PriorityQueueNode[da.Index], numberOfEdges)
	for i := range p.dist {
		p.dist[i] = pkg.INF_WEIGHT
	}
	p.pq.Preallocate(numberOfEdges)
	p.numSettledNodes = 0
}
