package routing

import (
	"testing"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"go.uber.org/zap"
)

type testEdge struct {
	id     string
	length float64
	count  int
	out    map[pkg.Direction]string
}

func buildGraph(t *testing.T, edges []testEdge) *da.Graph {
	t.Helper()
	b := da.NewGraphBuilder()
	for _, e := range edges {
		if err := b.AddEdge(e.id, e.length, e.count); err != nil {
			t.Fatalf("add edge %s: %v", e.id, err)
		}
	}
	for _, e := range edges {
		for d, to := range e.out {
			if err := b.Connect(e.id, d, to); err != nil {
				t.Fatalf("connect %s -%s-> %s: %v", e.id, d, to, err)
			}
		}
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func mustIndex(t *testing.T, g *da.Graph, id string) da.Index {
	t.Helper()
	idx, err := g.EdgeIndex(id)
	if err != nil {
		t.Fatalf("edge %s: %v", id, err)
	}
	return idx
}

func newTestEngine(t *testing.T, g *da.Graph) *DecisionEngine {
	t.Helper()
	return NewDecisionEngine(g, zap.NewNop(), DefaultOptions())
}

// planWalkLength replays a plan from src and returns the accumulated length,
// including the source edge's own length, failing the test on any step that
// is not present in the graph.
func planWalkLength(t *testing.T, g *da.Graph, src, dst da.Index, plan da.DirectionPlan) float64 {
	t.Helper()
	total := g.EdgeLength(src)
	at := src
	for _, d := range plan {
		to, ok := g.OutgoingEdge(at, d)
		if !ok {
			t.Fatalf("plan step %s not available from %s", d, g.EdgeID(at))
		}
		at = to
		total += g.EdgeLength(to)
	}
	if at != dst {
		t.Fatalf("plan %s ends at %s, want %s", plan, g.EdgeID(at), g.EdgeID(dst))
	}
	return total
}

// bruteForceShortest enumerates all simple walks from src to dst and returns
// the minimum accumulated length under the same metric as the planner.
func bruteForceShortest(g *da.Graph, src, dst da.Index) float64 {
	visited := make([]bool, g.NumberOfEdges())
	best := pkg.INF_WEIGHT

	var dfs func(at da.Index, acc float64)
	dfs = func(at da.Index, acc float64) {
		if acc >= best {
			return
		}
		if at == dst {
			best = acc
			return
		}
		visited[at] = true
		g.ForOutgoingEdgesOf(at, func(d pkg.Direction, to da.Index) {
			if visited[to] {
				return
			}
			dfs(to, acc+g.EdgeLength(to))
		})
		visited[at] = false
	}
	dfs(src, g.EdgeLength(src))
	return best
}
