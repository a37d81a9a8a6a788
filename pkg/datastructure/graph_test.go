package datastructure

import (
	"testing"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestAddEdgeValidation(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		length float64
		count  int
	}{
		{"empty id", "", 10, 0},
		{"zero length", "E", 0, 0},
		{"negative length", "E", -3, 0},
		{"negative count", "E", 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewGraphBuilder()
			err := b.AddEdge(tt.id, tt.length, tt.count)
			require.Error(t, err)
			require.True(t, util.HasCode(err, util.ErrBadParamInput))
		})
	}
}

func TestAddEdgeRejectsDuplicateID(t *testing.T) {
	b := NewGraphBuilder()
	require.NoError(t, b.AddEdge("E", 10, 0))
	err := b.AddEdge("E", 20, 1)
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.ErrBadParamInput))
}

func TestConnectRejectsUnknownDirection(t *testing.T) {
	b := NewGraphBuilder()
	err := b.Connect("A", pkg.Direction(pkg.NUM_DIRECTIONS), "B")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.ErrBadParamInput))
}

func TestBuildRejectsDanglingConnection(t *testing.T) {
	b := NewGraphBuilder()
	require.NoError(t, b.AddEdge("A", 10, 0))
	require.NoError(t, b.Connect("A", pkg.STRAIGHT, "missing"))
	_, err := b.Build()
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.ErrNotFound))

	b = NewGraphBuilder()
	require.NoError(t, b.AddEdge("B", 10, 0))
	require.NoError(t, b.Connect("missing", pkg.STRAIGHT, "B"))
	_, err = b.Build()
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.ErrNotFound))
}

func TestBuildRejectsConflictingConnection(t *testing.T) {
	b := NewGraphBuilder()
	require.NoError(t, b.AddEdge("A", 10, 0))
	require.NoError(t, b.AddEdge("B", 10, 0))
	require.NoError(t, b.AddEdge("C", 10, 0))
	require.NoError(t, b.Connect("A", pkg.LEFT, "B"))
	require.NoError(t, b.Connect("A", pkg.LEFT, "C"))
	_, err := b.Build()
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.ErrBadParamInput))
}

func TestBuildToleratesRepeatedConnection(t *testing.T) {
	b := NewGraphBuilder()
	require.NoError(t, b.AddEdge("A", 10, 0))
	require.NoError(t, b.AddEdge("B", 10, 0))
	require.NoError(t, b.Connect("A", pkg.LEFT, "B"))
	require.NoError(t, b.Connect("A", pkg.LEFT, "B"))
	g, err := b.Build()
	require.NoError(t, err)

	a, err := g.EdgeIndex("A")
	require.NoError(t, err)
	require.Equal(t, Index(1), g.OutDegree(a))
}

func TestEdgeIndexUnknownID(t *testing.T) {
	b := NewGraphBuilder()
	require.NoError(t, b.AddEdge("A", 10, 0))
	g, err := b.Build()
	require.NoError(t, err)

	idx, err := g.EdgeIndex("nope")
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.ErrNotFound))
	require.Equal(t, INVALID_EDGE_INDEX, idx)
}

func TestOutgoingEdgeAndDeadEnds(t *testing.T) {
	b := NewGraphBuilder()
	require.NoError(t, b.AddEdge("A", 10, 2))
	require.NoError(t, b.AddEdge("B", 7, 0))
	require.NoError(t, b.Connect("A", pkg.RIGHT, "B"))
	g, err := b.Build()
	require.NoError(t, err)

	a, err := g.EdgeIndex("A")
	require.NoError(t, err)
	bIdx, err := g.EdgeIndex("B")
	require.NoError(t, err)

	to, ok := g.OutgoingEdge(a, pkg.RIGHT)
	require.True(t, ok)
	require.Equal(t, bIdx, to)

	_, ok = g.OutgoingEdge(a, pkg.STRAIGHT)
	require.False(t, ok)

	require.False(t, g.IsDeadEnd(a))
	require.True(t, g.IsDeadEnd(bIdx))
	require.Equal(t, 7.0, g.EdgeLength(bIdx))
	require.Equal(t, 2, g.VehicleCount(a))
}

func TestForOutgoingEdgesOfVisitsInRankOrder(t *testing.T) {
	b := NewGraphBuilder()
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, b.AddEdge(id, 10, 0))
	}
	// connect in scrambled order, iteration must still follow direction rank
	require.NoError(t, b.Connect("A", pkg.RIGHT, "B"))
	require.NoError(t, b.Connect("A", pkg.STRAIGHT, "C"))
	require.NoError(t, b.Connect("A", pkg.TURN_AROUND, "D"))
	g, err := b.Build()
	require.NoError(t, err)

	a, err := g.EdgeIndex("A")
	require.NoError(t, err)

	var visited []pkg.Direction
	g.ForOutgoingEdgesOf(a, func(d pkg.Direction, _ Index) {
		visited = append(visited, d)
	})
	require.Equal(t, []pkg.Direction{pkg.STRAIGHT, pkg.TURN_AROUND, pkg.RIGHT}, visited)
}

func TestForEdgesVisitsInArenaOrder(t *testing.T) {
	b := NewGraphBuilder()
	ids := []string{"z", "m", "a"}
	for _, id := range ids {
		require.NoError(t, b.AddEdge(id, 5, 0))
	}
	g, err := b.Build()
	require.NoError(t, err)

	var seen []string
	g.ForEdges(func(idx Index, e *Edge) {
		require.Equal(t, g.EdgeID(idx), e.GetID())
		seen = append(seen, e.GetID())
	})
	require.Equal(t, ids, seen)

	require.Equal(t, []string{"a", "m", "z"}, g.EdgeIDs())
}
