package datastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/util"
	"github.com/stretchr/testify/require"
)

func sampleGraph(t *testing.T, counts map[string]int) *Graph {
	t.Helper()
	b := NewGraphBuilder()
	require.NoError(t, b.AddEdge("A", 12.5, counts["A"]))
	require.NoError(t, b.AddEdge("B", 30, counts["B"]))
	require.NoError(t, b.AddEdge("C", 7.25, counts["C"]))
	require.NoError(t, b.Connect("A", pkg.STRAIGHT, "B"))
	require.NoError(t, b.Connect("A", pkg.LEFT, "C"))
	require.NoError(t, b.Connect("B", pkg.TURN_AROUND, "A"))
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestSnapshotRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "ticks.bz2")

	ticks := []TickRecord{
		NewTickRecord(0, sampleGraph(t, map[string]int{"A": 3}), []Vehicle{
			NewVehicle("veh0", "A", "C", 120, 13.9),
			NewVehicle("veh1", "B", "A", 45.5, 0),
		}),
		NewTickRecord(1, sampleGraph(t, map[string]int{"A": 4, "C": 1}), []Vehicle{
			NewVehicle("veh0", "B", "C", 119, 27.75),
		}),
		NewTickRecord(2, sampleGraph(t, nil), nil),
	}

	w, err := NewSnapshotWriter(filename, len(ticks))
	require.NoError(t, err)
	for _, rec := range ticks {
		require.NoError(t, w.AppendTick(rec))
	}
	require.NoError(t, w.Close())

	r, err := NewSnapshotReader(filename)
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, len(ticks), r.NumTicks())

	for _, want := range ticks {
		got, err := r.NextTick()
		require.NoError(t, err)
		require.Equal(t, want.Tick, got.Tick)
		require.Len(t, got.Vehicles, len(want.Vehicles))
		for i, v := range want.Vehicles {
			require.Equal(t, v, got.Vehicles[i])
		}

		require.Equal(t, want.Graph.EdgeIDs(), got.Graph.EdgeIDs())
		for _, id := range want.Graph.EdgeIDs() {
			wi, err := want.Graph.EdgeIndex(id)
			require.NoError(t, err)
			gi, err := got.Graph.EdgeIndex(id)
			require.NoError(t, err)
			require.Equal(t, want.Graph.EdgeLength(wi), got.Graph.EdgeLength(gi))
			require.Equal(t, want.Graph.VehicleCount(wi), got.Graph.VehicleCount(gi))
			require.Equal(t, want.Graph.OutDegree(wi), got.Graph.OutDegree(gi))
			want.Graph.ForOutgoingEdgesOf(wi, func(d pkg.Direction, to Index) {
				gotTo, ok := got.Graph.OutgoingEdge(gi, d)
				require.True(t, ok)
				require.Equal(t, want.Graph.EdgeID(to), got.Graph.EdgeID(gotTo))
			})
		}
	}

	_, err = r.NextTick()
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.ErrNotFound))
}

func TestAppendTickRejectsWhitespaceIDs(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "ticks.bz2")
	w, err := NewSnapshotWriter(filename, 1)
	require.NoError(t, err)
	defer w.Close()

	b := NewGraphBuilder()
	require.NoError(t, b.AddEdge("has space", 10, 0))
	g, err := b.Build()
	require.NoError(t, err)

	err = w.AppendTick(NewTickRecord(0, g, nil))
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.ErrBadParamInput))
}

func TestAppendTickRejectsWhitespaceVehicleID(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "ticks.bz2")
	w, err := NewSnapshotWriter(filename, 1)
	require.NoError(t, err)
	defer w.Close()

	g := sampleGraph(t, nil)
	err = w.AppendTick(NewTickRecord(0, g, []Vehicle{NewVehicle("bad id", "A", "B", 10, 0)}))
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.ErrBadParamInput))
}

func TestSnapshotReaderRejectsGarbage(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "ticks.txt")
	require.NoError(t, os.WriteFile(filename, []byte("not bzip2 data"), 0644))

	_, err := NewSnapshotReader(filename)
	require.Error(t, err)
}

func TestParseEdgeLineShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "A 10 0"},
		{"bad length", "A ten 0 0"},
		{"out degree mismatch", "A 10 0 2 s B"},
		{"unknown direction", "A 10 0 1 x B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseEdgeLine(NewGraphBuilder(), tt.line)
			require.Error(t, err)
		})
	}
}

func TestParseVehicleLineShapeErrors(t *testing.T) {
	_, err := parseVehicleLine("veh0 A B 120")
	require.Error(t, err)
	_, err = parseVehicleLine("veh0 A B soon 5")
	require.Error(t, err)
}
