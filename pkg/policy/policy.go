package policy

import (
	"context"

	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/engine/routing"
)

// RoutingPolicy turns one tick's vehicle batch and frozen graph snapshot into
// the per-vehicle local target map. Implementations carry no state across
// ticks; a tick's output is a pure function of its inputs. Vehicles left out
// of the map fall back to the external driver's own handling.
type RoutingPolicy interface {
	Name() string
	MakeDecisions(ctx context.Context, vehicles []da.Vehicle, graph *da.Graph) (da.LocalTargetMap, BatchStats, error)
}

// BatchStats summarizes one tick's batch for evaluation output. Vehicles is
// the batch size handed in, Assigned the mapped vehicles, Skipped the ones
// left to the driver (unknown edges, dead-end origins).
type BatchStats struct {
	Vehicles int
	Assigned int
	Skipped  int
	Rerouted int
	Outcomes [routing.NUM_RESOLVE_STATUSES]int
}

func (s *BatchStats) countOutcome(status routing.ResolveStatus) {
	s.Outcomes[status]++
}

// decision is one vehicle's outcome inside a tick.
type decision struct {
	vehicleID string
	target    string
	status    routing.ResolveStatus
	rerouted  bool
	err       error
}

// resolveVehicleEdges maps the vehicle's edge ids onto the snapshot arena.
// An unknown id is a data-integrity fault of the external driver, reported
// per vehicle so the rest of the batch still gets targets.
func resolveVehicleEdges(g *da.Graph, v da.Vehicle) (da.Index, da.Index, error) {
	src, err := g.EdgeIndex(v.CurrentEdge)
	if err != nil {
		return 0, 0, err
	}
	dst, err := g.EdgeIndex(v.Destination)
	if err != nil {
		return 0, 0, err
	}
	return src, dst, nil
}
