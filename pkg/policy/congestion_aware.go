package policy

import (
	"context"
	"sort"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/concurrent"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/engine/routing"
	"go.uber.org/zap"
)

// CongestionAwarePolicy plans a minimum length path per vehicle, diverts the
// first step away from saturated edges, and resolves each plan to a local
// target. Vehicles are grouped by current edge with each group ordered by
// deadline before the batch fans out over the worker pool.
type CongestionAwarePolicy struct {
	logger     *zap.Logger
	opts       routing.Options
	numWorkers int
}

func NewCongestionAwarePolicy(logger *zap.Logger, opts routing.Options, numWorkers int) *CongestionAwarePolicy {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &CongestionAwarePolicy{
		logger:     logger,
		opts:       opts,
		numWorkers: numWorkers,
	}
}

func (p *CongestionAwarePolicy) Name() string {
	return "congestion_aware"
}

func (p *CongestionAwarePolicy) MakeDecisions(ctx context.Context, vehicles []da.Vehicle, graph *da.Graph) (da.LocalTargetMap, BatchStats, error) {
	engine := routing.NewDecisionEngine(graph, p.logger, p.opts)
	ordered := p.orderByEdgeAndDeadline(vehicles, graph)

	wp := concurrent.NewWorkerPool[da.Vehicle, decision](p.numWorkers, len(ordered))
	for _, v := range ordered {
		wp.AddJob(v)
	}
	wp.Close()
	wp.StartWithContext(ctx, func(v da.Vehicle) decision {
		return decideOne(engine, graph, v)
	})
	wp.Wait()

	stats := BatchStats{Vehicles: len(vehicles)}
	targets := make(da.LocalTargetMap, len(ordered))
	for res := range wp.CollectResults() {
		if res.err != nil {
			p.logger.Warn("skipping vehicle with unknown edge",
				zap.String("vehicle", res.vehicleID), zap.Error(res.err))
			continue
		}
		targets[res.vehicleID] = res.target
		stats.Assigned++
		stats.countOutcome(res.status)
		if res.rerouted {
			stats.Rerouted++
		}
	}
	stats.Skipped = stats.Vehicles - stats.Assigned
	if err := ctx.Err(); err != nil {
		return targets, stats, err
	}
	return targets, stats, nil
}

// orderByEdgeAndDeadline groups the batch by current edge and sorts each
// group earliest deadline first. The ordering establishes a servicing
// priority only; resolution treats each vehicle independently once grouped.
// Vehicles parked on a dead end are left unassigned so the driver's own
// fallback applies.
func (p *CongestionAwarePolicy) orderByEdgeAndDeadline(vehicles []da.Vehicle, graph *da.Graph) []da.Vehicle {
	groups := make(map[da.Index][]da.Vehicle)
	seen := make([]da.Index, 0)
	for _, v := range vehicles {
		src, err := graph.EdgeIndex(v.CurrentEdge)
		if err != nil {
			p.logger.Warn("skipping vehicle with unknown current edge",
				zap.String("vehicle", v.ID), zap.String("edge", v.CurrentEdge))
			continue
		}
		if graph.IsDeadEnd(src) {
			p.logger.Debug("vehicle on dead end left to driver fallback",
				zap.String("vehicle", v.ID), zap.String("edge", v.CurrentEdge))
			continue
		}
		if _, ok := groups[src]; !ok {
			seen = append(seen, src)
		}
		groups[src] = append(groups[src], v)
	}

	ordered := make([]da.Vehicle, 0, len(vehicles))
	for _, edge := range seen {
		group := groups[edge]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Deadline < group[j].Deadline
		})
		ordered = append(ordered, group...)
	}
	return ordered
}

// decideOne runs the per-vehicle pipeline: plan, divert around saturation,
// resolve to a concrete target.
func decideOne(engine routing.Decider, graph *da.Graph, v da.Vehicle) decision {
	src, dst, err := resolveVehicleEdges(graph, v)
	if err != nil {
		return decision{vehicleID: v.ID, err: err}
	}
	plan := engine.PlanDirections(src, dst)
	plan, rerouted := engine.MaybeReroute(src, plan)
	target := engine.ComputeLocalTarget(v, src, dst, plan)
	return decision{
		vehicleID: v.ID,
		target:    graph.EdgeID(target.Edge),
		status:    target.Status,
		rerouted:  rerouted,
	}
}
