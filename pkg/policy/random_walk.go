package policy

import (
	"context"
	"hash/fnv"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/engine/routing"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// RandomWalkPolicy is the exploratory baseline: per vehicle it draws a
// bounded random walk of directions, keeping only draws that exist in the
// outgoing map, then resolves the walk to a local target. No deadline or
// congestion awareness.
type RandomWalkPolicy struct {
	logger  *zap.Logger
	opts    routing.Options
	seed    uint64
	horizon int
}

func NewRandomWalkPolicy(logger *zap.Logger, opts routing.Options, seed uint64) *RandomWalkPolicy {
	return &RandomWalkPolicy{
		logger:  logger,
		opts:    opts,
		seed:    seed,
		horizon: pkg.RANDOM_WALK_HORIZON,
	}
}

func (p *RandomWalkPolicy) Name() string {
	return "random_walk"
}

func (p *RandomWalkPolicy) MakeDecisions(ctx context.Context, vehicles []da.Vehicle, graph *da.Graph) (da.LocalTargetMap, BatchStats, error) {
	engine := routing.NewDecisionEngine(graph, p.logger, p.opts)

	stats := BatchStats{Vehicles: len(vehicles)}
	targets := make(da.LocalTargetMap, len(vehicles))
	for _, v := range vehicles {
		if util.StopConcurrentOperation(ctx) {
			return targets, stats, ctx.Err()
		}
		src, dst, err := resolveVehicleEdges(graph, v)
		if err != nil {
			p.logger.Warn("skipping vehicle with unknown edge",
				zap.String("vehicle", v.ID), zap.Error(err))
			stats.Skipped++
			continue
		}

		plan := p.walkFrom(graph, v.ID, src)
		target := engine.ComputeLocalTarget(v, src, dst, plan)
		targets[v.ID] = graph.EdgeID(target.Edge)
		stats.Assigned++
		stats.countOutcome(target.Status)
	}
	return targets, stats, nil
}

// walkFrom draws up to horizon accepted directions starting at src. Draws
// missing from the outgoing map are retried, a dead end stops the walk, and
// a drawn second consecutive turn-around is kept but ends the walk since the
// resolver will stop there anyway.
func (p *RandomWalkPolicy) walkFrom(graph *da.Graph, vehicleID string, src da.Index) da.DirectionPlan {
	rng := rand.New(rand.NewSource(vehicleSeed(p.seed, vehicleID)))
	directions := pkg.Directions()

	plan := make(da.DirectionPlan, 0, p.horizon)
	at := src
	accepted := 0
	for accepted < p.horizon {
		if graph.IsDeadEnd(at) {
			break
		}
		d := directions[rng.Intn(pkg.NUM_DIRECTIONS)]
		to, ok := graph.OutgoingEdge(at, d)
		if !ok {
			continue
		}
		plan = append(plan, d)
		at = to
		if accepted > 0 && plan[accepted-1] == pkg.TURN_AROUND && d == pkg.TURN_AROUND {
			break
		}
		accepted++
	}
	return plan
}

// vehicleSeed derives a per-vehicle stream from the policy seed so the same
// batch always draws the same walks, regardless of vehicle order.
func vehicleSeed(seed uint64, vehicleID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(vehicleID))
	return seed ^ h.Sum64()
}
