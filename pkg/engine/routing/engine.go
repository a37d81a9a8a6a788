package routing

import (
	"sync"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"go.uber.org/zap"
)

// Options carries the tunables of the decision core. Non-positive fields
// fall back to the package defaults at construction time.
type Options struct {
	MinLookaheadMeters     float64
	SaturationVehicleCount int
	MinReroutePlanSteps    int
}

func DefaultOptions() Options {
	return Options{
		MinLookaheadMeters:     pkg.MIN_LOOKAHEAD_METERS,
		SaturationVehicleCount: pkg.SATURATION_VEHICLE_COUNT,
		MinReroutePlanSteps:    pkg.MIN_REROUTE_PLAN_STEPS,
	}
}

// DecisionEngine binds the routing primitives to one frozen graph snapshot.
// Safe for concurrent use across vehicles: searches borrow preallocated
// buffers from a pool and the snapshot is never mutated.
type DecisionEngine struct {
	graph       *da.Graph
	logger      *zap.Logger
	opts        Options
	plannerPool sync.Pool
}

func NewDecisionEngine(graph *da.Graph, logger *zap.Logger, opts Options) *DecisionEngine {
	if opts.MinLookaheadMeters <= 0 {
		opts.MinLookaheadMeters = pkg.MIN_LOOKAHEAD_METERS
	}
	if opts.SaturationVehicleCount <= 0 {
		opts.SaturationVehicleCount = pkg.SATURATION_VEHICLE_COUNT
	}
	if opts.MinReroutePlanSteps <= 0 {
		opts.MinReroutePlanSteps = pkg.MIN_REROUTE_PLAN_STEPS
	}
	e := &DecisionEngine{
		graph:  graph,
		logger: logger,
		opts:   opts,
	}
	e.BuildBufferPool()
	return e
}

func (e *DecisionEngine) GetGraph() *da.Graph {
	return e.graph
}

func (e *DecisionEngine) BuildBufferPool() {
	e.plannerPool = sync.Pool{
		New: func() any {
			return NewPlanner(e)
		},
	}
}

// PlanDirections computes a minimum total length direction sequence from
// source to destination, empty when the destination is unreachable.
func (e *DecisionEngine) PlanDirections(source, destination da.Index) da.DirectionPlan {
	p := e.plannerPool.Get().(*Planner)
	defer e.plannerPool.Put(p)
	return p.PlanDirections(source, destination)
}
