package routing

import (
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
)

type DirectionPlanner interface {
	PlanDirections(source, destination da.Index) da.DirectionPlan
}

type Rerouter interface {
	MaybeReroute(current da.Index, plan da.DirectionPlan) (da.DirectionPlan, bool)
}

type TargetResolver interface {
	ComputeLocalTarget(vehicle da.Vehicle, start, destination da.Index, plan da.DirectionPlan) LocalTarget
}

// Decider is the capability set a routing policy needs from the engine.
type Decider interface {
	DirectionPlanner
	Rerouter
	TargetResolver
}
