package routing

import (
	"math"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"go.uber.org/zap"
)

type ResolveStatus uint8

const (
	RESOLVED_DESTINATION ResolveStatus = iota
	RESOLVED_LOOKAHEAD
	PLAN_EXHAUSTED
	INVALID_DIRECTION
	OSCILLATION

	NUM_RESOLVE_STATUSES = int(OSCILLATION) + 1
)

var resolveStatusNames = [...]string{
	"resolved_destination",
	"resolved_lookahead",
	"plan_exhausted",
	"invalid_direction",
	"oscillation",
}

func (s ResolveStatus) String() string {
	if int(s) >= len(resolveStatusNames) {
		return "unknown"
	}
	return resolveStatusNames[s]
}

// LocalTarget is the outcome of resolving one plan: the concrete edge to hand
// back to the external simulator, how the walk ended, and the road covered.
type LocalTarget struct {
	Edge   da.Index
	Status ResolveStatus
	Walked float64
}

// ComputeLocalTarget walks the plan from the vehicle's current edge until the
// covered distance clears max(current speed, lookahead floor) or the
// destination is reached. Plans are recomputed every tick, so only this short
// lookahead is ever consumed. An exhausted plan, a direction missing from the
// outgoing map, or a second consecutive turn-around ends the walk at the last
// edge reached; these are expected conditions reported in the status, never
// errors.
func (e *DecisionEngine) ComputeLocalTarget(vehicle da.Vehicle, start, destination da.Index, plan da.DirectionPlan) LocalTarget {
	lookahead := math.Max(vehicle.CurrentSpeed, e.opts.MinLookaheadMeters)

	current := start
	walked := 0.0
	i := 0
	for walked <= lookahead {
		if current == destination {
			return LocalTarget{Edge: current, Status: RESOLVED_DESTINATION, Walked: walked}
		}
		if i >= len(plan) {
			e.logger.Debug("plan exhausted before clearing lookahead",
				zap.String("vehicle", vehicle.ID),
				zap.String("edge", e.graph.EdgeID(current)),
				zap.Int("steps", i),
				zap.Float64("walked", walked))
			return LocalTarget{Edge: current, Status: PLAN_EXHAUSTED, Walked: walked}
		}
		// a second consecutive turn-around would bounce back to the edge
		// just left; stop at the edge reached after the first one
		if i > 0 && plan[i-1] == pkg.TURN_AROUND && plan[i] == pkg.TURN_AROUND {
			e.logger.Debug("turn-around oscillation",
				zap.String("vehicle", vehicle.ID),
				zap.String("edge", e.graph.EdgeID(current)))
			return LocalTarget{Edge: current, Status: OSCILLATION, Walked: walked}
		}
		next, ok := e.graph.OutgoingEdge(current, plan[i])
		if !ok {
			e.logger.Debug("direction not in outgoing map",
				zap.String("vehicle", vehicle.ID),
				zap.String("edge", e.graph.EdgeID(current)),
				zap.String("direction", plan[i].String()))
			return LocalTarget{Edge: current, Status: INVALID_DIRECTION, Walked: walked}
		}
		current = next
		walked += e.graph.EdgeLength(next)
		i++
	}
	return LocalTarget{Edge: current, Status: RESOLVED_LOOKAHEAD, Walked: walked}
}
