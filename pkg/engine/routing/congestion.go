package routing

import (
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"go.uber.org/zap"
)

// MaybeReroute checks whether following the plan routes the vehicle straight
// into a saturated edge while the current edge offers alternatives. When it
// does, the plan collapses to a single step toward the least congested
// non-dead-end neighbor for this tick only; the planner re-evaluates globally
// next tick. Short plans are left untouched, the vehicle is near its
// destination. Candidates tie-break on direction rank. The bool reports
// whether an override happened.
func (e *DecisionEngine) MaybeReroute(current da.Index, plan da.DirectionPlan) (da.DirectionPlan, bool) {
	if len(plan) <= e.opts.MinReroutePlanSteps {
		return plan, false
	}
	if e.graph.OutDegree(current) <= 1 {
		return plan, false
	}
	first, ok := e.graph.OutgoingEdge(current, plan[0])
	if !ok {
		return plan, false
	}
	if e.graph.VehicleCount(first) < e.opts.SaturationVehicleCount {
		return plan, false
	}

	best := da.INVALID_EDGE_INDEX
	bestDirection := pkg.STRAIGHT
	bestCount := 0
	e.graph.ForOutgoingEdgesOf(current, func(d pkg.Direction, to da.Index) {
		if e.graph.IsDeadEnd(to) {
			return
		}
		count := e.graph.VehicleCount(to)
		if best == da.INVALID_EDGE_INDEX || count < bestCount {
			best = to
			bestDirection = d
			bestCount = count
		}
	})
	if best == da.INVALID_EDGE_INDEX {
		return plan, false
	}

	e.logger.Debug("one step congestion override",
		zap.String("from", e.graph.EdgeID(current)),
		zap.String("saturated", e.graph.EdgeID(first)),
		zap.String("direction", bestDirection.String()),
		zap.Int("count", bestCount))
	return da.DirectionPlan{bestDirection}, true
}
