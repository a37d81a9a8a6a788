package datastructure

import (
	"strings"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
)

// DirectionPlan is an ordered walk of turn choices starting at a vehicle's
// current edge. Plans are recomputed from scratch every tick and never
// persisted by the core.
type DirectionPlan []pkg.Direction

// Extend returns plan+d as a fresh value copy. The planner extends plans for
// many successor edges from one settled edge; sharing backing arrays between
// them would let one relaxation silently rewrite another's recorded walk.
func (p DirectionPlan) Extend(d pkg.Direction) DirectionPlan {
	next := make(DirectionPlan, len(p), len(p)+1)
	copy(next, p)
	return append(next, d)
}

func (p DirectionPlan) String() string {
	var sb strings.Builder
	for _, d := range p {
		sb.WriteString(d.String())
	}
	return sb.String()
}
