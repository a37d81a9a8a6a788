package datastructure

import (
	"testing"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	"github.com/stretchr/testify/require"
)

func TestDirectionPlanExtendDoesNotAlias(t *testing.T) {
	base := DirectionPlan{pkg.STRAIGHT}
	left := base.Extend(pkg.LEFT)
	right := base.Extend(pkg.RIGHT)

	require.Equal(t, DirectionPlan{pkg.STRAIGHT}, base)
	require.Equal(t, DirectionPlan{pkg.STRAIGHT, pkg.LEFT}, left)
	require.Equal(t, DirectionPlan{pkg.STRAIGHT, pkg.RIGHT}, right)
}

func TestDirectionPlanString(t *testing.T) {
	p := DirectionPlan{pkg.STRAIGHT, pkg.TURN_AROUND, pkg.LEFT, pkg.RIGHT, pkg.SLIGHT_LEFT, pkg.SLIGHT_RIGHT}
	require.Equal(t, "stlrLR", p.String())
	require.Equal(t, "", DirectionPlan{}.String())
}
