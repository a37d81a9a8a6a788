package pkg

import "fmt"

// enum of the discrete turn choices the simulator exposes when leaving an edge
type Direction uint8

const (
	STRAIGHT Direction = iota
	TURN_AROUND
	LEFT
	RIGHT
	SLIGHT_LEFT
	SLIGHT_RIGHT
)

// NUM_DIRECTIONS is the size of the closed Direction enumeration.
const NUM_DIRECTIONS = 6

// single-letter wire codes used by the simulator and by snapshot files
var directionLetters = [NUM_DIRECTIONS]string{"s", "t", "l", "r", "L", "R"}

func (d Direction) String() string {
	if d >= NUM_DIRECTIONS {
		return "?"
	}
	return directionLetters[d]
}

// Directions lists every member of the enumeration in rank order.
func Directions() [NUM_DIRECTIONS]Direction {
	return [NUM_DIRECTIONS]Direction{STRAIGHT, TURN_AROUND, LEFT, RIGHT, SLIGHT_LEFT, SLIGHT_RIGHT}
}

func ParseDirection(letter string) (Direction, error) {
	for i, l := range directionLetters {
		if l == letter {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction letter %q", letter)
}

const (
	INF_WEIGHT float64 = 1e15

	// MIN_LOOKAHEAD_METERS floors the local-target lookahead. Measured vehicle
	// speed is often reported as zero, and a zero lookahead would make the
	// simulator treat the first short edge as the final destination.
	MIN_LOOKAHEAD_METERS = 20.0

	// SATURATION_VEHICLE_COUNT is the live vehicle count at/above which an edge
	// counts as congested for one-step re-routing.
	SATURATION_VEHICLE_COUNT = 10

	// MIN_REROUTE_PLAN_STEPS: plans at most this long are left untouched by the
	// re-router, the vehicle is close enough to its destination that a detour
	// costs more than the queue.
	MIN_REROUTE_PLAN_STEPS = 5

	// RANDOM_WALK_HORIZON is the number of accepted steps the exploratory
	// policy draws per vehicle per tick.
	RANDOM_WALK_HORIZON = 10
)

const (
	DEBUG = false
)
