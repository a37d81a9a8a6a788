package simulation

import (
	"fmt"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/util"
	"golang.org/x/exp/rand"
)

// gridEdge is one street of the torus grid template: wiring is fixed, only
// the live vehicle count varies tick to tick.
type gridEdge struct {
	id         string
	length     float64
	directions [2]pkg.Direction
	targets    [2]string
}

func horizontalID(r, c int) string { return fmt.Sprintf("h_%d_%d", r, c) }
func verticalID(r, c int) string   { return fmt.Sprintf("v_%d_%d", r, c) }

// gridTemplate lays out rows*cols eastbound and rows*cols southbound one-way
// streets on a torus. An eastbound street continues straight or turns right
// onto the southbound street at its end junction; a southbound street
// continues straight or turns left onto the eastbound one. Every edge has
// out-degree two, so the grid carries no dead ends and stays strongly
// connected.
func gridTemplate(rows, cols int, edgeLength float64) []gridEdge {
	edges := make([]gridEdge, 0, 2*rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			edges = append(edges, gridEdge{
				id:         horizontalID(r, c),
				length:     edgeLength,
				directions: [2]pkg.Direction{pkg.STRAIGHT, pkg.RIGHT},
				targets:    [2]string{horizontalID(r, (c+1)%cols), verticalID(r, (c+1)%cols)},
			})
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			edges = append(edges, gridEdge{
				id:         verticalID(r, c),
				length:     edgeLength,
				directions: [2]pkg.Direction{pkg.STRAIGHT, pkg.LEFT},
				targets:    [2]string{verticalID((r+1)%rows, c), horizontalID((r+1)%rows, c)},
			})
		}
	}
	return edges
}

func buildGrid(edges []gridEdge, counts []int) (*da.Graph, error) {
	b := da.NewGraphBuilder()
	for i, e := range edges {
		count := 0
		if counts != nil {
			count = counts[i]
		}
		if err := b.AddEdge(e.id, e.length, count); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		for i := range e.directions {
			if err := b.Connect(e.id, e.directions[i], e.targets[i]); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

// GridNetwork builds the torus grid snapshot with all vehicle counts zero.
func GridNetwork(rows, cols int, edgeLength float64) (*da.Graph, error) {
	if rows < 2 || cols < 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"grid needs at least 2x2 junctions, got %dx%d", rows, cols)
	}
	if edgeLength <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"edge length must be positive, got %v", edgeLength)
	}
	return buildGrid(gridTemplate(rows, cols, edgeLength), nil)
}

// Synthesizer produces a deterministic stream of tick records over the torus
// grid: per-edge counts drift tick to tick and a fresh vehicle batch is
// sampled each tick. The same seed replays the same stream.
type Synthesizer struct {
	template    []gridEdge
	counts      []int
	numVehicles int
	rng         *rand.Rand
	tick        int
}

func NewSynthesizer(rows, cols int, edgeLength float64, numVehicles int, seed uint64) (*Synthesizer, error) {
	if rows < 2 || cols < 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"grid needs at least 2x2 junctions, got %dx%d", rows, cols)
	}
	if edgeLength <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"edge length must be positive, got %v", edgeLength)
	}
	if numVehicles < 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"vehicle batch size must be non-negative, got %d", numVehicles)
	}

	template := gridTemplate(rows, cols, edgeLength)
	s := &Synthesizer{
		template:    template,
		counts:      make([]int, len(template)),
		numVehicles: numVehicles,
		rng:         rand.New(rand.NewSource(seed)),
	}
	// start with some edges already near saturation so the congestion
	// re-router has work from the first tick
	for i := range s.counts {
		s.counts[i] = s.rng.Intn(pkg.SATURATION_VEHICLE_COUNT + 5)
	}
	return s, nil
}

// NextTick freezes the current counts into a snapshot and samples the tick's
// vehicle batch.
func (s *Synthesizer) NextTick() (da.TickRecord, error) {
	g, err := buildGrid(s.template, s.counts)
	if err != nil {
		return da.TickRecord{}, err
	}

	vehicles := make([]da.Vehicle, s.numVehicles)
	for i := range vehicles {
		cur := s.template[s.rng.Intn(len(s.template))].id
		dst := s.template[s.rng.Intn(len(s.template))].id
		deadline := 60 + 540*s.rng.Float64()
		speed := 0.0
		// measured speeds are frequently zero in live batches; keep that
		// mix so the lookahead floor stays exercised
		if s.rng.Float64() < 0.5 {
			speed = 25 * s.rng.Float64()
		}
		vehicles[i] = da.NewVehicle(fmt.Sprintf("veh_%d_%d", s.tick, i), cur, dst, deadline, speed)
	}

	rec := da.NewTickRecord(s.tick, g, vehicles)
	s.tick++
	s.drift()
	return rec, nil
}

// drift nudges every count by -2..+2, clamped at zero, so edges wander in
// and out of saturation across ticks.
func (s *Synthesizer) drift() {
	for i := range s.counts {
		s.counts[i] += s.rng.Intn(5) - 2
		if s.counts[i] < 0 {
			s.counts[i] = 0
		}
	}
}
