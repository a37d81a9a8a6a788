package main

import (
	"context"
	"fmt"
	"log"

	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/engine/routing"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/logger"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/policy"
)

type edge struct {
	id     string
	length float64
	count  int
}

type connection struct {
	from string
	dir  pkg.Direction
	to   string
}

// Hand-built downtown corridor: the short route to "north_spur" runs six
// segments down "main", whose first segment is saturated; "side" is a long
// quiet detour that rejoins at "east_out".
func main() {
	edges := []edge{
		{"west_in", 40, 2},
		{"main1", 30, 14},
		{"main2", 30, 3},
		{"main3", 30, 0},
		{"main4", 30, 1},
		{"main5", 30, 0},
		{"side", 800, 1},
		{"east_out", 40, 0},
		{"north_spur", 30, 0},
	}
	connections := []connection{
		{"west_in", pkg.STRAIGHT, "main1"},
		{"west_in", pkg.LEFT, "side"},
		{"main1", pkg.STRAIGHT, "main2"},
		{"main2", pkg.STRAIGHT, "main3"},
		{"main3", pkg.STRAIGHT, "main4"},
		{"main4", pkg.STRAIGHT, "main5"},
		{"main5", pkg.STRAIGHT, "east_out"},
		{"side", pkg.RIGHT, "east_out"},
		{"east_out", pkg.SLIGHT_LEFT, "north_spur"},
	}

	builder := da.NewGraphBuilder()
	for _, e := range edges {
		if err := builder.AddEdge(e.id, e.length, e.count); err != nil {
			log.Fatal(err)
		}
	}
	for _, c := range connections {
		if err := builder.Connect(c.from, c.dir, c.to); err != nil {
			log.Fatal(err)
		}
	}
	graph, err := builder.Build()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}

	engine := routing.NewDecisionEngine(graph, zlog, routing.DefaultOptions())
	src, _ := graph.EdgeIndex("west_in")
	dst, _ := graph.EdgeIndex("north_spur")

	plan := engine.PlanDirections(src, dst)
	fmt.Printf("plan west_in -> north_spur: %s\n", plan)

	rerouted, overridden := engine.MaybeReroute(src, plan)
	fmt.Printf("after congestion check: %s (overridden=%v)\n", rerouted, overridden)

	veh := da.NewVehicle("veh0", "west_in", "north_spur", 120, 15)
	target := engine.ComputeLocalTarget(veh, src, dst, rerouted)
	fmt.Printf("local target: %s status=%s walked=%.1f\n",
		graph.EdgeID(target.Edge), target.Status, target.Walked)

	batch := []da.Vehicle{
		veh,
		da.NewVehicle("veh1", "side", "east_out", 60, 0),
		da.NewVehicle("veh2", "main2", "east_out", 30, 5),
	}
	for _, pol := range []policy.RoutingPolicy{
		policy.NewRandomWalkPolicy(zlog, routing.DefaultOptions(), 11),
		policy.NewCongestionAwarePolicy(zlog, routing.DefaultOptions(), 2),
	} {
		targets, stats, err := pol.MakeDecisions(context.Background(), batch, graph)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %v (assigned %d, rerouted %d)\n", pol.Name(), targets, stats.Assigned, stats.Rerouted)
	}
}
