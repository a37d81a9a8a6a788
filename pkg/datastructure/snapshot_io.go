package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/util"
)

// TickRecord is one recorded simulation tick: the frozen graph snapshot and
// the vehicle batch the external driver handed to the decision core.
type TickRecord struct {
	Tick     int
	Graph    *Graph
	Vehicles []Vehicle
}

func NewTickRecord(tick int, graph *Graph, vehicles []Vehicle) TickRecord {
	return TickRecord{Tick: tick, Graph: graph, Vehicles: vehicles}
}

// SnapshotWriter appends tick records to a bzip2-compressed text file. The
// format is line oriented so a recorded run stays inspectable with bzcat.
type SnapshotWriter struct {
	f  *os.File
	bz *bzip2.Writer
	w  *bufio.Writer
}

func NewSnapshotWriter(filename string, numTicks int) (*SnapshotWriter, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		f.Close()
		return nil, err
	}
	w := bufio.NewWriter(bz)
	fmt.Fprintf(w, "%d\n", numTicks)
	return &SnapshotWriter{f: f, bz: bz, w: w}, nil
}

// AppendTick writes one tick record:
//
//	numEdges numVehicles tick
//	edgeId length vehicleCount outDegree {directionLetter targetId}*
//	...
//	vehicleId currentEdge destination deadline speed
//	...
//
// Identifiers must be whitespace free; the simulator's ids always are.
func (sw *SnapshotWriter) AppendTick(rec TickRecord) error {
	g := rec.Graph
	fmt.Fprintf(sw.w, "%d %d %d\n", g.NumberOfEdges(), len(rec.Vehicles), rec.Tick)

	var badID error
	g.ForEdges(func(idx Index, e *Edge) {
		if strings.ContainsAny(e.id, " \t\n") {
			badID = util.WrapErrorf(nil, util.ErrBadParamInput, "edge id %q contains whitespace", e.id)
			return
		}
		lengthF := strconv.FormatFloat(e.length, 'f', -1, 64)
		fmt.Fprintf(sw.w, "%s %s %d %d", e.id, lengthF, e.vehicleCount, e.outDegree)
		g.ForOutgoingEdgesOf(idx, func(d pkg.Direction, to Index) {
			fmt.Fprintf(sw.w, " %s %s", d, g.EdgeID(to))
		})
		fmt.Fprintf(sw.w, "\n")
	})
	if badID != nil {
		return badID
	}

	for _, v := range rec.Vehicles {
		if strings.ContainsAny(v.ID, " \t\n") {
			return util.WrapErrorf(nil, util.ErrBadParamInput, "vehicle id %q contains whitespace", v.ID)
		}
		deadlineF := strconv.FormatFloat(v.Deadline, 'f', -1, 64)
		speedF := strconv.FormatFloat(v.CurrentSpeed, 'f', -1, 64)
		fmt.Fprintf(sw.w, "%s %s %s %s %s\n", v.ID, v.CurrentEdge, v.Destination, deadlineF, speedF)
	}
	return nil
}

func (sw *SnapshotWriter) Close() error {
	if err := sw.w.Flush(); err != nil {
		sw.bz.Close()
		sw.f.Close()
		return err
	}
	if err := sw.bz.Close(); err != nil {
		sw.f.Close()
		return err
	}
	return sw.f.Close()
}

// SnapshotReader streams tick records back out of a recorded file.
type SnapshotReader struct {
	f        *os.File
	br       *bufio.Reader
	numTicks int
	nextTick int
}

func NewSnapshotReader(filename string) (*SnapshotReader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		f.Close()
		return nil, err
	}
	numTicks, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("snapshot header: %w", err)
	}
	return &SnapshotReader{f: f, br: br, numTicks: numTicks}, nil
}

func (sr *SnapshotReader) NumTicks() int {
	return sr.numTicks
}

// NextTick decodes the next record in file order.
func (sr *SnapshotReader) NextTick() (TickRecord, error) {
	if sr.nextTick >= sr.numTicks {
		return TickRecord{}, util.WrapErrorf(nil, util.ErrNotFound, "no tick left after %d", sr.numTicks)
	}

	line, err := util.ReadLine(sr.br)
	if err != nil {
		return TickRecord{}, err
	}
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return TickRecord{}, fmt.Errorf("tick header: expected 3 fields, got %d", len(tokens))
	}
	numEdges, err := strconv.Atoi(tokens[0])
	if err != nil {
		return TickRecord{}, err
	}
	numVehicles, err := strconv.Atoi(tokens[1])
	if err != nil {
		return TickRecord{}, err
	}
	tick, err := strconv.Atoi(tokens[2])
	if err != nil {
		return TickRecord{}, err
	}

	builder := NewGraphBuilder()
	for i := 0; i < numEdges; i++ {
		line, err = util.ReadLine(sr.br)
		if err != nil {
			return TickRecord{}, err
		}
		if err := parseEdgeLine(builder, line); err != nil {
			return TickRecord{}, err
		}
	}
	graph, err := builder.Build()
	if err != nil {
		return TickRecord{}, err
	}

	vehicles := make([]Vehicle, numVehicles)
	for i := 0; i < numVehicles; i++ {
		line, err = util.ReadLine(sr.br)
		if err != nil {
			return TickRecord{}, err
		}
		vehicles[i], err = parseVehicleLine(line)
		if err != nil {
			return TickRecord{}, err
		}
	}

	sr.nextTick++
	return NewTickRecord(tick, graph, vehicles), nil
}

func (sr *SnapshotReader) Close() error {
	return sr.f.Close()
}

func parseEdgeLine(builder *GraphBuilder, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) < 4 {
		return fmt.Errorf("edge line: expected at least 4 fields, got %d", len(tokens))
	}
	id := tokens[0]
	length, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return fmt.Errorf("edge %s length: %w", id, err)
	}
	count, err := strconv.Atoi(tokens[2])
	if err != nil {
		return fmt.Errorf("edge %s vehicle count: %w", id, err)
	}
	outDegree, err := strconv.Atoi(tokens[3])
	if err != nil {
		return fmt.Errorf("edge %s out degree: %w", id, err)
	}
	if len(tokens) != 4+2*outDegree {
		return fmt.Errorf("edge %s: expected %d connection tokens, got %d", id, 2*outDegree, len(tokens)-4)
	}

	if err := builder.AddEdge(id, length, count); err != nil {
		return err
	}
	for i := 0; i < outDegree; i++ {
		d, err := pkg.ParseDirection(tokens[4+2*i])
		if err != nil {
			return fmt.Errorf("edge %s: %w", id, err)
		}
		if err := builder.Connect(id, d, tokens[5+2*i]); err != nil {
			return err
		}
	}
	return nil
}

func parseVehicleLine(line string) (Vehicle, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return Vehicle{}, fmt.Errorf("vehicle line: expected 5 fields, got %d", len(tokens))
	}
	deadline, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return Vehicle{}, fmt.Errorf("vehicle %s deadline: %w", tokens[0], err)
	}
	speed, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return Vehicle{}, fmt.Errorf("vehicle %s speed: %w", tokens[0], err)
	}
	return NewVehicle(tokens[0], tokens[1], tokens[2], deadline, speed), nil
}
