package skim

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ttpr0/go-skims/graph"
	"github.com/ttpr0/go-skims/metrics"
	"github.com/ttpr0/go-skims/routing"
	. "github.com/ttpr0/go-skims/util"
	"github.com/ttpr0/go-skims/zones"
	"golang.org/x/exp/slog"
)

var (
	ErrNoWorkers      = errors.New("skim: worker count must be positive")
	ErrUnresolvedZone = errors.New("skim: zone without graph node")
)

// Options of a matrix computation. The zero value computes forward trees
// on all cpus without cut-offs.
type Options struct {
	// number of workers, 0 uses all cpus
	Workers int
	// departure time in seconds since midnight, arrival time if Backward
	StartTime float64
	// compute one reverse tree per destination instead of one tree per origin
	Backward bool

	// cells above the cut-offs are unreachable, 0 disables. MaxCost also
	// bounds the search, MaxDistance is only checked per cell.
	MaxCost     float64
	MaxDistance float64

	Attributes []graph.LinkAttribute
	Paths      bool

	// fail on zones without graph node instead of filling them with +Inf
	Strict bool

	// called after every tree line, may be called concurrently
	Progress func(done, total int)
}

//*******************************************
// matrix computation
//*******************************************

// ComputeMatrices computes time, distance, cost, link count and attribute
// matrices between all origins and destinations.
//
// Every zone is resolved to its sampling points once. Cells are averaged
// over all pairs of origin and destination sampling points; a single
// unreachable pair makes the cell unreachable. Zones without sampling
// points are reported in the result and their cells are unreachable.
func ComputeMatrices[K comparable](g *graph.Graph, origins, destinations []K, resolver IZoneResolver[K], options Options) (*Result[K], error) {
	start := time.Now()
	result, err := _ComputeMatrices(g, origins, destinations, resolver, options)
	if err != nil {
		metrics.ObserveComputation("error", time.Since(start))
		return nil, err
	}
	metrics.ObserveComputation("ok", time.Since(start))
	slog.Info(fmt.Sprintf("computed %v x %v matrix in %v", len(origins), len(destinations), time.Since(start)))
	return result, nil
}

func _ComputeMatrices[K comparable](g *graph.Graph, origins, destinations []K, resolver IZoneResolver[K], options Options) (*Result[K], error) {
	workers := options.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoWorkers, workers)
	}
	origin_index, err := zones.NewZoneIndex(origins)
	if err != nil {
		return nil, err
	}
	dest_index, err := zones.NewZoneIndex(destinations)
	if err != nil {
		return nil, err
	}

	// resolve sampling points
	origin_nodes, unresolved_origins, err := _ResolveZones(g, origin_index, resolver, "origin", options.Strict)
	if err != nil {
		return nil, err
	}
	dest_nodes, unresolved_dests, err := _ResolveZones(g, dest_index, resolver, "destination", options.Strict)
	if err != nil {
		return nil, err
	}

	var table *graph.AttributeTable
	if len(options.Attributes) > 0 {
		table = graph.BuildAttributeTable(g.GetBase(), options.Attributes)
	}
	result := _NewResult(origin_index, dest_index, table, options.Paths)
	for i, nodes := range origin_nodes {
		if nodes.Length() > 0 {
			continue
		}
		result.UnresolvedOrigins.Add(origin_index.ID(i))
		for j := 0; j < dest_index.Length(); j++ {
			result._SetUnreachable(i, j)
		}
	}
	for j, nodes := range dest_nodes {
		if nodes.Length() > 0 {
			continue
		}
		result.UnresolvedDestinations.Add(dest_index.ID(j))
		for i := 0; i < origin_index.Length(); i++ {
			result._SetUnreachable(i, j)
		}
	}

	// a line is a row for forward trees and a column for backward trees
	lines := origin_nodes
	others := dest_nodes
	dir := graph.FORWARD
	if options.Backward {
		lines = dest_nodes
		others = origin_nodes
		dir = graph.BACKWARD
	}
	line_chan := make(chan Tuple[int, List[int32]], len(lines))
	for i, nodes := range lines {
		if nodes.Length() == 0 {
			continue
		}
		line_chan <- MakeTuple(i, nodes)
	}
	close(line_chan)
	total := len(line_chan)
	slog.Info(fmt.Sprintf("computing %v %v trees with %v workers (%v unresolved origins, %v unresolved destinations)",
		total, dir, workers, unresolved_origins, unresolved_dests))

	var done atomic.Int64
	log_step := max(total/10, 1)
	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metrics.WorkerStarted()
			defer metrics.WorkerStopped()

			worker := _NewWorker(g, dir, table, others, result, options)
			for {
				temp, ok := <-line_chan
				if !ok {
					break
				}
				worker.ProcessLine(temp.A, temp.B)

				d := int(done.Add(1))
				if d%log_step == 0 {
					slog.Debug(fmt.Sprintf("computed %v of %v trees", d, total))
				}
				if options.Progress != nil {
					options.Progress(d, total)
				}
			}
		}()
	}
	wg.Wait()
	return result, nil
}

// _ResolveZones returns the sampling points of every zone and the number of
// zones without any.
func _ResolveZones[K comparable](g *graph.Graph, index *zones.ZoneIndex[K], resolver IZoneResolver[K], side string, strict bool) (Array[List[int32]], int, error) {
	nodes := NewArray[List[int32]](index.Length())
	unresolved := 0
	for i := 0; i < index.Length(); i++ {
		zone := index.ID(i)
		points := resolver.Resolve(zone)
		for _, node := range points {
			if !g.IsNode(node) {
				return nil, 0, fmt.Errorf("%w: node %d of %v %v", graph.ErrUnknownNode, node, side, zone)
			}
		}
		if points.Length() == 0 {
			if strict {
				return nil, 0, fmt.Errorf("%w: %v %v", ErrUnresolvedZone, side, zone)
			}
			slog.Warn(fmt.Sprintf("%v %v has no graph node, cells are set to +Inf", side, zone))
			metrics.ZoneUnresolved(side)
			unresolved += 1
		}
		nodes[i] = points
	}
	return nodes, unresolved, nil
}

//*******************************************
// worker
//*******************************************

// _Worker owns a tree and writes the lines it is given. Lines are rows
// (FORWARD) or columns (BACKWARD) of the result, no two workers share a
// line.
type _Worker[K comparable] struct {
	tree    *routing.ShortestPathTree
	targets *routing.TargetSet
	stop    routing.StopCriterion
	others  Array[List[int32]]
	result  *Result[K]
	options Options

	unreachable Array[bool]
	hops        Array[float64]
}

func _NewWorker[K comparable](g *graph.Graph, dir graph.Direction, table *graph.AttributeTable, others Array[List[int32]], result *Result[K], options Options) *_Worker[K] {
	targets := routing.NewTargetSet(g.NodeCount())
	for _, nodes := range others {
		for _, node := range nodes {
			targets.Add(node)
		}
	}
	// only cost bounds the search, distance is filtered per cell
	var max_cost routing.StopCriterion
	if options.MaxCost > 0 {
		max_cost = routing.MaxCost(options.MaxCost)
	}
	return &_Worker[K]{
		tree:        routing.NewAttributeShortestPathTree(g, dir, table),
		targets:     targets,
		stop:        routing.AnyOf(targets.Criterion(), max_cost),
		others:      others,
		result:      result,
		options:     options,
		unreachable: NewArray[bool](others.Length()),
		hops:        NewArray[float64](others.Length()),
	}
}

func (self *_Worker[K]) ProcessLine(line int, sources List[int32]) {
	if self.targets.Count() == 0 {
		return
	}
	self.unreachable.Fill(false)
	self.hops.Fill(0)

	for _, source := range sources {
		self.targets.Reset()
		self.tree.CalculateWithStop(source, self.options.StartTime, self.stop)
		metrics.TreeComputed(self.tree.Direction().String())

		for other, nodes := range self.others {
			if nodes.Length() == 0 || self.unreachable[other] {
				continue
			}
			i, j := self._Cell(line, other)
			for _, node := range nodes {
				if !self._IsValid(node) {
					self.unreachable[other] = true
					break
				}
				self._Accumulate(i, j, node)
				self.hops[other] += float64(self.tree.GetLinkCount(node))
			}
		}
	}

	cells := 0
	for other, nodes := range self.others {
		if nodes.Length() == 0 {
			continue
		}
		i, j := self._Cell(line, other)
		if self.unreachable[other] {
			self.result._SetUnreachable(i, j)
		} else {
			pairs := float64(sources.Length() * nodes.Length())
			self.result._Average(i, j, pairs, self.hops[other])
		}
		cells += 1
	}
	metrics.CellsWritten(cells)
}

func (self *_Worker[K]) _Cell(line, other int) (int, int) {
	if self.options.Backward {
		return other, line
	}
	return line, other
}

func (self *_Worker[K]) _IsValid(node int32) bool {
	if !self.tree.IsReached(node) {
		return false
	}
	if self.options.MaxCost > 0 && self.tree.GetCost(node) > self.options.MaxCost {
		return false
	}
	if self.options.MaxDistance > 0 && self.tree.GetDistance(node) > self.options.MaxDistance {
		return false
	}
	return true
}

func (self *_Worker[K]) _Accumulate(i, j int, node int32) {
	result := self.result
	result.Time.AddAt(i, j, self.tree.GetTravelTime(node))
	result.Distance.AddAt(i, j, self.tree.GetDistance(node))
	result.Cost.AddAt(i, j, self.tree.GetCost(node))
	for a, m := range result.Attributes {
		m.AddAt(i, j, self.tree.GetAttribute(node, a))
	}
	if result.Paths != nil && result.Paths.GetAt(i, j) == nil {
		result.Paths.SetAt(i, j, []int32(self.tree.GetPathLinks(node)))
	}
}
