package routing

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/ttpr0/go-skims/graph"
	. "github.com/ttpr0/go-skims/util"
)

//*******************************************
// shortest path tree
//*******************************************

// StopCriterion is evaluated for every settled node. Returning true ends the
// search; the node itself stays settled, every node not yet settled is left
// unvisited.
type StopCriterion func(node int32, arrival, cost, dist, departure float64) bool

// Seed is a start node with initial offsets.
type Seed struct {
	Node int32
	Cost float64
	Time float64
	Dist float64
}

// ShortestPathTree computes minimum cost paths from one or two seeds to all
// reachable nodes (FORWARD) or from all nodes to the seeds (BACKWARD).
//
// Node labels are allocated once and reused for every computation. In a
// BACKWARD tree times run backwards from the start time, travel times are
// still positive.
//
// Not thread safe, use one tree per worker.
type ShortestPathTree struct {
	g          *graph.Graph
	dir        graph.Direction
	attributes *graph.AttributeTable
	attr_count int

	cost Array[float64]
	time Array[float64]
	dist Array[float64]
	pred Array[int32]
	hops Array[int32]
	attr Array[float64]

	heap     *IndexedMinHeap[float64]
	accessor *graph.AdjArrayAccessor
	seeds    [2]Seed

	start_time float64
	settled    int
}

// NewShortestPathTree creates a tree without attribute accumulation.
func NewShortestPathTree(g *graph.Graph, dir graph.Direction) *ShortestPathTree {
	return NewAttributeShortestPathTree(g, dir, nil)
}

// NewAttributeShortestPathTree creates a tree that sums up the given link
// attributes along every shortest path.
func NewAttributeShortestPathTree(g *graph.Graph, dir graph.Direction, attributes *graph.AttributeTable) *ShortestPathTree {
	n := g.NodeCount()
	attr_count := 0
	if attributes != nil {
		attr_count = attributes.Count()
	}
	tree := &ShortestPathTree{
		g:          g,
		dir:        dir,
		attributes: attributes,
		attr_count: attr_count,
		cost:       NewArray[float64](n),
		time:       NewArray[float64](n),
		dist:       NewArray[float64](n),
		pred:       NewArray[int32](n),
		hops:       NewArray[int32](n),
		attr:       NewArray[float64](n * attr_count),
		accessor:   g.GetAccessor(),
	}
	cost := tree.cost
	tree.heap = NewIndexedMinHeap[float64](n,
		func(node int32) float64 { return cost[node] },
		func(node int32, c float64) { cost[node] = c },
	)
	tree._Reset()
	return tree
}

func (self *ShortestPathTree) Direction() graph.Direction {
	return self.dir
}
func (self *ShortestPathTree) Graph() *graph.Graph {
	return self.g
}
func (self *ShortestPathTree) AttributeCount() int {
	return self.attr_count
}

//*******************************************
// calculation
//*******************************************

// Calculate computes the full tree rooted at start.
func (self *ShortestPathTree) Calculate(start int32, start_time float64) {
	self.CalculateWithStop(start, start_time, nil)
}

// CalculateWithStop computes the tree rooted at start until stop returns
// true. stop may be nil.
func (self *ShortestPathTree) CalculateWithStop(start int32, start_time float64, stop StopCriterion) {
	self.seeds[0] = Seed{Node: start}
	self._Run(self.seeds[:1], start_time, stop)
}

// CalculateFromTwo computes the tree from two seeds, e.g. both end nodes of
// a link a location was snapped to. stop may be nil.
func (self *ShortestPathTree) CalculateFromTwo(first, second Seed, start_time float64, stop StopCriterion) {
	self.seeds[0] = first
	self.seeds[1] = second
	self._Run(self.seeds[:2], start_time, stop)
}

// CalculateFromSeeds computes the tree from any number of seeds.
func (self *ShortestPathTree) CalculateFromSeeds(seeds []Seed, start_time float64, stop StopCriterion) {
	self._Run(seeds, start_time, stop)
}

func (self *ShortestPathTree) _Run(seeds []Seed, start_time float64, stop StopCriterion) {
	self.Init(seeds, start_time)
	for {
		node, ok := self.heap.PollMin()
		if !ok {
			break
		}
		self.settled += 1
		if stop != nil && stop(node, self.time[node], self.cost[node], self.dist[node], start_time) {
			self._ResetUnsettled()
			break
		}
		self._Relax(node)
	}
}

// Init resets all labels and queues the seeds. Used together with Step to
// run the search one node at a time.
func (self *ShortestPathTree) Init(seeds []Seed, start_time float64) {
	self._Reset()
	self.start_time = start_time
	for _, seed := range seeds {
		node := seed.Node
		if !(seed.Cost < self.cost[node]) {
			continue
		}
		if self.heap.Contains(node) {
			self.heap.DecreaseKey(node, seed.Cost)
		} else {
			self.cost[node] = seed.Cost
			self.heap.Insert(node)
		}
		self.time[node] = self._Advance(start_time, seed.Time)
		self.dist[node] = seed.Dist
	}
}

// Step settles the node with the smallest cost and relaxes its links.
//
// Returns false if no node is left.
func (self *ShortestPathTree) Step() (int32, bool) {
	node, ok := self.heap.PollMin()
	if !ok {
		return -1, false
	}
	self.settled += 1
	self._Relax(node)
	return node, true
}

// PeekCost returns the cost of the next node to be settled, +Inf if none.
func (self *ShortestPathTree) PeekCost() float64 {
	node, ok := self.heap.Peek()
	if !ok {
		return math.Inf(1)
	}
	return self.cost[node]
}

func (self *ShortestPathTree) _Relax(node int32) {
	curr_cost := self.cost[node]
	curr_time := self.time[node]
	curr_dist := self.dist[node]
	curr_hops := self.hops[node]

	self.accessor.SetBaseNode(node, self.dir)
	for self.accessor.Next() {
		link := self.accessor.GetLinkID()
		other := self.accessor.GetOtherID()
		new_cost := curr_cost + self.g.GetLinkCost(link, curr_time)
		old_cost := self.cost[other]
		if !(new_cost < old_cost) {
			continue
		}
		if math.IsInf(old_cost, 1) {
			self.cost[other] = new_cost
			self.heap.Insert(other)
		} else if self.heap.Contains(other) {
			self.heap.DecreaseKey(other, new_cost)
		} else {
			continue
		}
		self.time[other] = self._Advance(curr_time, self.g.GetLinkTime(link, curr_time))
		self.dist[other] = curr_dist + self.g.GetLinkLength(link)
		self.pred[other] = link
		self.hops[other] = curr_hops + 1
		if self.attr_count > 0 {
			k := self.attr_count
			for i := 0; i < k; i++ {
				self.attr[int(other)*k+i] = self.attr[int(node)*k+i] + self.attributes.Get(link, i)
			}
		}
	}
}

func (self *ShortestPathTree) _Advance(time float64, elapsed float64) float64 {
	if self.dir == graph.FORWARD {
		return time + elapsed
	}
	return time - elapsed
}

func (self *ShortestPathTree) _Reset() {
	self.cost.Fill(math.Inf(1))
	self.time.Fill(math.Inf(1))
	self.dist.Fill(math.Inf(1))
	self.pred.Fill(-1)
	self.hops.Fill(0)
	self.attr.Fill(0)
	self.heap.Clear()
	self.settled = 0
}

// _ResetUnsettled drops the tentative labels of all queued nodes.
func (self *ShortestPathTree) _ResetUnsettled() {
	for {
		node, ok := self.heap.PollMin()
		if !ok {
			break
		}
		self.cost[node] = math.Inf(1)
		self.time[node] = math.Inf(1)
		self.dist[node] = math.Inf(1)
		self.pred[node] = -1
		self.hops[node] = 0
		k := self.attr_count
		for i := 0; i < k; i++ {
			self.attr[int(node)*k+i] = 0
		}
	}
}

//*******************************************
// labels
//*******************************************

func (self *ShortestPathTree) IsReached(node int32) bool {
	return !math.IsInf(self.cost[node], 1)
}

// GetCost returns the accumulated cost, +Inf if node is not reached.
func (self *ShortestPathTree) GetCost(node int32) float64 {
	return self.cost[node]
}

// GetTime returns the clock time at node (arrival in a FORWARD tree,
// departure in a BACKWARD tree). Unreached nodes have no value.
func (self *ShortestPathTree) GetTime(node int32) Optional[float64] {
	if !self.IsReached(node) {
		return None[float64]()
	}
	return Some(self.time[node])
}

// GetTravelTime returns the time spent between start and node, +Inf if
// node is not reached.
func (self *ShortestPathTree) GetTravelTime(node int32) float64 {
	if !self.IsReached(node) {
		return math.Inf(1)
	}
	return math.Abs(self.time[node] - self.start_time)
}

// GetDistance returns the path length, +Inf if node is not reached.
func (self *ShortestPathTree) GetDistance(node int32) float64 {
	return self.dist[node]
}

// GetAttribute returns the accumulated attribute at position pos, +Inf if
// node is not reached.
func (self *ShortestPathTree) GetAttribute(node int32, pos int) float64 {
	if !self.IsReached(node) {
		return math.Inf(1)
	}
	return self.attr[int(node)*self.attr_count+pos]
}

// GetLinkCount returns the number of links on the path, -1 if node is not
// reached.
func (self *ShortestPathTree) GetLinkCount(node int32) int {
	if !self.IsReached(node) {
		return -1
	}
	return int(self.hops[node])
}

// GetPredecessor returns the link through which node was reached, -1 for
// seeds and unreached nodes.
func (self *ShortestPathTree) GetPredecessor(node int32) int32 {
	return self.pred[node]
}

func (self *ShortestPathTree) SettledCount() int {
	return self.settled
}
func (self *ShortestPathTree) GetStartTime() float64 {
	return self.start_time
}

//*******************************************
// paths
//*******************************************

// GetPathLinks returns the links between the root and node in travel
// direction. The list is empty if node is not reached or a seed.
func (self *ShortestPathTree) GetPathLinks(node int32) List[int32] {
	links := NewList[int32](int(self.hops[node]))
	if !self.IsReached(node) {
		return links
	}
	curr := node
	for {
		link := self.pred[curr]
		if link == -1 {
			break
		}
		links.Add(link)
		curr = self._Previous(link)
	}
	if self.dir == graph.FORWARD {
		links.Reverse()
	}
	return links
}

// GetPathNodes returns the nodes between the root and node in travel
// direction. The list is empty if node is not reached.
func (self *ShortestPathTree) GetPathNodes(node int32) List[int32] {
	nodes := NewList[int32](int(self.hops[node]) + 1)
	if !self.IsReached(node) {
		return nodes
	}
	curr := node
	nodes.Add(curr)
	for {
		link := self.pred[curr]
		if link == -1 {
			break
		}
		curr = self._Previous(link)
		nodes.Add(curr)
	}
	if self.dir == graph.FORWARD {
		nodes.Reverse()
	}
	return nodes
}

// GetPathGeometry concatenates the geometries of all path links.
func (self *ShortestPathTree) GetPathGeometry(node int32) orb.LineString {
	links := self.GetPathLinks(node)
	if links.Length() == 0 {
		if self.IsReached(node) {
			return orb.LineString{self.g.GetNodeGeom(node)}
		}
		return nil
	}
	return BuildPathGeometry(self.g.GetBase(), links)
}

// node the tree walks to when following link back to the root
func (self *ShortestPathTree) _Previous(link int32) int32 {
	l := self.g.GetLink(link)
	if self.dir == graph.FORWARD {
		return l.NodeA
	}
	return l.NodeB
}

// BuildPathGeometry concatenates link geometries, joints are only added once.
func BuildPathGeometry(base *graph.GraphBase, links []int32) orb.LineString {
	line := make(orb.LineString, 0, 2*len(links))
	for _, link := range links {
		geom := base.GetLinkGeometry(link)
		start := 0
		if len(line) > 0 && line[len(line)-1] == geom[0] {
			start = 1
		}
		line = append(line, geom[start:]...)
	}
	return line
}
