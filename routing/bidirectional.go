package routing

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/ttpr0/go-skims/graph"
	. "github.com/ttpr0/go-skims/util"
)

//*******************************************
// bidirectional search
//*******************************************

// BidirectionalSearch finds a single shortest path by growing a forward tree
// from the source and a backward tree from the target until they meet.
//
// Costs are evaluated at the start time on both sides, results are exact
// for cost models that do not change within the searched time span.
type BidirectionalSearch struct {
	g        *graph.Graph
	fwd      *ShortestPathTree
	bwd      *ShortestPathTree
	accessor *graph.AdjArrayAccessor

	mu         float64
	fwd_node   int32
	bwd_node   int32
	link       int32
	start_time float64
}

func NewBidirectionalSearch(g *graph.Graph) *BidirectionalSearch {
	return &BidirectionalSearch{
		g:        g,
		fwd:      NewShortestPathTree(g, graph.FORWARD),
		bwd:      NewShortestPathTree(g, graph.BACKWARD),
		accessor: g.GetAccessor(),
		mu:       math.Inf(1),
		fwd_node: -1,
		bwd_node: -1,
		link:     -1,
	}
}

// Calculate searches a path from source to target. Returns false if target
// is not reachable.
func (self *BidirectionalSearch) Calculate(source, target int32, start_time float64) bool {
	self.mu = math.Inf(1)
	self.fwd_node = -1
	self.bwd_node = -1
	self.link = -1
	self.start_time = start_time

	self.fwd.Init([]Seed{{Node: source}}, start_time)
	self.bwd.Init([]Seed{{Node: target}}, start_time)
	if source == target {
		self.mu = 0
		self.fwd_node = source
		self.bwd_node = target
		return true
	}
	for {
		top_f := self.fwd.PeekCost()
		top_b := self.bwd.PeekCost()
		if top_f+top_b >= self.mu {
			break
		}
		if top_f <= top_b {
			node, _ := self.fwd.Step()
			self._UpdateMeeting(node, graph.FORWARD)
		} else {
			node, _ := self.bwd.Step()
			self._UpdateMeeting(node, graph.BACKWARD)
		}
	}
	return !math.IsInf(self.mu, 1)
}

// checks all paths through a newly settled node against the other tree
func (self *BidirectionalSearch) _UpdateMeeting(node int32, dir graph.Direction) {
	tree, other := self.fwd, self.bwd
	if dir == graph.BACKWARD {
		tree, other = self.bwd, self.fwd
	}
	if other.IsReached(node) {
		c := tree.GetCost(node) + other.GetCost(node)
		if c < self.mu {
			self.mu = c
			self.fwd_node = node
			self.bwd_node = node
			self.link = -1
		}
	}
	self.accessor.SetBaseNode(node, dir)
	for self.accessor.Next() {
		next := self.accessor.GetOtherID()
		if !other.IsReached(next) {
			continue
		}
		link := self.accessor.GetLinkID()
		var c float64
		if dir == graph.FORWARD {
			c = tree.GetCost(node) + self.g.GetLinkCost(link, tree.time[node]) + other.GetCost(next)
		} else {
			c = other.GetCost(next) + self.g.GetLinkCost(link, other.time[next]) + tree.GetCost(node)
		}
		if !(c < self.mu) {
			continue
		}
		self.mu = c
		self.link = link
		if dir == graph.FORWARD {
			self.fwd_node = node
			self.bwd_node = next
		} else {
			self.fwd_node = next
			self.bwd_node = node
		}
	}
}

// GetCost returns the path cost, +Inf if no path was found.
func (self *BidirectionalSearch) GetCost() float64 {
	return self.mu
}

// GetMeetingNode returns the last node of the forward part of the path.
func (self *BidirectionalSearch) GetMeetingNode() int32 {
	return self.fwd_node
}

// GetPathLinks returns the links from source to target.
func (self *BidirectionalSearch) GetPathLinks() List[int32] {
	if math.IsInf(self.mu, 1) {
		return NewList[int32](0)
	}
	links := self.fwd.GetPathLinks(self.fwd_node)
	if self.link != -1 {
		links.Add(self.link)
	}
	for _, link := range self.bwd.GetPathLinks(self.bwd_node) {
		links.Add(link)
	}
	return links
}

// GetDistance returns the length of the path, +Inf if no path was found.
func (self *BidirectionalSearch) GetDistance() float64 {
	if math.IsInf(self.mu, 1) {
		return math.Inf(1)
	}
	dist := 0.0
	for _, link := range self.GetPathLinks() {
		dist += self.g.GetLinkLength(link)
	}
	return dist
}

// GetTravelTime replays the path from the start time.
func (self *BidirectionalSearch) GetTravelTime() float64 {
	if math.IsInf(self.mu, 1) {
		return math.Inf(1)
	}
	time := self.start_time
	for _, link := range self.GetPathLinks() {
		time += self.g.GetLinkTime(link, time)
	}
	return time - self.start_time
}

func (self *BidirectionalSearch) GetPathGeometry() orb.LineString {
	links := self.GetPathLinks()
	if links.Length() == 0 {
		if math.IsInf(self.mu, 1) {
			return nil
		}
		return orb.LineString{self.g.GetNodeGeom(self.fwd_node)}
	}
	return BuildPathGeometry(self.g.GetBase(), links)
}
