package graph

import (
	"github.com/paulmach/orb"
)

//*******************************************
// graph
//*******************************************

// Graph combines a shared topology with a cost model.
//
// A graph is read-only and can be used by any number of workers, each
// worker needs its own accessor though.
type Graph struct {
	base *GraphBase
	cost *CostModel
}

func (self *Graph) GetBase() *GraphBase {
	return self.base
}
func (self *Graph) GetCostModel() *CostModel {
	return self.cost
}

// WithCostModel returns a graph over the same topology using cost.
func (self *Graph) WithCostModel(cost *CostModel) *Graph {
	return BuildGraph(self.base, cost)
}

func (self *Graph) NodeCount() int {
	return self.base.NodeCount()
}
func (self *Graph) LinkCount() int {
	return self.base.LinkCount()
}
func (self *Graph) IsNode(node int32) bool {
	return self.base.IsNode(node)
}
func (self *Graph) GetNode(node int32) Node {
	return self.base.GetNode(node)
}
func (self *Graph) GetNodeGeom(node int32) orb.Point {
	return self.base.GetNodeGeom(node)
}
func (self *Graph) GetLink(link int32) Link {
	return self.base.GetLink(link)
}
func (self *Graph) GetAccessor() *AdjArrayAccessor {
	return self.base.GetAccessor()
}

// GetOtherNode returns the end of link opposite to node.
func (self *Graph) GetOtherNode(link int32, node int32) int32 {
	l := self.base.links[link]
	if node == l.NodeA {
		return l.NodeB
	}
	if node == l.NodeB {
		return l.NodeA
	}
	return -1
}
func (self *Graph) GetLinkLength(link int32) float64 {
	return self.base.links[link].Length
}
func (self *Graph) GetLinkTime(link int32, time float64) float64 {
	return self.cost.GetLinkTime(link, time)
}
func (self *Graph) GetLinkCost(link int32, time float64) float64 {
	return self.cost.GetLinkCost(link, time)
}
