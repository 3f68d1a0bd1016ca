package graph

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/ttpr0/go-skims/network"
	. "github.com/ttpr0/go-skims/util"
	"golang.org/x/exp/slog"
)

var (
	ErrUnknownNode = errors.New("graph: unknown node")
	ErrEmptyGraph  = errors.New("graph: empty graph")
)

//*******************************************
// graph base
//*******************************************

// GraphBase is the immutable topology of a graph.
//
// It is built once from a network and shared read-only between any number
// of graphs (cost models) and workers.
type GraphBase struct {
	nodes      Array[Node]
	links      Array[Link]
	topology   AdjacencyArray
	net        network.INetwork
	node_index Dict[osm.NodeID, int32]
}

// BuildGraphBase creates the topology of all network links usable by any
// of the given modes.
//
// Fails with ErrUnknownNode if a link references a node missing from the
// network.
func BuildGraphBase(net network.INetwork, mode network.ModeSet) (*GraphBase, error) {
	if net.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}
	nodes := NewArray[Node](net.NodeCount())
	node_index := NewDict[osm.NodeID, int32](net.NodeCount())
	for i := 0; i < net.NodeCount(); i++ {
		node := net.GetNode(i)
		nodes[i] = Node{
			ID:  node.ID,
			Loc: node.Point,
		}
		node_index[node.ID] = int32(i)
	}

	links := NewList[Link](net.LinkCount())
	skipped := 0
	for i := 0; i < net.LinkCount(); i++ {
		link := net.GetLink(i)
		if !link.Modes.Intersects(mode) {
			skipped += 1
			continue
		}
		node_a, ok := node_index[link.From]
		if !ok {
			return nil, fmt.Errorf("%w: link %d starts at node %d", ErrUnknownNode, link.ID, link.From)
		}
		node_b, ok := node_index[link.To]
		if !ok {
			return nil, fmt.Errorf("%w: link %d ends at node %d", ErrUnknownNode, link.ID, link.To)
		}
		links.Add(Link{
			NodeA:  node_a,
			NodeB:  node_b,
			Length: link.Length,
			Ref:    int32(i),
		})
	}
	if skipped > 0 {
		slog.Debug(fmt.Sprintf("skipped %v links not usable by mode %v", skipped, mode))
	}

	topology := _BuildTopology(nodes.Length(), Array[Link](links))
	slog.Info(fmt.Sprintf("built graph with %v nodes and %v links", nodes.Length(), links.Length()))
	return &GraphBase{
		nodes:      nodes,
		links:      Array[Link](links),
		topology:   topology,
		net:        net,
		node_index: node_index,
	}, nil
}

func (self *GraphBase) NodeCount() int {
	return len(self.nodes)
}
func (self *GraphBase) LinkCount() int {
	return len(self.links)
}
func (self *GraphBase) IsNode(node int32) bool {
	return node >= 0 && node < int32(len(self.nodes))
}
func (self *GraphBase) GetNode(node int32) Node {
	return self.nodes[node]
}
func (self *GraphBase) GetNodeGeom(node int32) orb.Point {
	return self.nodes[node].Loc
}
func (self *GraphBase) GetLink(link int32) Link {
	return self.links[link]
}

// GetNetworkLink returns the network link a graph link was built from.
func (self *GraphBase) GetNetworkLink(link int32) *network.Link {
	return self.net.GetLink(int(self.links[link].Ref))
}

// GetNodeIndex maps a network node id to its graph index.
func (self *GraphBase) GetNodeIndex(id osm.NodeID) (int32, bool) {
	index, ok := self.node_index[id]
	return index, ok
}
func (self *GraphBase) GetAccessor() *AdjArrayAccessor {
	accessor := self.topology.GetAccessor()
	return &accessor
}
func (self *GraphBase) GetNodeDegree(node int32, dir Direction) int {
	return self.topology.GetDegree(node, dir)
}

// GetLinkGeometry returns the geometry of a link in travel direction.
func (self *GraphBase) GetLinkGeometry(link int32) orb.LineString {
	geom := self.GetNetworkLink(link).Geometry
	if len(geom) >= 2 {
		return geom
	}
	l := self.links[link]
	return orb.LineString{self.nodes[l.NodeA].Loc, self.nodes[l.NodeB].Loc}
}
