package network

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	. "github.com/ttpr0/go-skims/util"
)

var (
	ErrInvalidLink   = errors.New("network: invalid link")
	ErrDuplicateNode = errors.New("network: duplicate node")
)

//*******************************************
// network structs
//*******************************************

type Node struct {
	ID    osm.NodeID
	Point orb.Point
}

// Link is a directed link of the network.
//
// Length is given in meters. Geometry may be empty, in that case the
// straight line between both end nodes is used.
type Link struct {
	ID       int64
	Way      osm.WayID
	From     osm.NodeID
	To       osm.NodeID
	Length   float64
	Tags     osm.Tags
	Modes    ModeSet
	Geometry orb.LineString
}

func (self *Link) RoadType() RoadType {
	return RoadTypeFromString(self.Tags.Find("highway"))
}

//*******************************************
// network interface
//*******************************************

type INetwork interface {
	NodeCount() int
	LinkCount() int
	GetNode(index int) Node
	GetLink(index int) *Link
	// Returns the position of the node with the given id.
	GetNodeIndex(id osm.NodeID) (int, bool)
}

//*******************************************
// in-memory network
//*******************************************

var _ INetwork = &Network{}

type Network struct {
	nodes      List[Node]
	links      List[Link]
	node_index Dict[osm.NodeID, int]
}

func NewNetwork() *Network {
	return &Network{
		nodes:      NewList[Node](100),
		links:      NewList[Link](100),
		node_index: NewDict[osm.NodeID, int](100),
	}
}

func (self *Network) NodeCount() int {
	return self.nodes.Length()
}
func (self *Network) LinkCount() int {
	return self.links.Length()
}
func (self *Network) GetNode(index int) Node {
	return self.nodes[index]
}
func (self *Network) GetLink(index int) *Link {
	return &self.links[index]
}
func (self *Network) GetNodeIndex(id osm.NodeID) (int, bool) {
	index, ok := self.node_index[id]
	return index, ok
}

// Nodes iterates all nodes in insertion order.
func (self *Network) Nodes() func(yield func(int, Node) bool) {
	return func(yield func(int, Node) bool) {
		for i, node := range self.nodes {
			if !yield(i, node) {
				return
			}
		}
	}
}

// Links iterates all links in insertion order.
func (self *Network) Links() func(yield func(int, *Link) bool) {
	return func(yield func(int, *Link) bool) {
		for i := range self.links {
			if !yield(i, &self.links[i]) {
				return
			}
		}
	}
}

func (self *Network) AddNode(id osm.NodeID, point orb.Point) error {
	if self.node_index.ContainsKey(id) {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}
	self.node_index[id] = self.nodes.Length()
	self.nodes.Add(Node{ID: id, Point: point})
	return nil
}

// AddLink adds a directed link and returns its position.
//
// End nodes are not checked here, links to missing nodes are rejected when
// a graph is built from the network. A zero length is replaced by the
// haversine length of the geometry (or of the end nodes if both are known).
func (self *Network) AddLink(link Link) (int, error) {
	if link.Length < 0 {
		return -1, fmt.Errorf("%w: negative length on link %d", ErrInvalidLink, link.ID)
	}
	if link.Length == 0 {
		link.Length = self._HaversineLength(&link)
	}
	if link.Modes == NO_MODES {
		link.Modes = DefaultModes(link.RoadType())
	}
	index := self.links.Length()
	self.links.Add(link)
	return index, nil
}

// AddStreet adds a bidirectional street as two opposing links.
func (self *Network) AddStreet(link Link) (int, int, error) {
	fwd, err := self.AddLink(link)
	if err != nil {
		return -1, -1, err
	}
	back := link
	back.From = link.To
	back.To = link.From
	back.Length = self.links[fwd].Length
	if link.Geometry != nil {
		back.Geometry = link.Geometry.Clone()
		back.Geometry.Reverse()
	}
	bwd, err := self.AddLink(back)
	if err != nil {
		return -1, -1, err
	}
	return fwd, bwd, nil
}

func (self *Network) _HaversineLength(link *Link) float64 {
	if len(link.Geometry) >= 2 {
		return geo.Length(link.Geometry)
	}
	from, ok_from := self.node_index[link.From]
	to, ok_to := self.node_index[link.To]
	if !ok_from || !ok_to {
		return 0
	}
	return geo.Distance(self.nodes[from].Point, self.nodes[to].Point)
}
