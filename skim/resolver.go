package skim

import (
	"fmt"

	"github.com/paulmach/osm"
	"github.com/ttpr0/go-skims/graph"
	. "github.com/ttpr0/go-skims/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// zone resolver
//*******************************************

// IZoneResolver maps a zone to its sampling points (graph node indices).
// An empty result marks the zone as unresolved. An index outside of the
// graph is an error of the resolver and fails the whole computation with
// graph.ErrUnknownNode.
type IZoneResolver[K comparable] interface {
	Resolve(zone K) List[int32]
}

// ZoneNodes resolves zones from a fixed mapping to node indices.
type ZoneNodes[K comparable] Dict[K, List[int32]]

func (self ZoneNodes[K]) Resolve(zone K) List[int32] {
	return self[zone]
}

//*******************************************
// osm node resolver
//*******************************************

// NodeIDResolver resolves zones through the osm ids of their sampling
// points. Ids missing from the graph are dropped.
type NodeIDResolver[K comparable] struct {
	base  *graph.GraphBase
	zones List[K]
	nodes Dict[K, List[osm.NodeID]]
}

func NewNodeIDResolver[K comparable](base *graph.GraphBase) *NodeIDResolver[K] {
	return &NodeIDResolver[K]{
		base:  base,
		zones: NewList[K](100),
		nodes: NewDict[K, List[osm.NodeID]](100),
	}
}

// Add appends a sampling point to zone.
func (self *NodeIDResolver[K]) Add(zone K, id osm.NodeID) {
	nodes, ok := self.nodes[zone]
	if !ok {
		self.zones.Add(zone)
		nodes = NewList[osm.NodeID](1)
	}
	nodes.Add(id)
	self.nodes[zone] = nodes
}

// Zones returns all zones in the order they were added.
func (self *NodeIDResolver[K]) Zones() []K {
	zones := make([]K, self.zones.Length())
	copy(zones, self.zones)
	return zones
}

func (self *NodeIDResolver[K]) Resolve(zone K) List[int32] {
	ids := self.nodes[zone]
	nodes := NewList[int32](ids.Length())
	for _, id := range ids {
		node, ok := self.base.GetNodeIndex(id)
		if !ok {
			slog.Debug(fmt.Sprintf("node %v of zone %v not in graph", id, zone))
			continue
		}
		nodes.Add(node)
	}
	return nodes
}

type _ZoneRow struct {
	Zone string `csv:"zone"`
	Node int64  `csv:"node"`
}

// LoadZoneCSV reads sampling points from a ';' separated file with the
// columns zone and node (osm node id). A zone may appear in several rows.
func LoadZoneCSV(filename string, base *graph.GraphBase) (*NodeIDResolver[string], error) {
	rows, err := ReadCSVFromFile[_ZoneRow](filename, ';')
	if err != nil {
		return nil, err
	}
	resolver := NewNodeIDResolver[string](base)
	for _, row := range rows {
		if row.Zone == "" {
			continue
		}
		resolver.Add(row.Zone, osm.NodeID(row.Node))
	}
	slog.Info(fmt.Sprintf("loaded %v zones from %v", resolver.zones.Length(), filename))
	return resolver, nil
}
