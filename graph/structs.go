package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

//*******************************************
// graph structs
//*******************************************

type Node struct {
	ID  osm.NodeID
	Loc orb.Point
}

// Link is a directed link from NodeA to NodeB.
//
// Ref is the position of the link inside the network the graph was built from.
type Link struct {
	NodeA  int32
	NodeB  int32
	Length float64
	Ref    int32
}

// Vehicle describes the vehicle a cost model is evaluated for.
type Vehicle struct {
	Type VehicleType
	// maximum speed in km/h, zero means unlimited
	MaxSpeed float64
}

// Traveler carries the per-person context of a cost model.
type Traveler struct {
	Name         string
	Coefficients Coefficients
}

// Coefficients weight the components of a generalized cost.
//
// Features are matched by position against the feature attributes of a
// persona cost model.
type Coefficients struct {
	Time     float64   `yaml:"time" json:"time"`
	Distance float64   `yaml:"distance" json:"distance"`
	Features []float64 `yaml:"features" json:"features"`
}
