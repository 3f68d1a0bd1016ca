package graph

import (
	"strconv"

	"github.com/ttpr0/go-skims/network"
	. "github.com/ttpr0/go-skims/util"
)

//*******************************************
// link attributes
//*******************************************

// LinkAttribute extracts a numeric value from a link.
//
// Values are accumulated along shortest paths, Func has to be pure.
type LinkAttribute struct {
	Name string
	Func func(link *network.Link) float64
}

// TagAttribute reads a numeric osm tag, missing or non numeric values are 0.
func TagAttribute(key string) LinkAttribute {
	return LinkAttribute{
		Name: key,
		Func: func(link *network.Link) float64 {
			value, err := strconv.ParseFloat(link.Tags.Find(key), 64)
			if err != nil {
				return 0
			}
			return value
		},
	}
}

// RoadTypeDistance gives the link length on links of the given road types
// and 0 elsewhere.
func RoadTypeDistance(name string, types ...network.RoadType) LinkAttribute {
	return LinkAttribute{
		Name: name,
		Func: func(link *network.Link) float64 {
			if Contains(types, link.RoadType()) {
				return link.Length
			}
			return 0
		},
	}
}

// TagDistance gives the link length on links where tag key equals value.
func TagDistance(name string, key string, value string) LinkAttribute {
	return LinkAttribute{
		Name: name,
		Func: func(link *network.Link) float64 {
			if link.Tags.Find(key) == value {
				return link.Length
			}
			return 0
		},
	}
}

//*******************************************
// attribute table
//*******************************************

// AttributeTable holds the evaluated attributes of all links of a graph.
//
// Attributes are addressed by position; names are only kept for lookups
// when reading or writing results.
type AttributeTable struct {
	names  Array[string]
	values Array[float64]
}

func BuildAttributeTable(base *GraphBase, attributes []LinkAttribute) *AttributeTable {
	count := len(attributes)
	names := NewArray[string](count)
	for i, attr := range attributes {
		names[i] = attr.Name
	}
	values := NewArray[float64](count * base.LinkCount())
	for i := 0; i < base.LinkCount(); i++ {
		link := base.GetNetworkLink(int32(i))
		for j, attr := range attributes {
			values[i*count+j] = attr.Func(link)
		}
	}
	return &AttributeTable{
		names:  names,
		values: values,
	}
}

func (self *AttributeTable) Count() int {
	return len(self.names)
}
func (self *AttributeTable) Name(pos int) string {
	return self.names[pos]
}
func (self *AttributeTable) Names() []string {
	names := make([]string, len(self.names))
	copy(names, self.names)
	return names
}

// Index returns the position of a named attribute.
func (self *AttributeTable) Index(name string) (int, bool) {
	for i, n := range self.names {
		if n == name {
			return i, true
		}
	}
	return -1, false
}
func (self *AttributeTable) Get(link int32, pos int) float64 {
	return self.values[int(link)*len(self.names)+pos]
}
