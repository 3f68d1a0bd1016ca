package skim

import (
	"math"

	"github.com/ttpr0/go-skims/graph"
	. "github.com/ttpr0/go-skims/util"
	"github.com/ttpr0/go-skims/zones"
)

// UNREACHABLE_LINKS is the link count of cells without a path.
const UNREACHABLE_LINKS = math.MaxUint16

//*******************************************
// matrix result
//*******************************************

// Result holds the indicator matrices of a computation. Cells without a
// path are +Inf (UNREACHABLE_LINKS in LinkCount, nil in Paths).
type Result[K comparable] struct {
	Time      *zones.Matrix[K, float64]
	Distance  *zones.Matrix[K, float64]
	Cost      *zones.Matrix[K, float64]
	LinkCount *zones.Matrix[K, uint16]

	// one matrix per requested attribute, same order as AttributeNames
	Attributes     []*zones.Matrix[K, float64]
	AttributeNames []string

	// nil if paths were not requested
	Paths *zones.PathMatrix[K]

	UnresolvedOrigins      List[K]
	UnresolvedDestinations List[K]
}

func _NewResult[K comparable](origins, destinations *zones.ZoneIndex[K], table *graph.AttributeTable, paths bool) *Result[K] {
	result := &Result[K]{
		Time:                   zones.NewMatrix[K, float64](origins, destinations),
		Distance:               zones.NewMatrix[K, float64](origins, destinations),
		Cost:                   zones.NewMatrix[K, float64](origins, destinations),
		LinkCount:              zones.NewMatrix[K, uint16](origins, destinations),
		UnresolvedOrigins:      NewList[K](0),
		UnresolvedDestinations: NewList[K](0),
	}
	if table != nil {
		result.AttributeNames = table.Names()
		result.Attributes = make([]*zones.Matrix[K, float64], table.Count())
		for i := range result.Attributes {
			result.Attributes[i] = zones.NewMatrix[K, float64](origins, destinations)
		}
	}
	if paths {
		result.Paths = zones.NewPathMatrix(origins, destinations)
	}
	return result
}

// Attribute returns the matrix of the named attribute.
func (self *Result[K]) Attribute(name string) (*zones.Matrix[K, float64], bool) {
	for i, n := range self.AttributeNames {
		if n == name {
			return self.Attributes[i], true
		}
	}
	return nil, false
}

func (self *Result[K]) Origins() *zones.ZoneIndex[K] {
	return self.Time.Origins()
}
func (self *Result[K]) Destinations() *zones.ZoneIndex[K] {
	return self.Time.Destinations()
}

func (self *Result[K]) _SetUnreachable(i, j int) {
	inf := math.Inf(1)
	self.Time.SetAt(i, j, inf)
	self.Distance.SetAt(i, j, inf)
	self.Cost.SetAt(i, j, inf)
	self.LinkCount.SetAt(i, j, UNREACHABLE_LINKS)
	for _, m := range self.Attributes {
		m.SetAt(i, j, inf)
	}
	if self.Paths != nil {
		self.Paths.SetAt(i, j, nil)
	}
}

// _Average divides the accumulated sums of a cell by the number of
// sampling point pairs.
func (self *Result[K]) _Average(i, j int, pairs float64, hops float64) {
	self.Time.SetAt(i, j, self.Time.GetAt(i, j)/pairs)
	self.Distance.SetAt(i, j, self.Distance.GetAt(i, j)/pairs)
	self.Cost.SetAt(i, j, self.Cost.GetAt(i, j)/pairs)
	for _, m := range self.Attributes {
		m.SetAt(i, j, m.GetAt(i, j)/pairs)
	}
	count := math.Round(hops / pairs)
	if count >= UNREACHABLE_LINKS {
		count = UNREACHABLE_LINKS - 1
	}
	self.LinkCount.SetAt(i, j, uint16(count))
}
