package zones

import (
	. "github.com/ttpr0/go-skims/util"
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

//*******************************************
// numeric matrix
//*******************************************

// Matrix is a dense origin x destination matrix stored row-major.
//
// Cells are not synchronized. Concurrent writers have to write disjoint
// cells (e.g. one row per worker).
type Matrix[K comparable, V Number] struct {
	origins      *ZoneIndex[K]
	destinations *ZoneIndex[K]
	values       Array[V]
}

func NewMatrix[K comparable, V Number](origins, destinations *ZoneIndex[K]) *Matrix[K, V] {
	return &Matrix[K, V]{
		origins:      origins,
		destinations: destinations,
		values:       NewArray[V](origins.Length() * destinations.Length()),
	}
}

func (self *Matrix[K, V]) Origins() *ZoneIndex[K] {
	return self.origins
}
func (self *Matrix[K, V]) Destinations() *ZoneIndex[K] {
	return self.destinations
}
func (self *Matrix[K, V]) Rows() int {
	return self.origins.Length()
}
func (self *Matrix[K, V]) Cols() int {
	return self.destinations.Length()
}

func (self *Matrix[K, V]) Get(origin, destination K) (V, error) {
	i, j, err := self._Cell(origin, destination)
	if err != nil {
		var v V
		return v, err
	}
	return self.GetAt(i, j), nil
}
func (self *Matrix[K, V]) Set(origin, destination K, value V) error {
	i, j, err := self._Cell(origin, destination)
	if err != nil {
		return err
	}
	self.SetAt(i, j, value)
	return nil
}

// Add accumulates value into a cell.
func (self *Matrix[K, V]) Add(origin, destination K, value V) error {
	i, j, err := self._Cell(origin, destination)
	if err != nil {
		return err
	}
	self.AddAt(i, j, value)
	return nil
}

func (self *Matrix[K, V]) GetAt(i, j int) V {
	return self.values[i*self.destinations.Length()+j]
}
func (self *Matrix[K, V]) SetAt(i, j int, value V) {
	self.values[i*self.destinations.Length()+j] = value
}
func (self *Matrix[K, V]) AddAt(i, j int, value V) {
	self.values[i*self.destinations.Length()+j] += value
}

// Row returns a view on row i.
func (self *Matrix[K, V]) Row(i int) []V {
	cols := self.destinations.Length()
	return self.values[i*cols : (i+1)*cols]
}

func (self *Matrix[K, V]) Fill(value V) {
	self.values.Fill(value)
}
func (self *Matrix[K, V]) FillRow(i int, value V) {
	row := self.Row(i)
	for j := range row {
		row[j] = value
	}
}
func (self *Matrix[K, V]) FillColumn(j int, value V) {
	for i := 0; i < self.origins.Length(); i++ {
		self.SetAt(i, j, value)
	}
}

func (self *Matrix[K, V]) _Cell(origin, destination K) (int, int, error) {
	i, err := self.origins._Get(origin)
	if err != nil {
		return -1, -1, err
	}
	j, err := self.destinations._Get(destination)
	if err != nil {
		return -1, -1, err
	}
	return i, j, nil
}

//*******************************************
// path matrix
//*******************************************

// PathMatrix stores a link sequence per origin destination pair.
type PathMatrix[K comparable] struct {
	origins      *ZoneIndex[K]
	destinations *ZoneIndex[K]
	paths        Array[[]int32]
}

func NewPathMatrix[K comparable](origins, destinations *ZoneIndex[K]) *PathMatrix[K] {
	return &PathMatrix[K]{
		origins:      origins,
		destinations: destinations,
		paths:        NewArray[[]int32](origins.Length() * destinations.Length()),
	}
}

func (self *PathMatrix[K]) Origins() *ZoneIndex[K] {
	return self.origins
}
func (self *PathMatrix[K]) Destinations() *ZoneIndex[K] {
	return self.destinations
}

// Get returns the links of a cell, nil if no path is stored.
func (self *PathMatrix[K]) Get(origin, destination K) ([]int32, error) {
	i, err := self.origins._Get(origin)
	if err != nil {
		return nil, err
	}
	j, err := self.destinations._Get(destination)
	if err != nil {
		return nil, err
	}
	return self.GetAt(i, j), nil
}
func (self *PathMatrix[K]) Set(origin, destination K, links []int32) error {
	i, err := self.origins._Get(origin)
	if err != nil {
		return err
	}
	j, err := self.destinations._Get(destination)
	if err != nil {
		return err
	}
	self.SetAt(i, j, links)
	return nil
}
func (self *PathMatrix[K]) GetAt(i, j int) []int32 {
	return self.paths[i*self.destinations.Length()+j]
}
func (self *PathMatrix[K]) SetAt(i, j int, links []int32) {
	self.paths[i*self.destinations.Length()+j] = links
}
