package util

import (
	"golang.org/x/exp/constraints"
)

//*******************************************
// indexed min-heap
//*******************************************

// IndexedMinHeap is a binary min-heap over dense indices [0, n).
//
// Priorities are not stored in the heap itself, they are read and written
// through the accessors given on creation (usually closures over a cost
// array owned by the caller). Every index is contained at most once.
//
// Not thread safe, use one instance per worker.
type IndexedMinHeap[P constraints.Ordered] struct {
	heap     Array[int32]
	position Array[int32]
	size     int32
	get      func(int32) P
	set      func(int32, P)
}

func NewIndexedMinHeap[P constraints.Ordered](n int, get func(int32) P, set func(int32, P)) *IndexedMinHeap[P] {
	return &IndexedMinHeap[P]{
		heap:     NewArray[int32](n),
		position: NewArray[int32](n),
		size:     0,
		get:      get,
		set:      set,
	}
}

func (self *IndexedMinHeap[P]) IsEmpty() bool {
	return self.size == 0
}
func (self *IndexedMinHeap[P]) Size() int {
	return int(self.size)
}

// Contains reports whether index is currently queued.
//
// Positions of removed indices are never cleared, an index only counts as
// contained if the heap slot it points to refers back to it.
func (self *IndexedMinHeap[P]) Contains(index int32) bool {
	pos := self.position[index]
	return pos >= 0 && pos < self.size && self.heap[pos] == index
}

// Insert adds index with its current priority. index must not be contained.
func (self *IndexedMinHeap[P]) Insert(index int32) {
	pos := self.size
	self.heap[pos] = index
	self.position[index] = pos
	self.size += 1
	self._SiftUp(pos)
}

// DecreaseKey lowers the priority of a contained index.
//
// The new priority must not be larger than the current one.
func (self *IndexedMinHeap[P]) DecreaseKey(index int32, priority P) {
	self.set(index, priority)
	self._SiftUp(self.position[index])
}

// PollMin removes and returns the index with the smallest priority.
//
// Returns false if the heap is empty.
func (self *IndexedMinHeap[P]) PollMin() (int32, bool) {
	if self.size == 0 {
		return -1, false
	}
	min := self.heap[0]
	self.size -= 1
	if self.size > 0 {
		last := self.heap[self.size]
		self.heap[0] = last
		self.position[last] = 0
		self._SiftDown(0)
	}
	return min, true
}

// Peek returns the index with the smallest priority without removing it.
func (self *IndexedMinHeap[P]) Peek() (int32, bool) {
	if self.size == 0 {
		return -1, false
	}
	return self.heap[0], true
}

// Clear empties the heap in constant time.
func (self *IndexedMinHeap[P]) Clear() {
	self.size = 0
}

func (self *IndexedMinHeap[P]) _SiftUp(pos int32) {
	index := self.heap[pos]
	priority := self.get(index)
	for pos > 0 {
		parent_pos := (pos - 1) / 2
		parent := self.heap[parent_pos]
		if !(priority < self.get(parent)) {
			break
		}
		self.heap[pos] = parent
		self.position[parent] = pos
		pos = parent_pos
	}
	self.heap[pos] = index
	self.position[index] = pos
}

func (self *IndexedMinHeap[P]) _SiftDown(pos int32) {
	index := self.heap[pos]
	priority := self.get(index)
	for {
		child_pos := 2*pos + 1
		if child_pos >= self.size {
			break
		}
		child := self.heap[child_pos]
		child_priority := self.get(child)
		if right_pos := child_pos + 1; right_pos < self.size {
			right := self.heap[right_pos]
			right_priority := self.get(right)
			if right_priority < child_priority {
				child_pos = right_pos
				child = right
				child_priority = right_priority
			}
		}
		if !(child_priority < priority) {
			break
		}
		self.heap[pos] = child
		self.position[child] = pos
		pos = child_pos
	}
	self.heap[pos] = index
	self.position[index] = pos
}
