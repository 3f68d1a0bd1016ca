package graph

import (
	. "github.com/ttpr0/go-skims/util"
)

//*******************************************
// adjacency array
//*******************************************

// AdjacencyArray stores outgoing and incoming links of every node
// contiguously (offsets into flat link/neighbour arrays).
type AdjacencyArray struct {
	fwd_offsets Array[int32]
	fwd_links   Array[int32]
	fwd_others  Array[int32]
	bwd_offsets Array[int32]
	bwd_links   Array[int32]
	bwd_others  Array[int32]
}

func _BuildTopology(node_count int, links Array[Link]) AdjacencyArray {
	fwd_offsets := NewArray[int32](node_count + 1)
	bwd_offsets := NewArray[int32](node_count + 1)
	for _, link := range links {
		fwd_offsets[link.NodeA+1] += 1
		bwd_offsets[link.NodeB+1] += 1
	}
	for i := 1; i <= node_count; i++ {
		fwd_offsets[i] += fwd_offsets[i-1]
		bwd_offsets[i] += bwd_offsets[i-1]
	}

	fwd_links := NewArray[int32](links.Length())
	fwd_others := NewArray[int32](links.Length())
	bwd_links := NewArray[int32](links.Length())
	bwd_others := NewArray[int32](links.Length())
	fwd_fill := NewArray[int32](node_count)
	bwd_fill := NewArray[int32](node_count)
	for i, link := range links {
		pos := fwd_offsets[link.NodeA] + fwd_fill[link.NodeA]
		fwd_links[pos] = int32(i)
		fwd_others[pos] = link.NodeB
		fwd_fill[link.NodeA] += 1

		pos = bwd_offsets[link.NodeB] + bwd_fill[link.NodeB]
		bwd_links[pos] = int32(i)
		bwd_others[pos] = link.NodeA
		bwd_fill[link.NodeB] += 1
	}

	return AdjacencyArray{
		fwd_offsets: fwd_offsets,
		fwd_links:   fwd_links,
		fwd_others:  fwd_others,
		bwd_offsets: bwd_offsets,
		bwd_links:   bwd_links,
		bwd_others:  bwd_others,
	}
}

func (self *AdjacencyArray) GetDegree(node int32, dir Direction) int {
	if dir == FORWARD {
		return int(self.fwd_offsets[node+1] - self.fwd_offsets[node])
	}
	return int(self.bwd_offsets[node+1] - self.bwd_offsets[node])
}

func (self *AdjacencyArray) GetAccessor() AdjArrayAccessor {
	return AdjArrayAccessor{
		topology: self,
		pos:      0,
		end:      0,
	}
}

//*******************************************
// adjacency accessor
//*******************************************

// AdjArrayAccessor iterates the links of one node without allocating.
//
//	accessor.SetBaseNode(node, FORWARD)
//	for accessor.Next() {
//		link, other := accessor.GetLinkID(), accessor.GetOtherID()
//	}
//
// Not thread safe, use one accessor per worker.
type AdjArrayAccessor struct {
	topology *AdjacencyArray
	links    Array[int32]
	others   Array[int32]
	pos      int32
	end      int32
	link_id  int32
	other_id int32
}

// SetBaseNode resets the accessor to the outgoing (FORWARD) or
// incoming (BACKWARD) links of node.
func (self *AdjArrayAccessor) SetBaseNode(node int32, dir Direction) {
	var offsets Array[int32]
	if dir == FORWARD {
		offsets = self.topology.fwd_offsets
		self.links = self.topology.fwd_links
		self.others = self.topology.fwd_others
	} else {
		offsets = self.topology.bwd_offsets
		self.links = self.topology.bwd_links
		self.others = self.topology.bwd_others
	}
	self.pos = offsets[node]
	self.end = offsets[node+1]
}
func (self *AdjArrayAccessor) Next() bool {
	if self.pos >= self.end {
		return false
	}
	self.link_id = self.links[self.pos]
	self.other_id = self.others[self.pos]
	self.pos += 1
	return true
}
func (self *AdjArrayAccessor) GetLinkID() int32 {
	return self.link_id
}

// GetOtherID returns the node at the other end of the current link.
func (self *AdjArrayAccessor) GetOtherID() int32 {
	return self.other_id
}
