package routing

import (
	"math"

	. "github.com/ttpr0/go-skims/util"
)

//*******************************************
// stop criteria
//*******************************************

// MaxCost stops once a node with a cost above max is settled.
func MaxCost(max float64) StopCriterion {
	return func(node int32, arrival, cost, dist, departure float64) bool {
		return cost > max
	}
}

// MaxDistance stops once a node farther than max is settled.
//
// Nodes are settled in cost order, so unless cost equals distance nodes
// within max can be left unvisited. Use it as an approximate search bound
// only and filter results by GetDistance where exact containment matters.
func MaxDistance(max float64) StopCriterion {
	return func(node int32, arrival, cost, dist, departure float64) bool {
		return dist > max
	}
}

// MaxTravelTime stops once a node with a travel time above max is settled.
func MaxTravelTime(max float64) StopCriterion {
	return func(node int32, arrival, cost, dist, departure float64) bool {
		return math.Abs(arrival-departure) > max
	}
}

// AnyOf stops as soon as one of the criteria does. nil criteria are skipped.
func AnyOf(criteria ...StopCriterion) StopCriterion {
	active := NewList[StopCriterion](len(criteria))
	for _, c := range criteria {
		if c != nil {
			active.Add(c)
		}
	}
	switch active.Length() {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(node int32, arrival, cost, dist, departure float64) bool {
		for _, c := range active {
			if c(node, arrival, cost, dist, departure) {
				return true
			}
		}
		return false
	}
}

//*******************************************
// target set
//*******************************************

// TargetSet stops a search once all of its nodes are settled.
//
// Reset has to be called before every search. Not thread safe.
type TargetSet struct {
	is_target Array[bool]
	count     int
	remaining int
}

func NewTargetSet(node_count int) *TargetSet {
	return &TargetSet{
		is_target: NewArray[bool](node_count),
	}
}

// Add marks node as target, duplicates are ignored.
func (self *TargetSet) Add(node int32) {
	if self.is_target[node] {
		return
	}
	self.is_target[node] = true
	self.count += 1
}
func (self *TargetSet) Count() int {
	return self.count
}
func (self *TargetSet) Reset() {
	self.remaining = self.count
}

// Criterion returns a StopCriterion over the remaining targets.
func (self *TargetSet) Criterion() StopCriterion {
	return func(node int32, arrival, cost, dist, departure float64) bool {
		if !self.is_target[node] {
			return false
		}
		self.remaining -= 1
		return self.remaining <= 0
	}
}
