package graph

import (
	"fmt"
)

//*******************************************
// build graphs
//*******************************************

func BuildGraph(base *GraphBase, cost *CostModel) *Graph {
	if cost.GetBase() != base {
		panic("cost model was built for another graph base")
	}
	return &Graph{
		base: base,
		cost: cost,
	}
}

// BuildFastestGraph builds a graph with travel time as cost.
func BuildFastestGraph(base *GraphBase, vehicle Vehicle, buckets TimeBuckets) (*Graph, error) {
	cost, err := NewStaticCostModel(base, FastestTime, FastestTime, Traveler{}, vehicle, buckets)
	if err != nil {
		return nil, fmt.Errorf("fastest cost model: %w", err)
	}
	return BuildGraph(base, cost), nil
}

// BuildShortestGraph builds a graph with link length as cost.
func BuildShortestGraph(base *GraphBase, vehicle Vehicle, buckets TimeBuckets) (*Graph, error) {
	cost, err := NewStaticCostModel(base, FastestTime, ShortestDistance, Traveler{}, vehicle, buckets)
	if err != nil {
		return nil, fmt.Errorf("shortest cost model: %w", err)
	}
	return BuildGraph(base, cost), nil
}
