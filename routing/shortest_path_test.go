package routing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-skims/graph"
	"github.com/ttpr0/go-skims/network"
	. "github.com/ttpr0/go-skims/util"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

type _TestLink struct {
	From   int
	To     int
	Length float64
	Tags   osm.Tags
}

func _BuildNetwork(t *testing.T, node_count int, links []_TestLink) *network.Network {
	net := network.NewNetwork()
	for i := 0; i < node_count; i++ {
		require.NoError(t, net.AddNode(osm.NodeID(i+1), orb.Point{float64(i), float64(i % 3)}))
	}
	for i, l := range links {
		_, err := net.AddLink(network.Link{
			ID:     int64(i),
			From:   osm.NodeID(l.From + 1),
			To:     osm.NodeID(l.To + 1),
			Length: l.Length,
			Tags:   l.Tags,
		})
		require.NoError(t, err)
	}
	return net
}

// graph with cost = time = length
func _BuildGraph(t *testing.T, node_count int, links []_TestLink) *graph.Graph {
	base, err := graph.BuildGraphBase(_BuildNetwork(t, node_count, links), network.ALL_MODES)
	require.NoError(t, err)
	cost, err := graph.NewStaticCostModel(base, graph.ShortestDistance, graph.ShortestDistance, graph.Traveler{}, graph.Vehicle{}, graph.DEFAULT_BUCKETS)
	require.NoError(t, err)
	return graph.BuildGraph(base, cost)
}

// A->B->C->D with length 1 and a direct link A->D with length 5
func _SquareGraph(t *testing.T) *graph.Graph {
	return _BuildGraph(t, 4, []_TestLink{
		{0, 1, 1, osm.Tags{{Key: "lanes", Value: "2"}}},
		{1, 2, 1, osm.Tags{{Key: "lanes", Value: "1"}}},
		{2, 3, 1, osm.Tags{{Key: "lanes", Value: "3"}}},
		{0, 3, 5, osm.Tags{{Key: "lanes", Value: "4"}}},
	})
}

func _LineGraph(t *testing.T, n int) *graph.Graph {
	links := make([]_TestLink, 0, n-1)
	for i := 0; i < n-1; i++ {
		links = append(links, _TestLink{From: i, To: i + 1, Length: 1})
	}
	return _BuildGraph(t, n, links)
}

func _RandomLinks(rng *rand.Rand, n int, m int) []_TestLink {
	seen := NewDict[Tuple[int, int], bool](m)
	links := make([]_TestLink, 0, m)
	for len(links) < m {
		a := rng.Intn(n)
		b := rng.Intn(n)
		key := MakeTuple(a, b)
		if a == b || seen.ContainsKey(key) {
			continue
		}
		seen[key] = true
		links = append(links, _TestLink{From: a, To: b, Length: 1 + float64(rng.Intn(100))/10})
	}
	return links
}

type _TreeLabels struct {
	Cost  []float64
	Time  []Optional[float64]
	Dist  []float64
	Attr  []float64
	Pred  []int32
	Count []int
}

func _CollectLabels(tree *ShortestPathTree) _TreeLabels {
	n := tree.Graph().NodeCount()
	labels := _TreeLabels{}
	for i := int32(0); i < int32(n); i++ {
		labels.Cost = append(labels.Cost, tree.GetCost(i))
		labels.Time = append(labels.Time, tree.GetTime(i))
		labels.Dist = append(labels.Dist, tree.GetDistance(i))
		labels.Pred = append(labels.Pred, tree.GetPredecessor(i))
		labels.Count = append(labels.Count, tree.GetLinkCount(i))
		for a := 0; a < tree.AttributeCount(); a++ {
			labels.Attr = append(labels.Attr, tree.GetAttribute(i, a))
		}
	}
	return labels
}

func TestSquareGraph(t *testing.T) {
	g := _SquareGraph(t)
	tree := NewShortestPathTree(g, graph.FORWARD)
	tree.Calculate(0, 100)

	assert.Equal(t, 3.0, tree.GetCost(3))
	assert.Equal(t, 3.0, tree.GetDistance(3))
	assert.Equal(t, Some(103.0), tree.GetTime(3))
	assert.Equal(t, 3.0, tree.GetTravelTime(3))
	assert.Equal(t, 3, tree.GetLinkCount(3))
	assert.Equal(t, List[int32]{0, 1, 2}, tree.GetPathLinks(3))
	assert.Equal(t, List[int32]{0, 1, 2, 3}, tree.GetPathNodes(3))
	assert.Equal(t, 4, tree.SettledCount())

	// the root is reached with zero cost, which is not the same as unreached
	assert.True(t, tree.IsReached(0))
	assert.Equal(t, 0.0, tree.GetCost(0))
	assert.Equal(t, Some(100.0), tree.GetTime(0))
	assert.Empty(t, tree.GetPathLinks(0))
	assert.Equal(t, List[int32]{0}, tree.GetPathNodes(0))
}

func TestSquareGraphGeometry(t *testing.T) {
	g := _SquareGraph(t)
	tree := NewShortestPathTree(g, graph.FORWARD)
	tree.Calculate(0, 0)

	geom := tree.GetPathGeometry(3)
	expected := orb.LineString{g.GetNodeGeom(0), g.GetNodeGeom(1), g.GetNodeGeom(2), g.GetNodeGeom(3)}
	assert.Equal(t, expected, geom)
	assert.Equal(t, orb.LineString{g.GetNodeGeom(0)}, tree.GetPathGeometry(0))
}

func TestReverseTree(t *testing.T) {
	g := _SquareGraph(t)
	tree := NewShortestPathTree(g, graph.BACKWARD)
	tree.Calculate(3, 1000)

	assert.Equal(t, 3.0, tree.GetCost(0))
	assert.Equal(t, 2.0, tree.GetCost(1))
	assert.Equal(t, 1.0, tree.GetCost(2))
	assert.Equal(t, 0.0, tree.GetCost(3))
	// departure time at A to arrive at D at 1000
	assert.Equal(t, Some(997.0), tree.GetTime(0))
	assert.Equal(t, 3.0, tree.GetTravelTime(0))
	// paths are given in travel direction
	assert.Equal(t, List[int32]{0, 1, 2}, tree.GetPathLinks(0))
	assert.Equal(t, List[int32]{0, 1, 2, 3}, tree.GetPathNodes(0))
}

func TestStopCriterionLineGraph(t *testing.T) {
	g := _LineGraph(t, 10)
	tree := NewShortestPathTree(g, graph.FORWARD)
	tree.CalculateWithStop(0, 0, func(node int32, arrival, cost, dist, departure float64) bool {
		return dist >= 5
	})

	for i := int32(0); i <= 5; i++ {
		assert.Equal(t, float64(i), tree.GetCost(i))
	}
	for i := int32(6); i < 10; i++ {
		assert.True(t, math.IsInf(tree.GetCost(i), 1), "node %v", i)
		assert.False(t, tree.GetTime(i).HasValue())
		assert.False(t, tree.IsReached(i))
	}
}

func TestStopCriterionResetsQueuedNodes(t *testing.T) {
	// star around node 0 with links of length 1..5
	links := make([]_TestLink, 0, 5)
	for i := 1; i <= 5; i++ {
		links = append(links, _TestLink{From: 0, To: i, Length: float64(i)})
	}
	g := _BuildGraph(t, 6, links)
	tree := NewShortestPathTree(g, graph.FORWARD)
	tree.CalculateWithStop(0, 0, MaxCost(2.5))

	assert.Equal(t, 1.0, tree.GetCost(1))
	assert.Equal(t, 2.0, tree.GetCost(2))
	// node 3 triggers the stop and stays settled
	assert.Equal(t, 3.0, tree.GetCost(3))
	// nodes 4 and 5 were queued but never settled
	assert.False(t, tree.IsReached(4))
	assert.False(t, tree.IsReached(5))
	assert.Equal(t, int32(-1), tree.GetPredecessor(5))
}

func TestBuiltinStopCriteria(t *testing.T) {
	g := _LineGraph(t, 10)
	tree := NewShortestPathTree(g, graph.FORWARD)

	tree.CalculateWithStop(0, 0, MaxDistance(4.5))
	assert.True(t, tree.IsReached(5))
	assert.False(t, tree.IsReached(6))

	tree.CalculateWithStop(0, 50, MaxTravelTime(2))
	assert.True(t, tree.IsReached(3))
	assert.False(t, tree.IsReached(4))

	tree.CalculateWithStop(0, 0, AnyOf(nil, MaxCost(7), MaxDistance(1)))
	assert.True(t, tree.IsReached(2))
	assert.False(t, tree.IsReached(3))

	assert.Nil(t, AnyOf(nil, nil))
}

func TestTargetSet(t *testing.T) {
	g := _LineGraph(t, 10)
	tree := NewShortestPathTree(g, graph.FORWARD)
	targets := NewTargetSet(g.NodeCount())
	targets.Add(2)
	targets.Add(4)
	targets.Add(4)
	assert.Equal(t, 2, targets.Count())

	targets.Reset()
	tree.CalculateWithStop(0, 0, targets.Criterion())
	assert.Equal(t, 2.0, tree.GetCost(2))
	assert.Equal(t, 4.0, tree.GetCost(4))
	assert.False(t, tree.IsReached(5))
	assert.Equal(t, 5, tree.SettledCount())

	// a second run needs a reset of the set
	targets.Reset()
	tree.CalculateWithStop(1, 0, targets.Criterion())
	assert.Equal(t, 3.0, tree.GetCost(4))
	assert.False(t, tree.IsReached(5))
}

func TestCalculateFromTwo(t *testing.T) {
	links := make([]_TestLink, 0, 8)
	for i := 0; i < 4; i++ {
		links = append(links, _TestLink{From: i, To: i + 1, Length: 1})
		links = append(links, _TestLink{From: i + 1, To: i, Length: 1})
	}
	g := _BuildGraph(t, 5, links)
	tree := NewShortestPathTree(g, graph.FORWARD)

	tree.CalculateFromTwo(Seed{Node: 1, Cost: 10, Time: 10, Dist: 100}, Seed{Node: 3, Cost: 0.5, Time: 0.5, Dist: 5}, 0, nil)
	assert.Equal(t, 0.5, tree.GetCost(3))
	assert.Equal(t, 1.5, tree.GetCost(2))
	assert.Equal(t, 2.5, tree.GetCost(1))
	assert.Equal(t, 3.5, tree.GetCost(0))
	assert.Equal(t, 1.5, tree.GetCost(4))
	assert.Equal(t, 7.0, tree.GetDistance(1))
	assert.Equal(t, Some(2.5), tree.GetTime(1))
	assert.Equal(t, List[int32]{5, 3}, tree.GetPathLinks(1))

	// the cheaper seed wins if both are on the same node
	tree.CalculateFromTwo(Seed{Node: 2, Cost: 4}, Seed{Node: 2, Cost: 1}, 0, nil)
	assert.Equal(t, 1.0, tree.GetCost(2))
	assert.Equal(t, 3.0, tree.GetCost(0))
}

func TestDisconnected(t *testing.T) {
	g := _BuildGraph(t, 4, []_TestLink{{0, 1, 1, nil}, {2, 3, 1, nil}})
	tree := NewShortestPathTree(g, graph.FORWARD)
	tree.Calculate(0, 0)

	assert.True(t, math.IsInf(tree.GetCost(3), 1))
	assert.True(t, math.IsInf(tree.GetDistance(3), 1))
	assert.True(t, math.IsInf(tree.GetTravelTime(3), 1))
	assert.False(t, tree.GetTime(3).HasValue())
	assert.Equal(t, -1, tree.GetLinkCount(3))
	assert.Empty(t, tree.GetPathLinks(3))
	assert.Empty(t, tree.GetPathNodes(3))
	assert.Nil(t, tree.GetPathGeometry(3))
}

func TestAttributeTree(t *testing.T) {
	g := _SquareGraph(t)
	table := graph.BuildAttributeTable(g.GetBase(), []graph.LinkAttribute{
		graph.TagAttribute("lanes"),
		{Name: "one", Func: func(link *network.Link) float64 { return 1 }},
	})
	tree := NewAttributeShortestPathTree(g, graph.FORWARD, table)
	tree.Calculate(0, 0)

	assert.Equal(t, 2, tree.AttributeCount())
	assert.Equal(t, 6.0, tree.GetAttribute(3, 0))
	assert.Equal(t, 3.0, tree.GetAttribute(3, 1))
	assert.Equal(t, 3.0, tree.GetAttribute(2, 0))
	assert.Equal(t, 0.0, tree.GetAttribute(0, 0))

	reverse := NewAttributeShortestPathTree(g, graph.BACKWARD, table)
	reverse.Calculate(3, 0)
	assert.Equal(t, 6.0, reverse.GetAttribute(0, 0))
	assert.Equal(t, 4.0, reverse.GetAttribute(1, 0))
}

func TestTimeDependentTree(t *testing.T) {
	net := _BuildNetwork(t, 3, []_TestLink{{0, 1, 100, nil}, {1, 2, 100, nil}})
	base, err := graph.BuildGraphBase(net, network.ALL_MODES)
	require.NoError(t, err)
	// links take twice as long after 1000s
	time_func := func(link *network.Link, time float64, traveler *graph.Traveler, vehicle *graph.Vehicle) float64 {
		if time >= 1000 {
			return 2 * link.Length
		}
		return link.Length
	}
	cost := graph.NewDynamicCostModel(base, time_func, graph.ShortestDistance, graph.Traveler{}, graph.Vehicle{})
	tree := NewShortestPathTree(graph.BuildGraph(base, cost), graph.FORWARD)

	tree.Calculate(0, 850)
	assert.Equal(t, Some(950.0), tree.GetTime(1))
	assert.Equal(t, Some(1050.0), tree.GetTime(2))

	tree.Calculate(0, 950)
	assert.Equal(t, Some(1050.0), tree.GetTime(1))
	assert.Equal(t, Some(1250.0), tree.GetTime(2))
	assert.Equal(t, 300.0, tree.GetTravelTime(2))
	assert.Equal(t, 200.0, tree.GetCost(2))
}

func TestAgainstBellmanFord(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 20; round++ {
		n := 5 + rng.Intn(46)
		m := n * (1 + rng.Intn(3))
		if m > n*(n-1) {
			m = n * (n - 1)
		}
		links := _RandomLinks(rng, n, m)
		g := _BuildGraph(t, n, links)

		reference := simple.NewWeightedDirectedGraph(0, math.Inf(1))
		for i := 0; i < n; i++ {
			reference.AddNode(simple.Node(i))
		}
		for _, l := range links {
			reference.SetWeightedEdge(reference.NewWeightedEdge(simple.Node(l.From), simple.Node(l.To), l.Length))
		}

		forward := NewShortestPathTree(g, graph.FORWARD)
		backward := NewShortestPathTree(g, graph.BACKWARD)
		for source := 0; source < n; source += 1 + rng.Intn(3) {
			shortest, ok := path.BellmanFordFrom(simple.Node(source), reference)
			require.True(t, ok)

			forward.Calculate(int32(source), 0)
			for target := 0; target < n; target++ {
				expected := shortest.WeightTo(int64(target))
				actual := forward.GetCost(int32(target))
				if math.IsInf(expected, 1) {
					assert.True(t, math.IsInf(actual, 1))
					continue
				}
				assert.InDelta(t, expected, actual, 1e-9)

				// the reconstructed path has the same cost
				sum := 0.0
				for _, link := range forward.GetPathLinks(int32(target)) {
					sum += g.GetLinkCost(link, 0)
				}
				assert.InDelta(t, expected, sum, 1e-9)

				// reverse tree from target sees the same cost
				backward.Calculate(int32(target), 0)
				assert.InDelta(t, expected, backward.GetCost(int32(source)), 1e-9)
			}
		}
	}
}

func TestIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	links := _RandomLinks(rng, 40, 120)
	for i := range links {
		links[i].Tags = osm.Tags{{Key: "toll", Value: "1.5"}}
	}
	g := _BuildGraph(t, 40, links)
	table := graph.BuildAttributeTable(g.GetBase(), []graph.LinkAttribute{graph.TagAttribute("toll")})
	tree := NewAttributeShortestPathTree(g, graph.FORWARD, table)

	tree.Calculate(7, 0)
	first := _CollectLabels(tree)
	tree.Calculate(7, 0)
	second := _CollectLabels(tree)
	assert.Equal(t, first, second)
}

func TestResetBetweenRuns(t *testing.T) {
	// two components, runs from a must not leave labels for a run from b
	g := _BuildGraph(t, 6, []_TestLink{
		{0, 1, 1, nil}, {1, 2, 1, nil}, {2, 0, 1, nil},
		{3, 4, 2, nil}, {4, 5, 2, nil},
	})
	reused := NewShortestPathTree(g, graph.FORWARD)
	fresh := NewShortestPathTree(g, graph.FORWARD)

	reused.Calculate(0, 0)
	reused.Calculate(3, 0)
	fresh.Calculate(3, 0)
	assert.Equal(t, _CollectLabels(fresh), _CollectLabels(reused))
	assert.False(t, reused.IsReached(1))
	assert.Equal(t, 3, reused.SettledCount())
}
