package routing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-skims/graph"
	. "github.com/ttpr0/go-skims/util"
)

func TestBidirectionalSquare(t *testing.T) {
	g := _SquareGraph(t)
	search := NewBidirectionalSearch(g)

	require.True(t, search.Calculate(0, 3, 0))
	assert.Equal(t, 3.0, search.GetCost())
	assert.Equal(t, List[int32]{0, 1, 2}, search.GetPathLinks())
	assert.Equal(t, 3.0, search.GetDistance())
	assert.Equal(t, 3.0, search.GetTravelTime())
	assert.Len(t, search.GetPathGeometry(), 4)

	// reverse direction is not connected
	assert.False(t, search.Calculate(3, 0, 0))
	assert.True(t, math.IsInf(search.GetCost(), 1))
	assert.Empty(t, search.GetPathLinks())
	assert.Nil(t, search.GetPathGeometry())

	require.True(t, search.Calculate(2, 2, 0))
	assert.Equal(t, 0.0, search.GetCost())
	assert.Empty(t, search.GetPathLinks())
	assert.Equal(t, int32(2), search.GetMeetingNode())
}

func TestBidirectionalAgainstTree(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 10; round++ {
		n := 10 + rng.Intn(40)
		g := _BuildGraph(t, n, _RandomLinks(rng, n, 3*n))
		tree := NewShortestPathTree(g, graph.FORWARD)
		search := NewBidirectionalSearch(g)

		for i := 0; i < 10; i++ {
			source := int32(rng.Intn(n))
			target := int32(rng.Intn(n))
			tree.Calculate(source, 0)

			found := search.Calculate(source, target, 0)
			assert.Equal(t, tree.IsReached(target), found)
			if !found {
				continue
			}
			assert.InDelta(t, tree.GetCost(target), search.GetCost(), 1e-9)

			// the path is connected and has the found cost
			links := search.GetPathLinks()
			curr := source
			sum := 0.0
			for _, link := range links {
				l := g.GetLink(link)
				require.Equal(t, curr, l.NodeA)
				curr = l.NodeB
				sum += g.GetLinkCost(link, 0)
			}
			assert.Equal(t, target, curr)
			assert.InDelta(t, search.GetCost(), sum, 1e-9)
		}
	}
}
