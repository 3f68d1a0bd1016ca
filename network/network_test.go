package network

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	net, err := LoadCSV("./testdata/nodes.csv", "./testdata/links.csv")
	require.NoError(t, err)

	assert.Equal(t, 4, net.NodeCount())
	// three streets in both directions and one oneway link
	assert.Equal(t, 7, net.LinkCount())

	index, ok := net.GetNodeIndex(3)
	require.True(t, ok)
	assert.Equal(t, orb.Point{8.001, 53.001}, net.GetNode(index).Point)

	first := net.GetLink(0)
	assert.Equal(t, int64(10), first.ID)
	assert.Equal(t, osm.WayID(100), first.Way)
	assert.Equal(t, osm.NodeID(1), first.From)
	assert.Equal(t, osm.NodeID(2), first.To)
	assert.Equal(t, "30", first.Tags.Find("maxspeed"))
	assert.Equal(t, RESIDENTIAL, first.RoadType())
	assert.Equal(t, ALL_MODES, first.Modes)

	back := net.GetLink(1)
	assert.Equal(t, osm.NodeID(2), back.From)
	assert.Equal(t, osm.NodeID(1), back.To)
	assert.Equal(t, 70.0, back.Length)

	oneway := net.GetLink(2)
	assert.Equal(t, CAR, oneway.Modes)
	assert.Equal(t, "2", oneway.Tags.Find("lanes"))

	footway := net.GetLink(3)
	assert.Equal(t, FOOT, footway.Modes)
	assert.Equal(t, "yes", footway.Tags.Find("lit"))
	// zero length is replaced by the haversine distance, about 67m here
	assert.InDelta(t, 67, footway.Length, 2)

	count := 0
	net.Nodes()(func(i int, node Node) bool {
		assert.Equal(t, net.GetNode(i), node)
		count += 1
		return true
	})
	assert.Equal(t, 4, count)
	count = 0
	net.Links()(func(i int, link *Link) bool {
		assert.Same(t, net.GetLink(i), link)
		count += 1
		return true
	})
	assert.Equal(t, 7, count)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV("./testdata/nodes.csv", "./testdata/missing.csv")
	assert.Error(t, err)
}

func TestLoadCSVInvalidLinks(t *testing.T) {
	nodes := "id;lon;lat\n1;0;0\n2;0;1\n"

	_, err := LoadCSVFrom(strings.NewReader(nodes), strings.NewReader("id;from;to;length\n1;1;2;-3\n"))
	assert.ErrorIs(t, err, ErrInvalidLink)

	_, err = LoadCSVFrom(strings.NewReader(nodes), strings.NewReader("id;from;to;tags\n1;1;2;lanes\n"))
	assert.ErrorIs(t, err, ErrInvalidLink)

	_, err = LoadCSVFrom(strings.NewReader(nodes), strings.NewReader("id;from;to;modes\n1;1;2;boat\n"))
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = LoadCSVFrom(strings.NewReader(nodes+"1;5;5\n"), strings.NewReader("id;from;to\n"))
	assert.ErrorIs(t, err, ErrDuplicateNode)
}

func TestAddStreetGeometry(t *testing.T) {
	net := NewNetwork()
	require.NoError(t, net.AddNode(1, orb.Point{0, 0}))
	require.NoError(t, net.AddNode(2, orb.Point{0, 0.01}))

	line := orb.LineString{{0, 0}, {0.001, 0.005}, {0, 0.01}}
	fwd, bwd, err := net.AddStreet(Link{ID: 1, From: 1, To: 2, Geometry: line})
	require.NoError(t, err)

	a := net.GetLink(fwd)
	b := net.GetLink(bwd)
	assert.Greater(t, a.Length, 1100.0)
	assert.Equal(t, a.Length, b.Length)
	assert.Equal(t, orb.Point{0, 0.01}, b.Geometry[0])
	// the original geometry is left untouched
	assert.Equal(t, orb.Point{0, 0}, line[0])
}

func TestModes(t *testing.T) {
	modes, err := ParseModes("car; bike")
	require.NoError(t, err)
	assert.True(t, modes.Contains(CAR))
	assert.True(t, modes.Contains(CAR|BIKE))
	assert.False(t, modes.Contains(FOOT))
	assert.Equal(t, "car;bike", modes.String())

	all, err := ParseModes("all")
	require.NoError(t, err)
	assert.Equal(t, ALL_MODES, all)
	assert.True(t, all.Contains(ALL_MODES))
}

func TestRoadTypes(t *testing.T) {
	for typ := MOTORWAY; typ <= PATH; typ++ {
		assert.Equal(t, typ, RoadTypeFromString(typ.String()))
	}
	assert.Equal(t, FOOTWAY, RoadTypeFromString("steps"))
	assert.Equal(t, UNKNOWN_ROAD, RoadTypeFromString("runway"))
	assert.Equal(t, "", UNKNOWN_ROAD.String())
	assert.Equal(t, "", RoadType(42).String())
	assert.Equal(t, BIKE|FOOT, DefaultModes(RoadTypeFromString("cycleway")))
}
