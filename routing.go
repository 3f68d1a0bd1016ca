package main

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/ttpr0/go-skims/graph"
	"github.com/ttpr0/go-skims/routing"
	"golang.org/x/exp/slog"
)

//**********************************************************
// routing requests and responses
//**********************************************************

type RoutingRequest struct {
	Profile string `json:"profile"`
	// zone ids, the first sampling point of each zone is used
	From      string  `json:"from"`
	To        string  `json:"to"`
	StartTime float64 `json:"start_time"`
	// "dijkstra" or "bidirectional" (default)
	Algorithm string `json:"algorithm"`
}

func NewRoutingResponse(line orb.LineString, cost, time, distance float64, links []int32) *geojson.FeatureCollection {
	feature := geojson.NewFeature(line)
	feature.Properties["cost"] = cost
	feature.Properties["time"] = time
	feature.Properties["distance"] = distance
	feature.Properties["links"] = links
	resp := geojson.NewFeatureCollection()
	resp.Append(feature)
	return resp
}

//**********************************************************
// routing handler
//**********************************************************

func HandleRoutingRequest(req RoutingRequest) Result {
	profile_ := MANAGER.GetProfile(req.Profile)
	if !profile_.HasValue() {
		return NotFound("Profile not found")
	}
	profile := profile_.Value
	g := profile.GetGraph()

	zones := profile.GetZones()
	from := zones.Resolve(req.From)
	to := zones.Resolve(req.To)
	if from.Length() == 0 || to.Length() == 0 {
		return BadRequest("Zone without graph node")
	}
	start_node := from[0]
	end_node := to[0]
	slog.Debug(fmt.Sprintf("Start calculating shortest path between %v and %v", start_node, end_node))

	switch req.Algorithm {
	case "dijkstra":
		tree := routing.NewShortestPathTree(g, graph.FORWARD)
		targets := routing.NewTargetSet(g.NodeCount())
		targets.Add(end_node)
		targets.Reset()
		tree.CalculateWithStop(start_node, req.StartTime, targets.Criterion())
		if !tree.IsReached(end_node) {
			return NotFound("No path found")
		}
		resp := NewRoutingResponse(tree.GetPathGeometry(end_node), tree.GetCost(end_node), tree.GetTravelTime(end_node), tree.GetDistance(end_node), tree.GetPathLinks(end_node))
		return OK(resp)
	case "", "bidirectional":
		search := routing.NewBidirectionalSearch(g)
		if !search.Calculate(start_node, end_node, req.StartTime) {
			return NotFound("No path found")
		}
		resp := NewRoutingResponse(search.GetPathGeometry(), search.GetCost(), search.GetTravelTime(), search.GetDistance(), search.GetPathLinks())
		return OK(resp)
	default:
		return BadRequest("Unknown algorithm " + req.Algorithm)
	}
}
