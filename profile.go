package main

import (
	"fmt"

	"github.com/ttpr0/go-skims/graph"
	"github.com/ttpr0/go-skims/skim"
	"golang.org/x/exp/slog"
)

//**********************************************************
// profile
//**********************************************************

// RoutingProfile is a graph with a cost model for one vehicle together
// with the zones resolved on that graph.
type RoutingProfile struct {
	name       string
	options    ProfileOptions
	graph      *graph.Graph
	attributes []graph.LinkAttribute
	zones      *skim.NodeIDResolver[string]
}

func (self *RoutingProfile) Name() string {
	return self.name
}
func (self *RoutingProfile) Vehicle() graph.VehicleType {
	return self.options.Vehicle
}
func (self *RoutingProfile) Metric() MetricType {
	return self.options.Metric
}
func (self *RoutingProfile) GetGraph() *graph.Graph {
	return self.graph
}
func (self *RoutingProfile) GetZones() *skim.NodeIDResolver[string] {
	return self.zones
}

// GetAttributes returns the skim attributes of the profile.
func (self *RoutingProfile) GetAttributes() []graph.LinkAttribute {
	return self.attributes
}

// SelectAttributes returns the profile attributes with the given names.
func (self *RoutingProfile) SelectAttributes(names []string) ([]graph.LinkAttribute, error) {
	selected := make([]graph.LinkAttribute, 0, len(names))
	for _, name := range names {
		found := false
		for _, attr := range self.attributes {
			if attr.Name == name {
				selected = append(selected, attr)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("profile %v has no attribute %v", self.name, name)
		}
	}
	return selected, nil
}

// WithCoefficients returns the graph of a generalized profile re-weighted
// with c. The base graph is shared.
func (self *RoutingProfile) WithCoefficients(c graph.Coefficients) (*graph.Graph, error) {
	cost, err := self.graph.GetCostModel().WithCoefficients(c)
	if err != nil {
		return nil, err
	}
	return self.graph.WithCostModel(cost), nil
}

//**********************************************************
// build profile
//**********************************************************

func BuildProfile(name string, base *graph.GraphBase, zones *skim.NodeIDResolver[string], options ProfileOptions) (*RoutingProfile, error) {
	vehicle := graph.Vehicle{
		Type:     options.Vehicle,
		MaxSpeed: options.MaxSpeed,
	}
	buckets := options.Buckets()

	attributes := make([]graph.LinkAttribute, 0, len(options.Attributes))
	for _, a := range options.Attributes {
		attr, err := a.Build()
		if err != nil {
			return nil, fmt.Errorf("profile %v: %w", name, err)
		}
		attributes = append(attributes, attr)
	}

	var g *graph.Graph
	var err error
	switch options.Metric {
	case FASTEST:
		g, err = graph.BuildFastestGraph(base, vehicle, buckets)
	case SHORTEST:
		g, err = graph.BuildShortestGraph(base, vehicle, buckets)
	case GENERALIZED:
		g, err = _BuildGeneralizedGraph(name, base, vehicle, buckets, options)
	default:
		err = fmt.Errorf("unknown metric %v", options.Metric)
	}
	if err != nil {
		return nil, fmt.Errorf("profile %v: %w", name, err)
	}
	slog.Info(fmt.Sprintf("built profile %v (%v, %v)", name, options.Vehicle, options.Metric))

	return &RoutingProfile{
		name:       name,
		options:    options,
		graph:      g,
		attributes: attributes,
		zones:      zones,
	}, nil
}

func _BuildGeneralizedGraph(name string, base *graph.GraphBase, vehicle graph.Vehicle, buckets graph.TimeBuckets, options ProfileOptions) (*graph.Graph, error) {
	features := make([]graph.LinkAttribute, 0, len(options.Coefficients.Features))
	coefficients := graph.Coefficients{
		Time:     options.Coefficients.Time,
		Distance: options.Coefficients.Distance,
		Features: make([]float64, 0, len(options.Coefficients.Features)),
	}
	for _, f := range options.Coefficients.Features {
		attr, err := f.Build()
		if err != nil {
			return nil, err
		}
		features = append(features, attr)
		coefficients.Features = append(coefficients.Features, f.Coefficient)
	}
	table := graph.BuildAttributeTable(base, features)
	traveler := graph.Traveler{
		Name:         name,
		Coefficients: coefficients,
	}
	cost, err := graph.NewPersonaCostModel(base, graph.FastestTime, table, traveler, vehicle, buckets)
	if err != nil {
		return nil, err
	}
	return graph.BuildGraph(base, cost), nil
}
