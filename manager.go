package main

import (
	"fmt"

	"github.com/ttpr0/go-skims/graph"
	"github.com/ttpr0/go-skims/network"
	"github.com/ttpr0/go-skims/skim"
	. "github.com/ttpr0/go-skims/util"
	"golang.org/x/exp/slog"
)

// NewRoutingManager loads the network and builds all configured profiles.
// Graph bases and zones are shared between profiles of the same vehicle.
func NewRoutingManager(config Config) (*RoutingManager, error) {
	net, err := network.LoadCSV(config.Network.Nodes, config.Network.Links)
	if err != nil {
		return nil, err
	}

	manager := &RoutingManager{
		config:   config,
		net:      net,
		profiles: NewDict[string, *RoutingProfile](10),
	}
	bases := NewDict[graph.VehicleType, Tuple[*graph.GraphBase, *skim.NodeIDResolver[string]]](3)
	for name, options := range config.Profiles {
		if !bases.ContainsKey(options.Vehicle) {
			base, err := graph.BuildGraphBase(net, options.Vehicle.Mode())
			if err != nil {
				return nil, fmt.Errorf("profile %v: %w", name, err)
			}
			zones := skim.NewNodeIDResolver[string](base)
			if config.Zones != "" {
				zones, err = skim.LoadZoneCSV(config.Zones, base)
				if err != nil {
					return nil, err
				}
			}
			bases[options.Vehicle] = MakeTuple(base, zones)
		}
		prep := bases[options.Vehicle]
		profile, err := BuildProfile(name, prep.A, prep.B, *options)
		if err != nil {
			return nil, err
		}
		manager.profiles[name] = profile
	}
	slog.Info(fmt.Sprintf("routing manager ready with %v profiles", manager.profiles.Length()))
	return manager, nil
}

type RoutingManager struct {
	config   Config
	net      *network.Network
	profiles Dict[string, *RoutingProfile]
}

func (self *RoutingManager) GetProfile(profile string) Optional[*RoutingProfile] {
	if self.profiles.ContainsKey(profile) {
		return Some(self.profiles.Get(profile))
	}
	return None[*RoutingProfile]()
}

func (self *RoutingManager) GetNetwork() *network.Network {
	return self.net
}

// Workers returns the configured worker count, 0 means all cpus.
func (self *RoutingManager) Workers() int {
	return self.config.Workers
}
