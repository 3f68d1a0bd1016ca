package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ttpr0/go-skims/graph"
	"github.com/ttpr0/go-skims/network"
	. "github.com/ttpr0/go-skims/util"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file " + file)
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	config, err := ParseConfig(data)
	if err != nil {
		slog.Error("failed to parse config file: " + err.Error())
		panic(err)
	}
	return config
}

func ParseConfig(data []byte) (Config, error) {
	config := Config{}
	config.Server.Port = 5002
	config.LogLevel = "info"
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, err
	}
	if config.Network.Nodes == "" || config.Network.Links == "" {
		return config, errors.New("config: network nodes and links are required")
	}
	for name, options := range config.Profiles {
		if options == nil {
			return config, fmt.Errorf("config: profile %v is empty", name)
		}
	}
	return config, nil
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	LogLevel string `yaml:"log-level"`
	Network  struct {
		Nodes string `yaml:"nodes"`
		Links string `yaml:"links"`
	} `yaml:"network"`
	Zones    string                        `yaml:"zones"`
	Workers  int                           `yaml:"workers"`
	Profiles Dict[string, *ProfileOptions] `yaml:"profiles"`
}

//**********************************************************
// profile options
//**********************************************************

type ProfileOptions struct {
	Vehicle  graph.VehicleType `yaml:"vehicle"`
	MaxSpeed float64           `yaml:"max-speed"`
	Metric   MetricType        `yaml:"metric"`
	// only used by the generalized metric
	Coefficients struct {
		Time     float64          `yaml:"time"`
		Distance float64          `yaml:"distance"`
		Features []FeatureOptions `yaml:"features"`
	} `yaml:"coefficients"`
	TimeBuckets struct {
		DayStart float64 `yaml:"day-start"`
		DayEnd   float64 `yaml:"day-end"`
	} `yaml:"time-buckets"`
	// attributes accumulated into the skim matrices
	Attributes []AttributeOptions `yaml:"attributes"`
}

func (self *ProfileOptions) Buckets() graph.TimeBuckets {
	return graph.TimeBuckets{
		DayStart: self.TimeBuckets.DayStart,
		DayEnd:   self.TimeBuckets.DayEnd,
	}
}

// AttributeOptions describes a named link attribute. With only tag set the
// numeric tag value is used, with tag and value the link length where the
// tag matches, with road-types the link length on those road types.
type AttributeOptions struct {
	Name      string   `yaml:"name"`
	Tag       string   `yaml:"tag"`
	Value     string   `yaml:"value"`
	RoadTypes []string `yaml:"road-types"`
}

func (self AttributeOptions) Build() (graph.LinkAttribute, error) {
	name := self.Name
	if name == "" {
		name = self.Tag
	}
	switch {
	case len(self.RoadTypes) > 0:
		types := make([]network.RoadType, 0, len(self.RoadTypes))
		for _, t := range self.RoadTypes {
			typ := network.RoadTypeFromString(t)
			if typ == network.UNKNOWN_ROAD {
				return graph.LinkAttribute{}, fmt.Errorf("attribute %v: unknown road type %v", name, t)
			}
			types = append(types, typ)
		}
		return graph.RoadTypeDistance(name, types...), nil
	case self.Tag != "" && self.Value != "":
		return graph.TagDistance(name, self.Tag, self.Value), nil
	case self.Tag != "":
		attr := graph.TagAttribute(self.Tag)
		attr.Name = name
		return attr, nil
	default:
		return graph.LinkAttribute{}, fmt.Errorf("attribute %v: either tag or road-types is required", name)
	}
}

type FeatureOptions struct {
	AttributeOptions `yaml:",inline"`
	Coefficient      float64 `yaml:"coefficient"`
}

//**********************************************************
// enums
//**********************************************************

type MetricType byte

const (
	FASTEST     MetricType = 0
	SHORTEST    MetricType = 1
	GENERALIZED MetricType = 2
)

func (self MetricType) String() string {
	switch self {
	case FASTEST:
		return "fastest"
	case SHORTEST:
		return "shortest"
	case GENERALIZED:
		return "generalized"
	default:
		panic("unknown metric type")
	}
}
func (self MetricType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *MetricType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = MetricTypeFromString(typ)
	return err
}
func (self MetricType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *MetricType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := MetricTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func MetricTypeFromString(s string) (MetricType, error) {
	switch s {
	case "fastest":
		return FASTEST, nil
	case "shortest":
		return SHORTEST, nil
	case "generalized":
		return GENERALIZED, nil
	default:
		return FASTEST, errors.New("unknown metric type")
	}
}
