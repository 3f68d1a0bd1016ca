package graph

import (
	"encoding/json"
	"errors"

	"github.com/ttpr0/go-skims/network"
	"gopkg.in/yaml.v3"
)

//*******************************************
// enums
//*******************************************

type Direction byte

const (
	BACKWARD Direction = 0
	FORWARD  Direction = 1
)

func (self Direction) String() string {
	if self == FORWARD {
		return "forward"
	}
	return "backward"
}

type CostType byte

const (
	// per link table with one entry per time bucket
	STATIC CostType = 0
	// link functions evaluated during the search
	DYNAMIC CostType = 1
	// coefficient weighted sum of link features
	PERSONA CostType = 2
)

func (self CostType) String() string {
	switch self {
	case STATIC:
		return "static"
	case DYNAMIC:
		return "dynamic"
	case PERSONA:
		return "persona"
	default:
		panic("unknown cost type")
	}
}

//*******************************************
// vehicle type
//*******************************************

type VehicleType byte

const (
	CAR  VehicleType = 0
	FOOT VehicleType = 1
	BIKE VehicleType = 2
)

func (self VehicleType) String() string {
	switch self {
	case CAR:
		return "car"
	case FOOT:
		return "foot"
	case BIKE:
		return "bike"
	default:
		panic("unknown vehicle type")
	}
}

// Mode returns the network mode a vehicle is allowed to use.
func (self VehicleType) Mode() network.ModeSet {
	switch self {
	case FOOT:
		return network.FOOT
	case BIKE:
		return network.BIKE
	default:
		return network.CAR
	}
}

func (self VehicleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *VehicleType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = VehicleTypeFromString(typ)
	return err
}
func (self VehicleType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *VehicleType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := VehicleTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func VehicleTypeFromString(s string) (VehicleType, error) {
	switch s {
	case "car":
		return CAR, nil
	case "foot":
		return FOOT, nil
	case "bike":
		return BIKE, nil
	default:
		return CAR, errors.New("unknown vehicle type")
	}
}
