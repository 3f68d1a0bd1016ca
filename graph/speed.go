package graph

import (
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"github.com/ttpr0/go-skims/network"
)

//*******************************************
// travel speeds
//*******************************************

const (
	WALKING_SPEED = 5.0
	CYCLING_SPEED = 15.0
)

// TravelSpeed returns the speed (km/h) of a vehicle on a link with the
// given tags.
func TravelSpeed(tags osm.Tags, vehicle *Vehicle) float64 {
	var speed float64
	switch vehicle.Type {
	case FOOT:
		speed = WALKING_SPEED
	case BIKE:
		speed = CYCLING_SPEED
	default:
		speed = _GetCarSpeed(network.RoadTypeFromString(tags.Find("highway")), tags.Find("maxspeed"), tags.Find("tracktype"), tags.Find("surface"))
	}
	if vehicle.MaxSpeed > 0 && speed > vehicle.MaxSpeed {
		speed = vehicle.MaxSpeed
	}
	return speed
}

func _ParseMaxspeed(maxspeed string) (float64, bool) {
	switch maxspeed {
	case "walk":
		return 10, true
	case "none":
		return 110, true
	}
	value, unit, _ := strings.Cut(maxspeed, " ")
	t, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	if unit == "mph" {
		t *= 1.609
	}
	return t, true
}

func _GetCarSpeed(streettype network.RoadType, maxspeed string, tracktype string, surface string) float64 {
	var speed float64

	// check if maxspeed is set
	if maxspeed != "" {
		t, ok := _ParseMaxspeed(maxspeed)
		if !ok {
			t = 20
		}
		speed = 0.9 * t
	}

	// set defaults
	if maxspeed == "" {
		switch streettype {
		case network.MOTORWAY:
			speed = 100
		case network.TRUNK:
			speed = 85
		case network.MOTORWAY_LINK, network.TRUNK_LINK:
			speed = 60
		case network.PRIMARY:
			speed = 65
		case network.SECONDARY:
			speed = 60
		case network.TERTIARY:
			speed = 50
		case network.PRIMARY_LINK, network.SECONDARY_LINK:
			speed = 50
		case network.TERTIARY_LINK:
			speed = 40
		case network.UNCLASSIFIED, network.RESIDENTIAL:
			speed = 30
		case network.LIVING_STREET:
			speed = 10
		case network.ROAD, network.SERVICE:
			speed = 20
		case network.TRACK:
			switch tracktype {
			case "grade1":
				speed = 40
			case "grade2":
				speed = 30
			case "grade3":
				speed = 20
			case "grade5":
				speed = 10
			default:
				speed = 15
			}
		default:
			speed = 20
		}
	}

	// surface limits
	limit := 0.0
	switch surface {
	case "cement", "compacted":
		limit = 80
	case "fine_gravel":
		limit = 60
	case "paving_stones", "metal", "bricks":
		limit = 40
	case "grass", "wood", "sett", "grass_paver", "gravel", "unpaved", "ground", "dirt", "pebblestone", "tartan":
		limit = 30
	case "cobblestone", "clay":
		limit = 20
	case "earth", "stone", "rocky", "sand":
		limit = 15
	case "mud":
		limit = 10
	}
	if limit > 0 && speed > limit {
		speed = limit
	}

	if speed <= 0 {
		speed = 10
	}
	return speed
}
