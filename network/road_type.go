package network

//*******************************************
// road types
//*******************************************

// RoadType is the decoded osm highway tag of a link.
type RoadType int8

const (
	UNKNOWN_ROAD RoadType = iota
	MOTORWAY
	MOTORWAY_LINK
	TRUNK
	TRUNK_LINK
	PRIMARY
	PRIMARY_LINK
	SECONDARY
	SECONDARY_LINK
	TERTIARY
	TERTIARY_LINK
	RESIDENTIAL
	LIVING_STREET
	UNCLASSIFIED
	ROAD
	TRACK
	SERVICE
	FOOTWAY
	CYCLEWAY
	PATH
)

// highway values, indexed by road type
var road_type_names = [...]string{
	"", "motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link",
	"secondary", "secondary_link", "tertiary", "tertiary_link", "residential",
	"living_street", "unclassified", "road", "track", "service", "footway", "cycleway", "path",
}

// highway values decoded to an existing type
var road_type_aliases = map[string]RoadType{
	"pedestrian": FOOTWAY,
	"steps":      FOOTWAY,
}

var road_type_index = func() map[string]RoadType {
	index := make(map[string]RoadType, len(road_type_names)+len(road_type_aliases))
	for i, name := range road_type_names[1:] {
		index[name] = RoadType(i + 1)
	}
	for name, typ := range road_type_aliases {
		index[name] = typ
	}
	return index
}()

func (self RoadType) String() string {
	if self < 0 || int(self) >= len(road_type_names) {
		return ""
	}
	return road_type_names[self]
}

// RoadTypeFromString decodes a highway value, unknown values give UNKNOWN_ROAD.
func RoadTypeFromString(typ string) RoadType {
	return road_type_index[typ]
}

// Returns the default allowed modes of a highway type.
func DefaultModes(typ RoadType) ModeSet {
	switch typ {
	case MOTORWAY, MOTORWAY_LINK, TRUNK, TRUNK_LINK:
		return CAR
	case FOOTWAY:
		return FOOT
	case CYCLEWAY, PATH, TRACK:
		return BIKE | FOOT
	}
	return ALL_MODES
}
