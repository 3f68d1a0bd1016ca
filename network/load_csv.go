package network

import (
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	. "github.com/ttpr0/go-skims/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// csv rows
//*******************************************

type _NodeRow struct {
	ID  int64   `csv:"id"`
	Lon float64 `csv:"lon"`
	Lat float64 `csv:"lat"`
}

type _LinkRow struct {
	ID       int64   `csv:"id"`
	Way      int64   `csv:"way"`
	From     int64   `csv:"from"`
	To       int64   `csv:"to"`
	Length   float64 `csv:"length"`
	Modes    string  `csv:"modes"`
	Oneway   bool    `csv:"oneway"`
	Highway  string  `csv:"highway"`
	Maxspeed string  `csv:"maxspeed"`
	Tags     string  `csv:"tags"`
}

//*******************************************
// load network
//*******************************************

// LoadCSV reads a network from a node and a link file (';' separated).
//
// Node columns: id, lon, lat.
// Link columns: id, way, from, to, length, modes, oneway, highway, maxspeed
// and tags (additional "key=value" pairs separated by '|').
// Links that are not oneway are added in both directions.
func LoadCSV(node_file, link_file string) (*Network, error) {
	nodes, err := ReadCSVFromFile[_NodeRow](node_file, ';')
	if err != nil {
		return nil, err
	}
	links, err := ReadCSVFromFile[_LinkRow](link_file, ';')
	if err != nil {
		return nil, err
	}
	net, err := _BuildNetwork(nodes, links)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("loaded network with %v nodes and %v links", net.NodeCount(), net.LinkCount()))
	return net, nil
}

// LoadCSVFrom is LoadCSV on already opened readers.
func LoadCSVFrom(nodes, links io.Reader) (*Network, error) {
	node_rows, err := ReadCSV[_NodeRow](nodes, ';')
	if err != nil {
		return nil, err
	}
	link_rows, err := ReadCSV[_LinkRow](links, ';')
	if err != nil {
		return nil, err
	}
	return _BuildNetwork(node_rows, link_rows)
}

func _BuildNetwork(nodes List[_NodeRow], links List[_LinkRow]) (*Network, error) {
	net := NewNetwork()
	for _, row := range nodes {
		if err := net.AddNode(osm.NodeID(row.ID), orb.Point{row.Lon, row.Lat}); err != nil {
			return nil, err
		}
	}
	for _, row := range links {
		link, err := _ParseLinkRow(row)
		if err != nil {
			return nil, err
		}
		if row.Oneway {
			_, err = net.AddLink(link)
		} else {
			_, _, err = net.AddStreet(link)
		}
		if err != nil {
			return nil, err
		}
	}
	return net, nil
}

func _ParseLinkRow(row _LinkRow) (Link, error) {
	tags := osm.Tags{}
	if row.Highway != "" {
		tags = append(tags, osm.Tag{Key: "highway", Value: row.Highway})
	}
	if row.Maxspeed != "" {
		tags = append(tags, osm.Tag{Key: "maxspeed", Value: row.Maxspeed})
	}
	if row.Tags != "" {
		for _, pair := range strings.Split(row.Tags, "|") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return Link{}, fmt.Errorf("%w: malformed tag %q on link %d", ErrInvalidLink, pair, row.ID)
			}
			tags = append(tags, osm.Tag{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
		}
	}
	modes := NO_MODES
	if row.Modes != "" {
		m, err := ParseModes(row.Modes)
		if err != nil {
			return Link{}, fmt.Errorf("link %d: %w", row.ID, err)
		}
		modes = m
	}
	return Link{
		ID:     row.ID,
		Way:    osm.WayID(row.Way),
		From:   osm.NodeID(row.From),
		To:     osm.NodeID(row.To),
		Length: row.Length,
		Tags:   tags,
		Modes:  modes,
	}, nil
}
