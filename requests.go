package main

import (
	"github.com/ttpr0/go-skims/graph"
)

type MatrixRequest struct {
	Profile string `json:"profile"`

	// zone ids, all zones of the profile if empty
	Origins      []string `json:"origins"`
	Destinations []string `json:"destinations"`

	// seconds since midnight
	StartTime float64 `json:"start_time"`
	// route from destinations to origins with StartTime as arrival time
	Backward bool `json:"backward"`

	MaxCost     float64 `json:"max_cost"`
	MaxDistance float64 `json:"max_distance"`

	// names of profile attributes to accumulate
	Attributes []string `json:"attributes"`
	Paths      bool     `json:"paths"`

	// re-weights a generalized profile for this request
	Coefficients *graph.Coefficients `json:"coefficients"`
}

type ZonesRequest struct {
	Profile string `json:"profile"`
}
