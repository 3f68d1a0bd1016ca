package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ttpr0/go-skims/skim"
	. "github.com/ttpr0/go-skims/util"
	"github.com/ttpr0/go-skims/zones"
	"golang.org/x/exp/slog"
)

//**********************************************************
// matrix handler
//**********************************************************

func HandleMatrixRequest(req MatrixRequest) Result {
	slog.Info("Run Matrix Request")

	profile_ := MANAGER.GetProfile(req.Profile)
	if !profile_.HasValue() {
		return NotFound("Profile not found")
	}
	profile := profile_.Value

	g := profile.GetGraph()
	if req.Coefficients != nil {
		weighted, err := profile.WithCoefficients(*req.Coefficients)
		if err != nil {
			return BadRequest("Invalid coefficients: " + err.Error())
		}
		g = weighted
	}
	attributes, err := profile.SelectAttributes(req.Attributes)
	if err != nil {
		return BadRequest(err.Error())
	}

	resolver := profile.GetZones()
	origins := req.Origins
	if len(origins) == 0 {
		origins = resolver.Zones()
	}
	destinations := req.Destinations
	if len(destinations) == 0 {
		destinations = resolver.Zones()
	}

	options := skim.Options{
		Workers:     MANAGER.Workers(),
		StartTime:   req.StartTime,
		Backward:    req.Backward,
		MaxCost:     req.MaxCost,
		MaxDistance: req.MaxDistance,
		Attributes:  attributes,
		Paths:       req.Paths,
	}
	result, err := skim.ComputeMatrices[string](g, origins, destinations, resolver, options)
	if errors.Is(err, zones.ErrDuplicateZone) {
		return BadRequest(err.Error())
	}
	if err != nil {
		return InternalError(err.Error())
	}

	resp := NewMatrixResponse(result)
	slog.Info("Matrix response build")
	return OK(resp)
}

func HandleZonesRequest(req ZonesRequest) Result {
	profile_ := MANAGER.GetProfile(req.Profile)
	if !profile_.HasValue() {
		return NotFound("Profile not found")
	}
	profile := profile_.Value
	return OK(ZonesResponse{
		Profile: profile.Name(),
		Zones:   profile.GetZones().Zones(),
	})
}

//**********************************************************
// batch export
//**********************************************************

// WriteMatrixCSV computes the all pairs matrix of a profile and writes one
// row per pair: origin, destination, time, distance, cost, links and the
// profile attributes. Unreachable pairs have empty values.
func WriteMatrixCSV(manager *RoutingManager, profile_name string, filename string, start_time float64) error {
	profile_ := manager.GetProfile(profile_name)
	if !profile_.HasValue() {
		return fmt.Errorf("profile %v not found", profile_name)
	}
	profile := profile_.Value
	resolver := profile.GetZones()
	ids := resolver.Zones()

	options := skim.Options{
		Workers:    manager.Workers(),
		StartTime:  start_time,
		Attributes: profile.GetAttributes(),
		Progress: func(done, total int) {
			if done == total {
				slog.Info(fmt.Sprintf("finished %v trees", total))
			}
		},
	}
	result, err := skim.ComputeMatrices[string](profile.GetGraph(), ids, ids, resolver, options)
	if err != nil {
		return err
	}

	header := []string{"origin", "destination", "time", "distance", "cost", "links"}
	header = append(header, result.AttributeNames...)
	return WriteCSVToFile(filename, ',', header, func(yield func([]string) bool) {
		row := make([]string, len(header))
		for i, o := range ids {
			for j, d := range ids {
				row[0] = o
				row[1] = d
				row[2] = _FormatValue(result.Time.GetAt(i, j))
				row[3] = _FormatValue(result.Distance.GetAt(i, j))
				row[4] = _FormatValue(result.Cost.GetAt(i, j))
				if links := result.LinkCount.GetAt(i, j); links != skim.UNREACHABLE_LINKS {
					row[5] = strconv.Itoa(int(links))
				} else {
					row[5] = ""
				}
				for a, m := range result.Attributes {
					row[6+a] = _FormatValue(m.GetAt(i, j))
				}
				if !yield(row) {
					return
				}
			}
		}
	})
}

func _FormatValue(v float64) string {
	if math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
