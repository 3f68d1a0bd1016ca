package main

import (
	"encoding/json"
	"math"

	"github.com/ttpr0/go-skims/skim"
	"github.com/ttpr0/go-skims/zones"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

//**********************************************************
// matrix response
//**********************************************************

type MatrixResponse struct {
	Origins      []string         `json:"origins"`
	Destinations []string         `json:"destinations"`
	Time         []Row            `json:"time"`
	Distance     []Row            `json:"distance"`
	Cost         []Row            `json:"cost"`
	LinkCount    []Row            `json:"link_count"`
	Attributes   map[string][]Row `json:"attributes,omitempty"`
	Paths        [][][]int32      `json:"paths,omitempty"`
	Unresolved   UnresolvedZones  `json:"unresolved"`
}

type UnresolvedZones struct {
	Origins      []string `json:"origins"`
	Destinations []string `json:"destinations"`
}

// Row is a matrix row, infinite values are written as null.
type Row []float64

func (self Row) MarshalJSON() ([]byte, error) {
	values := make([]*float64, len(self))
	for i := range self {
		if math.IsInf(self[i], 0) || math.IsNaN(self[i]) {
			continue
		}
		values[i] = &self[i]
	}
	return json.Marshal(values)
}

func NewMatrixResponse(result *skim.Result[string]) MatrixResponse {
	resp := MatrixResponse{
		Origins:      result.Origins().IDs(),
		Destinations: result.Destinations().IDs(),
		Time:         _Rows(result.Time),
		Distance:     _Rows(result.Distance),
		Cost:         _Rows(result.Cost),
		LinkCount:    _LinkCountRows(result.LinkCount),
		Unresolved: UnresolvedZones{
			Origins:      result.UnresolvedOrigins,
			Destinations: result.UnresolvedDestinations,
		},
	}
	if len(result.Attributes) > 0 {
		resp.Attributes = make(map[string][]Row, len(result.Attributes))
		for i, name := range result.AttributeNames {
			resp.Attributes[name] = _Rows(result.Attributes[i])
		}
	}
	if result.Paths != nil {
		rows := result.Origins().Length()
		cols := result.Destinations().Length()
		resp.Paths = make([][][]int32, rows)
		for i := 0; i < rows; i++ {
			resp.Paths[i] = make([][]int32, cols)
			for j := 0; j < cols; j++ {
				resp.Paths[i][j] = result.Paths.GetAt(i, j)
			}
		}
	}
	return resp
}

func _Rows(m *zones.Matrix[string, float64]) []Row {
	rows := make([]Row, m.Rows())
	for i := range rows {
		row := make(Row, m.Cols())
		copy(row, m.Row(i))
		rows[i] = row
	}
	return rows
}

func _LinkCountRows(m *zones.Matrix[string, uint16]) []Row {
	rows := make([]Row, m.Rows())
	for i := range rows {
		row := make(Row, m.Cols())
		for j, v := range m.Row(i) {
			if v == skim.UNREACHABLE_LINKS {
				row[j] = math.Inf(1)
			} else {
				row[j] = float64(v)
			}
		}
		rows[i] = row
	}
	return rows
}

//**********************************************************
// zones response
//**********************************************************

type ZonesResponse struct {
	Profile string   `json:"profile"`
	Zones   []string `json:"zones"`
}
