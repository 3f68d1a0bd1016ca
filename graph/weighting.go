package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/ttpr0/go-skims/network"
	. "github.com/ttpr0/go-skims/util"
)

var (
	ErrNotPersona   = errors.New("graph: cost model is not a persona model")
	ErrCoefficients = errors.New("graph: coefficients do not match features")
	ErrNegativeCost = errors.New("graph: negative link cost")
)

// LinkFunction evaluates a link for a given time of day (seconds since
// midnight). Used for travel times (seconds) as well as for costs.
type LinkFunction func(link *network.Link, time float64, traveler *Traveler, vehicle *Vehicle) float64

// FastestTime returns the travel time in seconds at the vehicles speed.
func FastestTime(link *network.Link, time float64, traveler *Traveler, vehicle *Vehicle) float64 {
	speed := TravelSpeed(link.Tags, vehicle)
	return link.Length * 3.6 / speed
}

// ShortestDistance returns the link length as cost.
func ShortestDistance(link *network.Link, time float64, traveler *Traveler, vehicle *Vehicle) float64 {
	return link.Length
}

//*******************************************
// time buckets
//*******************************************

const SECONDS_PER_DAY = 24 * 3600

// TimeBuckets splits the day into a day bucket [DayStart, DayEnd) and a
// night bucket covering the rest. Times are seconds since midnight.
type TimeBuckets struct {
	DayStart float64
	DayEnd   float64
}

var DEFAULT_BUCKETS = TimeBuckets{DayStart: 6 * 3600, DayEnd: 22 * 3600}

func (self TimeBuckets) Bucket(time float64) int {
	t := math.Mod(time, SECONDS_PER_DAY)
	if t < 0 {
		t += SECONDS_PER_DAY
	}
	if t >= self.DayStart && t < self.DayEnd {
		return 0
	}
	return 1
}

// SampleTime returns the time at which a link function is evaluated for
// the bucket (the middle of the bucket).
func (self TimeBuckets) SampleTime(bucket int) float64 {
	if bucket == 0 {
		return (self.DayStart + self.DayEnd) / 2
	}
	night := SECONDS_PER_DAY - (self.DayEnd - self.DayStart)
	return math.Mod(self.DayEnd+night/2, SECONDS_PER_DAY)
}

//*******************************************
// cost model
//*******************************************

// CostModel gives travel time and cost of every graph link.
//
// STATIC and PERSONA models are precomputed into immutable per link tables
// (one entry per time bucket) on creation. DYNAMIC models evaluate their
// link functions on every call, the functions have to be safe for
// concurrent use.
type CostModel struct {
	typ      CostType
	base     *GraphBase
	traveler Traveler
	vehicle  Vehicle
	buckets  TimeBuckets

	time_func LinkFunction
	cost_func LinkFunction

	// indexed by 2*link+bucket
	times Array[float64]
	costs Array[float64]

	features *AttributeTable
}

func NewStaticCostModel(base *GraphBase, time_func, cost_func LinkFunction, traveler Traveler, vehicle Vehicle, buckets TimeBuckets) (*CostModel, error) {
	if buckets == (TimeBuckets{}) {
		buckets = DEFAULT_BUCKETS
	}
	model := &CostModel{
		typ:       STATIC,
		base:      base,
		traveler:  traveler,
		vehicle:   vehicle,
		buckets:   buckets,
		time_func: time_func,
		cost_func: cost_func,
	}
	model.times = model._Precompute(time_func)
	model.costs = model._Precompute(cost_func)
	if err := _CheckCosts(model.costs); err != nil {
		return nil, err
	}
	return model, nil
}

func NewDynamicCostModel(base *GraphBase, time_func, cost_func LinkFunction, traveler Traveler, vehicle Vehicle) *CostModel {
	return &CostModel{
		typ:       DYNAMIC,
		base:      base,
		traveler:  traveler,
		vehicle:   vehicle,
		buckets:   DEFAULT_BUCKETS,
		time_func: time_func,
		cost_func: cost_func,
	}
}

// NewPersonaCostModel creates a generalized cost model
//
//	cost = c.Time * time + c.Distance * length + sum(c.Features[i] * feature[i])
//
// with the coefficients of the traveler. features may be nil.
func NewPersonaCostModel(base *GraphBase, time_func LinkFunction, features *AttributeTable, traveler Traveler, vehicle Vehicle, buckets TimeBuckets) (*CostModel, error) {
	if buckets == (TimeBuckets{}) {
		buckets = DEFAULT_BUCKETS
	}
	model := &CostModel{
		typ:       PERSONA,
		base:      base,
		traveler:  traveler,
		vehicle:   vehicle,
		buckets:   buckets,
		time_func: time_func,
		features:  features,
	}
	model.times = model._Precompute(time_func)
	costs, err := model._WeightCosts(traveler.Coefficients)
	if err != nil {
		return nil, err
	}
	model.costs = costs
	return model, nil
}

// WithCoefficients returns a copy of a persona model re-weighted with c.
//
// Travel times and features are shared with the original model, only the
// cost table is recomputed.
func (self *CostModel) WithCoefficients(c Coefficients) (*CostModel, error) {
	if self.typ != PERSONA {
		return nil, ErrNotPersona
	}
	costs, err := self._WeightCosts(c)
	if err != nil {
		return nil, err
	}
	model := *self
	model.traveler.Coefficients = c
	model.costs = costs
	return &model, nil
}

func (self *CostModel) Type() CostType {
	return self.typ
}
func (self *CostModel) GetBase() *GraphBase {
	return self.base
}
func (self *CostModel) Traveler() Traveler {
	return self.traveler
}
func (self *CostModel) Vehicle() Vehicle {
	return self.vehicle
}
func (self *CostModel) Buckets() TimeBuckets {
	return self.buckets
}

// GetLinkTime returns the travel time (seconds) of link entered at time.
func (self *CostModel) GetLinkTime(link int32, time float64) float64 {
	switch self.typ {
	case DYNAMIC:
		return self.time_func(self.base.GetNetworkLink(link), time, &self.traveler, &self.vehicle)
	default:
		return self.times[2*int(link)+self.buckets.Bucket(time)]
	}
}

// GetLinkCost returns the disutility of link entered at time.
func (self *CostModel) GetLinkCost(link int32, time float64) float64 {
	switch self.typ {
	case DYNAMIC:
		return self.cost_func(self.base.GetNetworkLink(link), time, &self.traveler, &self.vehicle)
	default:
		return self.costs[2*int(link)+self.buckets.Bucket(time)]
	}
}

func (self *CostModel) _Precompute(f LinkFunction) Array[float64] {
	values := NewArray[float64](2 * self.base.LinkCount())
	for bucket := 0; bucket < 2; bucket++ {
		time := self.buckets.SampleTime(bucket)
		for i := 0; i < self.base.LinkCount(); i++ {
			values[2*i+bucket] = f(self.base.GetNetworkLink(int32(i)), time, &self.traveler, &self.vehicle)
		}
	}
	return values
}

func (self *CostModel) _WeightCosts(c Coefficients) (Array[float64], error) {
	feature_count := 0
	if self.features != nil {
		feature_count = self.features.Count()
	}
	if len(c.Features) != feature_count {
		return nil, fmt.Errorf("%w: got %v coefficients for %v features", ErrCoefficients, len(c.Features), feature_count)
	}
	costs := NewArray[float64](2 * self.base.LinkCount())
	for i := 0; i < self.base.LinkCount(); i++ {
		link := int32(i)
		static := c.Distance * self.base.GetLink(link).Length
		for f := 0; f < feature_count; f++ {
			static += c.Features[f] * self.features.Get(link, f)
		}
		costs[2*i] = static + c.Time*self.times[2*i]
		costs[2*i+1] = static + c.Time*self.times[2*i+1]
	}
	if err := _CheckCosts(costs); err != nil {
		return nil, err
	}
	return costs, nil
}

func _CheckCosts(costs Array[float64]) error {
	for i, c := range costs {
		if c < 0 || math.IsNaN(c) {
			return fmt.Errorf("%w: %v on link %v", ErrNegativeCost, c, i/2)
		}
	}
	return nil
}
