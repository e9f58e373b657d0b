// Package distance estimates flight segment distances for reward accrual.
// The numbers are route approximations for demo comparison, not great-circle
// geometry.
package distance

import "trip-planner/pkg/trip"

// DefaultFallbackKm is returned for city pairs outside the known table. The
// value is an admittedly arbitrary placeholder with no stated derivation;
// override it with WithFallback when a better guess exists.
const DefaultFallbackKm = 2000

// Estimator resolves a distance in kilometers for an ordered city pair.
// The lookup chain is: caller-known distance, static pair table, fallback
// constant. It always produces a usable number.
type Estimator struct {
	table    map[string]float64
	fallback float64
}

// NewEstimator creates an estimator seeded with the known demo routes.
func NewEstimator() *Estimator {
	e := &Estimator{
		table:    make(map[string]float64),
		fallback: DefaultFallbackKm,
	}
	e.WithRoute("HKG", "DOH", 6300)
	e.WithRoute("DOH", "LHR", 5200)
	e.WithRoute("DOH", "LGW", 5160)
	e.WithRoute("DOH", "RUH", 490)
	return e
}

// WithFallback overrides the distance returned for unknown pairs.
func (e *Estimator) WithFallback(km float64) *Estimator {
	e.fallback = km
	return e
}

// WithRoute registers a known distance for a city pair, both directions.
func (e *Estimator) WithRoute(from, to string, km float64) *Estimator {
	e.table[from+"-"+to] = km
	e.table[to+"-"+from] = km
	return e
}

// Estimate returns the distance for the ordered pair, or the fallback when
// the pair is unknown.
func (e *Estimator) Estimate(from, to string) float64 {
	if km, ok := e.table[from+"-"+to]; ok {
		return km
	}
	return e.fallback
}

// EstimateSegment resolves a segment's distance. A distance carried on the
// segment itself is authoritative and returned unchanged.
func (e *Estimator) EstimateSegment(seg trip.Segment) float64 {
	if seg.DistanceKm != nil {
		return *seg.DistanceKm
	}
	return e.Estimate(seg.From, seg.To)
}
