// Package rewards computes estimated Qpoints per offer.
//
// The model is a flat per-100-km accrual by cabin class:
//
//	ECONOMY          0.25 Qpoints per 100 km
//	PREMIUM_ECONOMY  0.35 per 100 km
//	BUSINESS         0.60 per 100 km
//	FIRST            0.80 per 100 km
//
// It exists for demo comparison only and does not reflect any real loyalty
// program's accrual rules.
package rewards

import (
	"math"

	"github.com/shopspring/decimal"

	"trip-planner/decision/distance"
	"trip-planner/pkg/trip"
)

var (
	hundred = decimal.NewFromInt(100)

	ratePer100Km = map[trip.Cabin]decimal.Decimal{
		trip.CabinEconomy:        decimal.NewFromFloat(0.25),
		trip.CabinPremiumEconomy: decimal.NewFromFloat(0.35),
		trip.CabinBusiness:       decimal.NewFromFloat(0.60),
		trip.CabinFirst:          decimal.NewFromFloat(0.80),
	}
)

// Estimator computes reward metrics for offers. It is pure and safe for
// concurrent use: the rate table and distance table are read-only.
type Estimator struct {
	distance *distance.Estimator
}

// NewEstimator creates a reward estimator. A nil distance estimator gets the
// default route table.
func NewEstimator(d *distance.Estimator) *Estimator {
	if d == nil {
		d = distance.NewEstimator()
	}
	return &Estimator{distance: d}
}

// EstimatePoints sums per-segment accrual (distance/100 × cabin rate) across
// the itinerary and rounds half-up to a whole point total. Cabins outside
// the known set accrue at the ECONOMY rate.
func (e *Estimator) EstimatePoints(offer trip.Offer) int64 {
	total := decimal.Zero
	for _, seg := range offer.Itinerary {
		rate, ok := ratePer100Km[seg.Cabin]
		if !ok {
			rate = ratePer100Km[trip.CabinEconomy]
		}
		km := decimal.NewFromFloat(e.distance.EstimateSegment(seg))
		total = total.Add(km.Div(hundred).Mul(rate))
	}
	return total.Round(0).IntPart()
}

// PointsPerUnit divides the rounded point total by the price amount. Catalog
// sources reject non-positive prices at ingestion; if one slips through
// anyway the ratio is +Inf rather than a division panic or a silent zero.
func (e *Estimator) PointsPerUnit(offer trip.Offer) float64 {
	points := e.EstimatePoints(offer)
	if offer.Price.Amount.Sign() <= 0 {
		return math.Inf(1)
	}
	ratio, _ := decimal.NewFromInt(points).Div(offer.Price.Amount).Float64()
	return ratio
}
