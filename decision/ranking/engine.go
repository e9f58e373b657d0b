// Package ranking produces deterministic total orders over offer collections.
package ranking

import (
	"errors"
	"fmt"
	"sort"

	"trip-planner/decision/rewards"
	"trip-planner/pkg/trip"
)

// ErrUnknownMode is returned when a mode outside the closed enum reaches the
// engine. The boundary validates modes first, so hitting this indicates a
// caller bug; it is reported rather than masked by a default sort.
var ErrUnknownMode = errors.New("unknown rank mode")

// Engine enriches offers with reward metrics and orders them under a mode.
type Engine struct {
	rewards *rewards.Estimator
}

// NewEngine creates a ranking engine. A nil estimator gets the defaults.
func NewEngine(r *rewards.Estimator) *Engine {
	if r == nil {
		r = rewards.NewEstimator(nil)
	}
	return &Engine{rewards: r}
}

// Rank computes Qpoints and the points-per-currency ratio for every offer,
// then sorts by the mode's key. Metrics are computed for all modes, not just
// the points-driven ones, so callers always receive them.
//
// Ties keep the relative order of the input sequence (stable sort). No
// secondary key is computed; callers needing determinism beyond input order
// should treat that as a documented property of this engine.
func (e *Engine) Rank(offers []trip.Offer, mode trip.RankMode) ([]trip.RankedOffer, error) {
	entries := make([]trip.RankedOffer, 0, len(offers))
	for _, o := range offers {
		entries = append(entries, trip.RankedOffer{
			Offer:   o,
			Qpoints: e.rewards.EstimatePoints(o),
			QPerHKD: e.rewards.PointsPerUnit(o),
		})
	}

	switch mode {
	case trip.ModeCheapest:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Offer.Price.Amount.LessThan(entries[j].Offer.Price.Amount)
		})
	case trip.ModeShortest:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Offer.TotalDurationMin < entries[j].Offer.TotalDurationMin
		})
	case trip.ModeQpointsPerHKD:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].QPerHKD > entries[j].QPerHKD
		})
	case trip.ModeWeekend:
		// Offers that fit the weekend pattern rank before those that don't;
		// input order is preserved within each group.
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Offer.WeekendFit && !entries[j].Offer.WeekendFit
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return entries, nil
}
