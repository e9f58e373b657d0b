// Package rationale renders the one-line explanation attached to each ranked
// offer.
package rationale

import (
	"fmt"

	"trip-planner/pkg/trip"
)

// For explains why an entry ranks where it does under the given mode. Pure
// formatting, no computation. It never fails: a mode outside the known set
// falls through to the price line, which is graceful degradation by intent.
func For(entry trip.RankedOffer, mode trip.RankMode) string {
	switch mode {
	case trip.ModeQpointsPerHKD:
		return fmt.Sprintf("Best Qpoints/%s: %.3f · Earns ~%d Qpoints",
			entry.Offer.Price.Currency, entry.QPerHKD, entry.Qpoints)
	case trip.ModeWeekend:
		if entry.Offer.WeekendFit {
			return "Fits weekend pattern"
		}
		return "Near-weekend option"
	case trip.ModeShortest:
		return fmt.Sprintf("Shortest duration: %d min", entry.Offer.TotalDurationMin)
	default:
		return fmt.Sprintf("Cheapest in set: %s %s",
			entry.Offer.Price.Amount.String(), entry.Offer.Price.Currency)
	}
}
