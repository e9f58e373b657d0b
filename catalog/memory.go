package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"trip-planner/pkg/trip"
)

// MemorySource is the built-in demo catalog: one HKG⇄London economy set and
// one HKG⇄DOH⇄RUH status-run set. Dates and prices are illustrative.
type MemorySource struct {
	hkgLondon []trip.Offer
	statusRun []trip.Offer
}

// NewMemorySource seeds the demo datasets.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		hkgLondon: demoOffersHKGLondon(),
		statusRun: demoOffersStatusRun(),
	}
}

// Offers dispatches on goal: status runs draw from the Qpoints-maximizing
// set, everything else from the HKG⇄London set.
func (s *MemorySource) Offers(_ context.Context, goal trip.Goal) ([]trip.Offer, error) {
	if goal == trip.GoalStatusRun {
		return s.statusRun, nil
	}
	return s.hkgLondon, nil
}

// Load replaces the offer set backing a goal after validating every offer.
func (s *MemorySource) Load(goal trip.Goal, offers []trip.Offer) error {
	for _, o := range offers {
		if err := ValidateOffer(o); err != nil {
			return err
		}
	}
	if goal == trip.GoalStatusRun {
		s.statusRun = offers
	} else {
		s.hkgLondon = offers
	}
	return nil
}

func hkd(amount int64) trip.Money {
	return trip.Money{Amount: decimal.NewFromInt(amount), Currency: "HKD"}
}

func demoOffersHKGLondon() []trip.Offer {
	return []trip.Offer{
		{
			ID:    "QR-HKG-DOH-LHR-01",
			Price: hkd(7800),
			Itinerary: []trip.Segment{
				{From: "HKG", To: "DOH", Departure: "2025-10-12T19:40:00", Arrival: "2025-10-13T00:40:00", Carrier: "QR", FlightNo: "817", Cabin: trip.CabinEconomy},
				{From: "DOH", To: "LHR", Departure: "2025-10-13T02:20:00", Arrival: "2025-10-13T06:50:00", Carrier: "QR", FlightNo: "7", Cabin: trip.CabinEconomy},
			},
			TotalDurationMin: 19 * 60,
			Stops:            1,
			WeekendFit:       false,
		},
		{
			ID:    "QR-HKG-DOH-LGW-02",
			Price: hkd(9400),
			Itinerary: []trip.Segment{
				{From: "HKG", To: "DOH", Departure: "2025-11-07T20:30:00", Arrival: "2025-11-08T01:35:00", Carrier: "QR", FlightNo: "815", Cabin: trip.CabinEconomy},
				{From: "DOH", To: "LGW", Departure: "2025-11-08T03:10:00", Arrival: "2025-11-08T07:35:00", Carrier: "QR", FlightNo: "329", Cabin: trip.CabinEconomy},
			},
			TotalDurationMin: 18 * 60,
			Stops:            1,
			WeekendFit:       true,
		},
	}
}

func demoOffersStatusRun() []trip.Offer {
	return []trip.Offer{
		{
			ID:    "QR-HKG-DOH-RUH-01",
			Price: hkd(4680),
			Itinerary: []trip.Segment{
				{From: "HKG", To: "DOH", Departure: "2025-09-12T19:40:00", Arrival: "2025-09-13T00:40:00", Carrier: "QR", FlightNo: "817", Cabin: trip.CabinEconomy},
				{From: "DOH", To: "RUH", Departure: "2025-09-13T02:20:00", Arrival: "2025-09-13T03:40:00", Carrier: "QR", FlightNo: "1168", Cabin: trip.CabinEconomy},
				{From: "RUH", To: "DOH", Departure: "2025-09-14T20:30:00", Arrival: "2025-09-14T21:50:00", Carrier: "QR", FlightNo: "1169", Cabin: trip.CabinEconomy},
				{From: "DOH", To: "HKG", Departure: "2025-09-14T23:55:00", Arrival: "2025-09-15T12:50:00", Carrier: "QR", FlightNo: "818", Cabin: trip.CabinEconomy},
			},
			TotalDurationMin: 48 * 60,
			Stops:            3,
			WeekendFit:       true,
		},
	}
}
