// Package trip defines the shared value types exchanged between the intent
// parser, the catalog, the ranking engine, and the API surface. Everything
// here is immutable input/output data; no component mutates another's values.
package trip

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// The wire format carries price amounts as bare JSON numbers
	// (price: {"amount": 7800, "currency": "HKD"}), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Cabin is the service tier of a flight segment. The tier decides the
// per-distance Qpoints accrual rate.
type Cabin string

const (
	CabinEconomy        Cabin = "ECONOMY"
	CabinPremiumEconomy Cabin = "PREMIUM_ECONOMY"
	CabinBusiness       Cabin = "BUSINESS"
	CabinFirst          Cabin = "FIRST"
)

// Goal selects which catalog subset a search draws from.
type Goal string

const (
	GoalCheapest       Goal = "cheapest"
	GoalStatusRun      Goal = "status_run"
	GoalWeekendGetaway Goal = "weekend_getaway"
	GoalShortest       Goal = "shortest"
)

// RankMode is the total-order strategy applied to a catalog subset.
type RankMode string

const (
	ModeCheapest      RankMode = "cheapest"
	ModeShortest      RankMode = "shortest"
	ModeQpointsPerHKD RankMode = "qpoints_per_hkd"
	ModeWeekend       RankMode = "weekend"
)

// ParseRankMode validates a caller-supplied mode string. The mode enum is
// closed; anything outside it is a boundary validation failure, never a
// silent default.
func ParseRankMode(s string) (RankMode, error) {
	switch RankMode(s) {
	case ModeCheapest, ModeShortest, ModeQpointsPerHKD, ModeWeekend:
		return RankMode(s), nil
	}
	return "", fmt.Errorf("unknown rank mode %q (valid: cheapest, shortest, qpoints_per_hkd, weekend)", s)
}

// Money is an immutable amount/currency pair.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Segment is one flight leg. DistanceKm is authoritative when present;
// absent distances are estimated downstream and never written back.
type Segment struct {
	From       string   `json:"from" validate:"required,len=3"`
	To         string   `json:"to" validate:"required,len=3"`
	Departure  string   `json:"dep"` // ISO-8601 local datetime
	Arrival    string   `json:"arr"`
	Carrier    string   `json:"carrier" validate:"omitempty,len=2"`
	FlightNo   string   `json:"flightNo"`
	Cabin      Cabin    `json:"cabin"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// Offer is a priced multi-segment travel option sourced from the catalog.
// Segment order is travel order: the first segment's From is the itinerary
// origin, the last segment's To its destination.
type Offer struct {
	ID               string    `json:"id"`
	Price            Money     `json:"price"`
	Itinerary        []Segment `json:"itinerary"`
	TotalDurationMin int       `json:"totalDurationMin"`
	Stops            int       `json:"stops"`
	WeekendFit       bool      `json:"weekendFit,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}

// Origin returns the itinerary origin, or "" for an empty itinerary.
func (o Offer) Origin() string {
	if len(o.Itinerary) == 0 {
		return ""
	}
	return o.Itinerary[0].From
}

// Destination returns the itinerary destination, or "" for an empty itinerary.
func (o Offer) Destination() string {
	if len(o.Itinerary) == 0 {
		return ""
	}
	return o.Itinerary[len(o.Itinerary)-1].To
}

// DateWindow bounds the acceptable travel dates (ISO dates, inclusive).
type DateWindow struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// TripLength bounds the trip length in days.
type TripLength struct {
	Min int `json:"min" validate:"gt=0"`
	Max int `json:"max" validate:"gt=0,gtefield=Min"`
}

// Intent is a validated, structured travel request. It is produced by the
// intent parser (or supplied directly by API callers) and treated as
// read-only by everything downstream.
type Intent struct {
	Goal           Goal        `json:"goal" validate:"required,oneof=cheapest status_run weekend_getaway shortest"`
	Origin         string      `json:"origin" validate:"required,len=3"`
	Destinations   []string    `json:"destinations,omitempty" validate:"omitempty,dive,len=3"`
	DateWindow     DateWindow  `json:"date_window"`
	TripLengthDays *TripLength `json:"trip_length_days,omitempty"`
	BudgetCurrency string      `json:"budget_currency"`
	BudgetMax      *float64    `json:"budget_max,omitempty" validate:"omitempty,gt=0"`
	WeekendOnly    bool        `json:"weekend_only,omitempty"`
	Passport       string      `json:"passport,omitempty"`
	VisasAllowed   []string    `json:"visas_allowed,omitempty"`
	CodeshareOK    *bool       `json:"codeshare_ok,omitempty"`
	CabinPref      Cabin       `json:"cabin_pref" validate:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	Notes          string      `json:"notes,omitempty"`
}

// RankedOffer pairs an offer with its computed reward metrics and, once the
// orchestrator has run, a human-readable rationale. Instances live for one
// search invocation and are never cached.
type RankedOffer struct {
	Offer     Offer   `json:"offer"`
	Qpoints   int64   `json:"qpoints"`
	QPerHKD   float64 `json:"qPerHKD"`
	Rationale string  `json:"rationale,omitempty"`
}
