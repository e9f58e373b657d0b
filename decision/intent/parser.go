// Package intent turns free-text travel prompts into validated structured
// intents. The extraction is a handful of demo heuristics, not NLP: keyword
// detection for status runs and a budget pattern for "7,500 HKD" style
// amounts, over a fixed demo date window.
package intent

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"trip-planner/pkg/trip"
)

var (
	statusRunPattern = regexp.MustCompile(`(?i)qpoints|status|tier|gold`)
	budgetPattern    = regexp.MustCompile(`(?i)(\d+(?:,\d+)*)\s*hk?d`)

	validate = validator.New()
)

// ErrEmptyPrompt rejects blank input before any heuristic runs.
var ErrEmptyPrompt = errors.New("prompt is empty")

// Parse extracts a structured intent from a prompt and validates it. Status
// runs route to the HKG⇄RUH dataset with a weekend-only preference; anything
// else defaults to the cheapest HKG⇄London search.
func Parse(prompt string) (trip.Intent, error) {
	if strings.TrimSpace(prompt) == "" {
		return trip.Intent{}, ErrEmptyPrompt
	}

	isStatusRun := statusRunPattern.MatchString(prompt)

	var budgetMax *float64
	if m := budgetPattern.FindStringSubmatch(prompt); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil && v > 0 {
			budgetMax = &v
		}
	}

	in := trip.Intent{
		Goal:         trip.GoalCheapest,
		Origin:       "HKG",
		Destinations: []string{"LHR", "LGW"},
		DateWindow:   trip.DateWindow{Start: "2025-10-05", End: "2025-11-30"},
		TripLengthDays: &trip.TripLength{
			Min: 14,
			Max: 21,
		},
		BudgetMax: budgetMax,
	}
	if isStatusRun {
		in.Goal = trip.GoalStatusRun
		in.Destinations = []string{"RUH"}
		in.TripLengthDays = nil
		in.WeekendOnly = true
	}

	Normalize(&in)
	if err := Validate(in); err != nil {
		return trip.Intent{}, err
	}
	return in, nil
}

// Normalize applies the schema defaults the wire format leaves implicit:
// goal cheapest, budget currency HKD, economy cabin, codeshares allowed.
func Normalize(in *trip.Intent) {
	if in.Goal == "" {
		in.Goal = trip.GoalCheapest
	}
	if in.BudgetCurrency == "" {
		in.BudgetCurrency = "HKD"
	}
	if in.CabinPref == "" {
		in.CabinPref = trip.CabinEconomy
	}
	if in.CodeshareOK == nil {
		yes := true
		in.CodeshareOK = &yes
	}
}

// Validate checks an intent against its struct constraints. Malformed
// intents are rejected here, at the boundary, before reaching the core.
func Validate(in trip.Intent) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid intent: %w", err)
	}
	return nil
}
