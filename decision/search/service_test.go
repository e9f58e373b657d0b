package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/catalog"
	"trip-planner/decision/ranking"
	"trip-planner/pkg/trip"
)

func km(v float64) *float64 { return &v }

func offer(id string, amount int64, durationMin int, weekendFit bool) trip.Offer {
	return trip.Offer{
		ID:               id,
		Price:            trip.Money{Amount: decimal.NewFromInt(amount), Currency: "HKD"},
		TotalDurationMin: durationMin,
		WeekendFit:       weekendFit,
		Itinerary: []trip.Segment{
			{From: "HKG", To: "DOH", Cabin: trip.CabinEconomy, DistanceKm: km(6300)},
		},
	}
}

func staticSource(t *testing.T, offers ...trip.Offer) catalog.Source {
	t.Helper()
	src, err := catalog.NewStaticSource(offers)
	require.NoError(t, err)
	return src
}

type failingSource struct{}

func (failingSource) Offers(context.Context, trip.Goal) ([]trip.Offer, error) {
	return nil, errors.New("catalog unavailable")
}

func budget(v float64) *float64 { return &v }

func TestSearchBudgetFilter(t *testing.T) {
	a := offer("A", 7800, 1140, false)
	b := offer("B", 9400, 1080, true)
	svc := NewService(staticSource(t, a, b), nil)

	in := trip.Intent{Goal: trip.GoalCheapest, BudgetMax: budget(8000)}
	result, err := svc.Search(context.Background(), in, trip.ModeCheapest)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "A", result.Results[0].Offer.ID)
	assert.Equal(t, 1, result.TotalMatched)
}

func TestSearchBudgetIsInclusive(t *testing.T) {
	a := offer("A", 7800, 1140, false)
	svc := NewService(staticSource(t, a), nil)

	in := trip.Intent{Goal: trip.GoalCheapest, BudgetMax: budget(7800)}
	result, err := svc.Search(context.Background(), in, trip.ModeCheapest)
	require.NoError(t, err)
	assert.Len(t, result.Results, 1, "price equal to the budget passes")
}

func TestSearchNoBudgetKeepsAll(t *testing.T) {
	svc := NewService(staticSource(t, offer("A", 7800, 1140, false), offer("B", 9400, 1080, true)), nil)

	result, err := svc.Search(context.Background(), trip.Intent{Goal: trip.GoalCheapest}, trip.ModeCheapest)
	require.NoError(t, err)
	assert.Len(t, result.Results, 2)
}

func TestSearchCapsResults(t *testing.T) {
	var offers []trip.Offer
	for i := 0; i < 15; i++ {
		offers = append(offers, offer(fmt.Sprintf("O-%02d", i), int64(1000+i), 600, false))
	}
	svc := NewService(staticSource(t, offers...), nil)

	result, err := svc.Search(context.Background(), trip.Intent{Goal: trip.GoalCheapest}, trip.ModeCheapest)
	require.NoError(t, err)
	assert.Len(t, result.Results, DefaultResultLimit)
	assert.Equal(t, 15, result.TotalMatched)

	capped, err := svc.WithResultLimit(3).Search(context.Background(), trip.Intent{Goal: trip.GoalCheapest}, trip.ModeCheapest)
	require.NoError(t, err)
	assert.Len(t, capped.Results, 3)
}

func TestSearchAttachesRationale(t *testing.T) {
	svc := NewService(staticSource(t, offer("A", 7800, 1140, false)), nil)

	result, err := svc.Search(context.Background(), trip.Intent{Goal: trip.GoalCheapest}, trip.ModeCheapest)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "Cheapest in set: 7800 HKD", result.Results[0].Rationale)
	assert.NotEqual(t, uuid.Nil, result.RequestID)
	assert.False(t, result.EvaluatedAt.IsZero())
}

func TestSearchEmptyOutcomeIsNotAnError(t *testing.T) {
	svc := NewService(staticSource(t, offer("A", 7800, 1140, false)), nil)

	// Over-tight budget: valid request, empty result list.
	in := trip.Intent{Goal: trip.GoalCheapest, BudgetMax: budget(100)}
	result, err := svc.Search(context.Background(), in, trip.ModeCheapest)
	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.Equal(t, 0, result.TotalMatched)

	// Empty catalog behaves the same way.
	empty := NewService(staticSource(t), nil)
	result, err = empty.Search(context.Background(), trip.Intent{Goal: trip.GoalCheapest}, trip.ModeCheapest)
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestSearchDemoScenario(t *testing.T) {
	// The full demo path: memory catalog, mode per goal, budget 8000 keeps
	// only the 7800 HKD London offer.
	svc := NewService(catalog.NewMemorySource(), nil)

	in := trip.Intent{Goal: trip.GoalCheapest, BudgetMax: budget(8000)}
	result, err := svc.Search(context.Background(), in, trip.ModeCheapest)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "QR-HKG-DOH-LHR-01", result.Results[0].Offer.ID)
	assert.EqualValues(t, 29, result.Results[0].Qpoints)

	statusRun, err := svc.Search(context.Background(), trip.Intent{Goal: trip.GoalStatusRun}, trip.ModeQpointsPerHKD)
	require.NoError(t, err)
	require.Len(t, statusRun.Results, 1)
	assert.Equal(t, "QR-HKG-DOH-RUH-01", statusRun.Results[0].Offer.ID)
}

func TestSearchCatalogFailure(t *testing.T) {
	svc := NewService(failingSource{}, nil)

	_, err := svc.Search(context.Background(), trip.Intent{Goal: trip.GoalCheapest}, trip.ModeCheapest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog lookup failed")
}

func TestSearchUnknownModeFailsLoudly(t *testing.T) {
	svc := NewService(staticSource(t, offer("A", 7800, 1140, false)), nil)

	_, err := svc.Search(context.Background(), trip.Intent{Goal: trip.GoalCheapest}, trip.RankMode("fanciest"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ranking.ErrUnknownMode)
}
