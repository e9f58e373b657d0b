package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/pkg/trip"
)

func TestParseCheapestPrompt(t *testing.T) {
	in, err := Parse("two weeks in London this autumn, economy is fine")
	require.NoError(t, err)

	assert.Equal(t, trip.GoalCheapest, in.Goal)
	assert.Equal(t, "HKG", in.Origin)
	assert.Equal(t, []string{"LHR", "LGW"}, in.Destinations)
	require.NotNil(t, in.TripLengthDays)
	assert.Equal(t, 14, in.TripLengthDays.Min)
	assert.Equal(t, 21, in.TripLengthDays.Max)
	assert.False(t, in.WeekendOnly)
	assert.Nil(t, in.BudgetMax)
}

func TestParseStatusRunPrompt(t *testing.T) {
	cases := []struct {
		prompt string
		name   string
	}{
		{prompt: "cheapest way to farm Qpoints before December", name: "qpoints keyword"},
		{prompt: "I need a status run to keep gold tier", name: "status keyword"},
		{prompt: "short hop to retain my TIER", name: "case insensitive"},
	}

	for _, c := range cases {
		in, err := Parse(c.prompt)
		require.NoError(t, err, c.name)
		assert.Equal(t, trip.GoalStatusRun, in.Goal, c.name)
		assert.Equal(t, []string{"RUH"}, in.Destinations, c.name)
		assert.True(t, in.WeekendOnly, c.name)
		assert.Nil(t, in.TripLengthDays, c.name)
	}
}

func TestParseBudget(t *testing.T) {
	cases := []struct {
		prompt string
		want   float64
		name   string
	}{
		{prompt: "London under 8000 HKD", want: 8000, name: "plain amount"},
		{prompt: "budget is 9,400 hkd all in", want: 9400, name: "comma grouping, lowercase"},
		{prompt: "max 7800 HD", want: 7800, name: "hd variant accepted"},
	}

	for _, c := range cases {
		in, err := Parse(c.prompt)
		require.NoError(t, err, c.name)
		require.NotNil(t, in.BudgetMax, c.name)
		assert.EqualValues(t, c.want, *in.BudgetMax, c.name)
	}
}

func TestParseNoBudget(t *testing.T) {
	in, err := Parse("anywhere warm in November")
	require.NoError(t, err)
	assert.Nil(t, in.BudgetMax)
}

func TestParseEmptyPrompt(t *testing.T) {
	_, err := Parse("   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestNormalizeDefaults(t *testing.T) {
	in := trip.Intent{}
	Normalize(&in)

	assert.Equal(t, trip.GoalCheapest, in.Goal)
	assert.Equal(t, "HKD", in.BudgetCurrency)
	assert.Equal(t, trip.CabinEconomy, in.CabinPref)
	require.NotNil(t, in.CodeshareOK)
	assert.True(t, *in.CodeshareOK)
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	no := false
	in := trip.Intent{
		Goal:           trip.GoalShortest,
		BudgetCurrency: "USD",
		CabinPref:      trip.CabinBusiness,
		CodeshareOK:    &no,
	}
	Normalize(&in)

	assert.Equal(t, trip.GoalShortest, in.Goal)
	assert.Equal(t, "USD", in.BudgetCurrency)
	assert.Equal(t, trip.CabinBusiness, in.CabinPref)
	assert.False(t, *in.CodeshareOK)
}

func TestValidate(t *testing.T) {
	valid := trip.Intent{
		Goal:       trip.GoalCheapest,
		Origin:     "HKG",
		DateWindow: trip.DateWindow{Start: "2025-10-05", End: "2025-11-30"},
	}
	Normalize(&valid)

	cases := []struct {
		mutate  func(*trip.Intent)
		wantErr bool
		name    string
	}{
		{mutate: func(*trip.Intent) {}, wantErr: false, name: "valid intent"},
		{mutate: func(in *trip.Intent) { in.Goal = "roadtrip" }, wantErr: true, name: "goal outside enum"},
		{mutate: func(in *trip.Intent) { in.Origin = "HONGKONG" }, wantErr: true, name: "origin not a 3-letter code"},
		{mutate: func(in *trip.Intent) { in.DateWindow.End = "" }, wantErr: true, name: "missing window end"},
		{mutate: func(in *trip.Intent) { b := -50.0; in.BudgetMax = &b }, wantErr: true, name: "negative budget"},
		{mutate: func(in *trip.Intent) { in.CabinPref = "SUITE" }, wantErr: true, name: "cabin outside enum"},
		{mutate: func(in *trip.Intent) { in.Destinations = []string{"LHR", "GATWICK"} }, wantErr: true, name: "bad destination code"},
	}

	for _, c := range cases {
		in := valid
		c.mutate(&in)
		err := Validate(in)
		if c.wantErr {
			assert.Error(t, err, c.name)
		} else {
			assert.NoError(t, err, c.name)
		}
	}
}
