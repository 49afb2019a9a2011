package models

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gotas/internal/tastest"
	"github.com/dmitrijs2005/gotas/pkg/tas"
)

func TestAllocation_PercentComputeUsed(t *testing.T) {
	tests := []struct {
		name      string
		allocated Field[float64]
		used      Field[float64]
		want      float64
	}{
		{name: "over allocation", allocated: Set(50000.0), used: Set(52774.149), want: 105.548298},
		{name: "quarter", allocated: Set(100.0), used: Set(25.0), want: 25},
		{name: "nothing allocated", allocated: Set(0.0), used: Set(10.0), want: 0},
		{name: "allocated absent", used: Set(10.0), want: 0},
		{name: "allocated null", allocated: Null[float64](), used: Set(10.0), want: 0},
		{name: "used absent", allocated: Set(100.0), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Allocation{ComputeAllocated: tt.allocated, ComputeUsed: tt.used}
			assert.InDelta(t, tt.want, a.PercentComputeUsed(), 0.0001)
		})
	}
}

func TestAllocation_DaysLeft(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })

	day := 24 * time.Hour
	tests := []struct {
		name       string
		end        Field[time.Time]
		wantDays   int
		wantOK     bool
		wantRenews bool
	}{
		{name: "30 days", end: Set(fixed.Add(30 * day)), wantDays: 30, wantOK: true, wantRenews: true},
		{name: "200 days", end: Set(fixed.Add(200 * day)), wantDays: 200, wantOK: true, wantRenews: false},
		{name: "90 days", end: Set(fixed.Add(90 * day)), wantDays: 90, wantOK: true, wantRenews: true},
		{name: "91 days", end: Set(fixed.Add(91 * day)), wantDays: 91, wantOK: true, wantRenews: false},
		{name: "ends today", end: Set(fixed.Add(3 * time.Hour)), wantDays: 0, wantOK: true, wantRenews: true},
		{name: "ended", end: Set(fixed.Add(-2 * day)), wantDays: -2, wantOK: true, wantRenews: false},
		{name: "ended 3h ago", end: Set(fixed.Add(-3 * time.Hour)), wantDays: -1, wantOK: true, wantRenews: false},
		{name: "ended 2 days 1h ago", end: Set(fixed.Add(-2*day - time.Hour)), wantDays: -3, wantOK: true, wantRenews: false},
		{name: "no end", wantOK: false},
		{name: "null end", end: Null[time.Time](), wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Allocation{End: tt.end}
			days, ok := a.DaysLeft()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDays, days)
			assert.Equal(t, tt.wantRenews, a.UpForRenewal())
		})
	}
}

func TestNewAllocation(t *testing.T) {
	a, err := NewAllocation(tas.Record{
		"id":         json.Number("5"),
		"status":     "Pending",
		"start":      "2024-01-01T00:00:00Z",
		"reviewer":   nil,
		"unknownKey": "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.ID.OrZero())
	assert.True(t, a.Reviewer.IsNull())
	assert.True(t, a.ComputeUsed.IsAbsent())

	dict := a.AsDict()
	assert.Equal(t, tas.Record{
		"id":       int64(5),
		"status":   "Pending",
		"start":    "2024-01-01T00:00:00Z",
		"reviewer": nil,
	}, dict)

	_, err = NewAllocation(tas.Record{"computeAllocated": true})
	require.ErrorIs(t, err, tas.ErrInvalidArgument)
	_, err = NewAllocation(nil)
	require.ErrorIs(t, err, tas.ErrInvalidArgument)
}

func TestAllocation_SaveEditReview(t *testing.T) {
	fake := tastest.New(t)
	fake.Success(http.MethodPost, "/v1/allocations", map[string]any{"id": 9, "projectId": 123, "status": "Pending"})
	fake.Success(http.MethodPut, "/v1/allocations/9", nil)
	api := fake.TASClient(t)
	ctx := context.Background()

	a, err := NewAllocation(tas.Record{"projectId": 123, "resourceId": 31, "computeRequested": 1000})
	require.NoError(t, err)
	require.NoError(t, a.Save(ctx, api))
	assert.Equal(t, int64(9), a.ID.OrZero())
	assert.Equal(t, StatusPending, a.Status.OrZero())

	require.ErrorIs(t, a.Save(ctx, api), tas.ErrInvalidArgument)

	a.Status = Set(StatusApproved)
	a.ComputeAllocated = Set(800.0)
	a.DecisionSummary = Set("Approved at reduced size.")
	require.NoError(t, a.Review(ctx, api))
	assert.Equal(t, StatusApproved, a.Status.OrZero(), "a null echo leaves the model as it was")

	require.NoError(t, a.Edit(ctx, api))

	reqs := fake.Requests()
	require.Len(t, reqs, 3)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(reqs[1].Body, &sent))
	assert.Equal(t, "Approved", sent["status"])
	assert.Equal(t, 800.0, sent["computeAllocated"])
	assert.Equal(t, http.MethodPut, reqs[2].Method)

	fresh := &Allocation{}
	require.ErrorIs(t, fresh.Edit(ctx, api), tas.ErrInvalidArgument)
	require.ErrorIs(t, fresh.Review(ctx, api), tas.ErrInvalidArgument)
	assert.Len(t, fake.Requests(), 3)
}
