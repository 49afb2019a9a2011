package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gotas/pkg/tas"
)

// AllocationStatus values as reported by the service.
const (
	StatusActive   = "Active"
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusInactive = "Inactive"
)

// renewalWindowDays is how close to its end an allocation counts as up for
// renewal.
const renewalWindowDays = 90

// now is replaced in tests.
var now = time.Now

// Allocation is a grant of compute, memory and storage on one resource.
type Allocation struct {
	ID               Field[int64]
	ProjectID        Field[int64]
	Project          Field[string]
	ResourceID       Field[int64]
	Resource         Field[string]
	Status           Field[string]
	RequestorID      Field[int64]
	Requestor        Field[string]
	ReviewerID       Field[int64]
	Reviewer         Field[string]
	ComputeRequested Field[float64]
	ComputeAllocated Field[float64]
	ComputeUsed      Field[float64]
	MemoryRequested  Field[float64]
	MemoryAllocated  Field[float64]
	StorageRequested Field[float64]
	StorageAllocated Field[float64]
	DateRequested    Field[time.Time]
	DateReviewed     Field[time.Time]
	Start            Field[time.Time]
	End              Field[time.Time]
	Justification    Field[string]
	DecisionSummary  Field[string]
}

func hydrateAllocation(rec tas.Record) (*Allocation, error) {
	h := newHydrator("allocation", rec)
	a := &Allocation{
		ID:               h.intField("id"),
		ProjectID:        h.intField("projectId"),
		Project:          h.stringField("project"),
		ResourceID:       h.intField("resourceId"),
		Resource:         h.stringField("resource"),
		Status:           h.stringField("status"),
		RequestorID:      h.intField("requestorId"),
		Requestor:        h.stringField("requestor"),
		ReviewerID:       h.intField("reviewerId"),
		Reviewer:         h.stringField("reviewer"),
		ComputeRequested: h.floatField("computeRequested"),
		ComputeAllocated: h.floatField("computeAllocated"),
		ComputeUsed:      h.floatField("computeUsed"),
		MemoryRequested:  h.floatField("memoryRequested"),
		MemoryAllocated:  h.floatField("memoryAllocated"),
		StorageRequested: h.floatField("storageRequested"),
		StorageAllocated: h.floatField("storageAllocated"),
		DateRequested:    h.timeField("dateRequested"),
		DateReviewed:     h.timeField("dateReviewed"),
		Start:            h.timeField("start"),
		End:              h.timeField("end"),
		Justification:    h.stringField("justification"),
		DecisionSummary:  h.stringField("decisionSummary"),
	}
	if h.err != nil {
		return nil, h.err
	}
	return a, nil
}

// NewAllocation builds an Allocation from a caller-supplied record.
func NewAllocation(rec tas.Record) (*Allocation, error) {
	if rec == nil {
		return nil, localError("new allocation", errors.New("record is nil"))
	}
	a, err := hydrateAllocation(rec)
	if err != nil {
		return nil, localError("new allocation", err)
	}
	return a, nil
}

func allocationFromRemote(op string, rec tas.Record) (*Allocation, error) {
	if rec == nil {
		return nil, remoteError(op, errors.New("allocation record is null"))
	}
	a, err := hydrateAllocation(rec)
	if err != nil {
		return nil, remoteError(op, err)
	}
	return a, nil
}

// AsDict returns the allocation as a record, leaving out absent attributes.
// Timestamps are written as RFC 3339 in UTC.
func (a *Allocation) AsDict() tas.Record {
	rec := make(tas.Record)
	put(rec, "id", a.ID)
	put(rec, "projectId", a.ProjectID)
	put(rec, "project", a.Project)
	put(rec, "resourceId", a.ResourceID)
	put(rec, "resource", a.Resource)
	put(rec, "status", a.Status)
	put(rec, "requestorId", a.RequestorID)
	put(rec, "requestor", a.Requestor)
	put(rec, "reviewerId", a.ReviewerID)
	put(rec, "reviewer", a.Reviewer)
	put(rec, "computeRequested", a.ComputeRequested)
	put(rec, "computeAllocated", a.ComputeAllocated)
	put(rec, "computeUsed", a.ComputeUsed)
	put(rec, "memoryRequested", a.MemoryRequested)
	put(rec, "memoryAllocated", a.MemoryAllocated)
	put(rec, "storageRequested", a.StorageRequested)
	put(rec, "storageAllocated", a.StorageAllocated)
	putTime(rec, "dateRequested", a.DateRequested)
	putTime(rec, "dateReviewed", a.DateReviewed)
	putTime(rec, "start", a.Start)
	putTime(rec, "end", a.End)
	put(rec, "justification", a.Justification)
	put(rec, "decisionSummary", a.DecisionSummary)
	return rec
}

// PercentComputeUsed is computeUsed as a percentage of computeAllocated, or 0
// when nothing was allocated. Usage past the allocation yields more than 100.
func (a *Allocation) PercentComputeUsed() float64 {
	allocated := a.ComputeAllocated.OrZero()
	if allocated <= 0 {
		return 0
	}
	return a.ComputeUsed.OrZero() / allocated * 100
}

// DaysLeft is the number of whole days until End, rounded down, so it turns
// negative as soon as End has passed. ok is false when End is not set.
func (a *Allocation) DaysLeft() (days int, ok bool) {
	end, ok := a.End.Get()
	if !ok {
		return 0, false
	}
	const day = 24 * time.Hour
	d := end.Sub(now()).Round(time.Second)
	days = int(d / day)
	if d%day < 0 {
		days--
	}
	return days, true
}

// UpForRenewal reports whether the allocation ends within the next 90 days.
func (a *Allocation) UpForRenewal() bool {
	days, ok := a.DaysLeft()
	return ok && days >= 0 && days <= renewalWindowDays
}

func (a *Allocation) identified() (int64, bool) {
	id, ok := a.ID.Get()
	return id, ok && id != 0
}

// Save requests a new allocation and replaces a with what the service
// stored. An allocation that already has an id is rejected; use Edit.
func (a *Allocation) Save(ctx context.Context, api API) error {
	const op = "save allocation"
	if _, ok := a.identified(); ok {
		return fmt.Errorf("%s: %w: allocation already exists, use Edit", op, tas.ErrInvalidArgument)
	}
	rec, err := api.CreateAllocation(ctx, a.AsDict())
	if err != nil {
		return err
	}
	saved, err := allocationFromRemote(op, rec)
	if err != nil {
		return err
	}
	*a = *saved
	return nil
}

// Edit sends the allocation's current attributes as an update. When the
// service echoes the stored record, a is refreshed from it.
func (a *Allocation) Edit(ctx context.Context, api API) error {
	const op = "edit allocation"
	if _, ok := a.identified(); !ok {
		return fmt.Errorf("%s: %w: allocation has no id, use Save", op, tas.ErrInvalidArgument)
	}
	rec, err := api.EditAllocation(ctx, a.AsDict())
	if err != nil || rec == nil {
		return err
	}
	saved, err := allocationFromRemote(op, rec)
	if err != nil {
		return err
	}
	*a = *saved
	return nil
}

// Review submits the allocation's status, amounts and decision summary as a
// review decision.
func (a *Allocation) Review(ctx context.Context, api API) error {
	const op = "review allocation"
	id, ok := a.identified()
	if !ok {
		return fmt.Errorf("%s: %w: allocation has no id", op, tas.ErrInvalidArgument)
	}
	rec, err := api.AllocationApproval(ctx, id, a.AsDict())
	if err != nil || rec == nil {
		return err
	}
	saved, err := allocationFromRemote(op, rec)
	if err != nil {
		return err
	}
	*a = *saved
	return nil
}
