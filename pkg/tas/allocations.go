package tas

import (
	"context"
	"net/http"
)

// CreateAllocation requests a new allocation for allocation["projectId"].
func (c *Client) CreateAllocation(ctx context.Context, allocation Record) (Record, error) {
	const op = "create allocation"
	if allocation == nil {
		return nil, invalidArgf("%s: allocation payload is required", op)
	}
	return c.callRecord(ctx, op, http.MethodPost, "/v1/allocations", nil, allocation)
}

// EditAllocation updates the allocation identified by allocation["id"].
func (c *Client) EditAllocation(ctx context.Context, allocation Record) (Record, error) {
	const op = "edit allocation"
	id, ok := allocation.ID()
	if !ok {
		return nil, invalidArgf("%s: allocation id is required", op)
	}
	return c.callRecord(ctx, op, http.MethodPut, pathf("/v1/allocations/%s", id), nil, allocation)
}

// AllocationApproval records a review decision (status, amounts, decision
// summary) on allocation id.
func (c *Client) AllocationApproval(ctx context.Context, id int64, allocation Record) (Record, error) {
	const op = "allocation approval"
	if id == 0 {
		return nil, invalidArgf("%s: allocation id is required", op)
	}
	if allocation == nil {
		return nil, invalidArgf("%s: allocation payload is required", op)
	}
	return c.callRecord(ctx, op, http.MethodPut, pathf("/v1/allocations/%s", id), nil, allocation)
}
