package tas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Institutions lists institution summaries.
func (c *Client) Institutions(ctx context.Context) ([]Record, error) {
	return c.callRecords(ctx, "list institutions", http.MethodGet, "/v1/institutions/", nil, nil)
}

// GetInstitution fetches an institution with its departments flattened into
// Children.
func (c *Client) GetInstitution(ctx context.Context, id int64) (*Institution, error) {
	const op = "get institution"
	if id == 0 {
		return nil, invalidArgf("%s: id is required", op)
	}
	return c.institution(ctx, op, id)
}

// GetDepartment fetches a department. Departments live in the institution
// tree, so this is an institution lookup by the department's id;
// institutionID is only checked for presence.
func (c *Client) GetDepartment(ctx context.Context, institutionID, departmentID int64) (*Institution, error) {
	const op = "get department"
	if institutionID == 0 || departmentID == 0 {
		return nil, invalidArgf("%s: institution id and department id are required", op)
	}
	return c.institution(ctx, op, departmentID)
}

func (c *Client) institution(ctx context.Context, op string, id int64) (*Institution, error) {
	raw, err := c.call(ctx, op, http.MethodGet, pathf("/v1/institutions/%s", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var res struct {
		ID          int64      `json:"id"`
		Name        string     `json:"name"`
		Active      *bool      `json:"active"`
		Departments []deptNode `json:"departments"`
	}
	if isNull(raw) {
		return nil, fmt.Errorf("%s: %w", op, &ProtocolError{Reason: "institution result is null"})
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, &ProtocolError{Body: raw, Reason: "decode institution", Err: err})
	}
	return &Institution{
		ID:       res.ID,
		Name:     res.Name,
		Active:   res.Active,
		Children: flattenDepartments(res.Departments),
	}, nil
}

// GetDepartments lists the departments of an institution, depth-first.
func (c *Client) GetDepartments(ctx context.Context, institutionID int64) ([]Department, error) {
	const op = "get departments"
	if institutionID == 0 {
		return nil, invalidArgf("%s: institution id is required", op)
	}
	raw, err := c.call(ctx, op, http.MethodGet, pathf("/v1/institutions/%s/departments", institutionID), nil, nil)
	if err != nil {
		return nil, err
	}
	var nodes []deptNode
	if !isNull(raw) {
		if err := json.Unmarshal(raw, &nodes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, &ProtocolError{Body: raw, Reason: "decode departments", Err: err})
		}
	}
	return flattenDepartments(nodes), nil
}

// Fields lists the fields of science projects can be filed under.
func (c *Client) Fields(ctx context.Context) ([]Record, error) {
	return c.callRecords(ctx, "list fields", http.MethodGet, "/tup/projects/fields", nil, nil)
}
