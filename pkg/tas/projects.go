package tas

import (
	"context"
	"net/http"
)

// ListProjects lists every project visible to the service account.
func (c *Client) ListProjects(ctx context.Context) ([]Record, error) {
	return c.callRecords(ctx, "list projects", http.MethodGet, "/v1/projects", nil, nil)
}

// GetProject fetches one project with its pi and allocations embedded.
func (c *Client) GetProject(ctx context.Context, id int64) (Record, error) {
	const op = "get project"
	if id == 0 {
		return nil, invalidArgf("%s: id is required", op)
	}
	return c.callRecord(ctx, op, http.MethodGet, pathf("/v1/projects/%s", id), nil, nil)
}

// ProjectsForUser lists the projects username belongs to.
func (c *Client) ProjectsForUser(ctx context.Context, username string) ([]Record, error) {
	const op = "projects for user"
	if username == "" {
		return nil, invalidArgf("%s: username is required", op)
	}
	return c.callRecords(ctx, op, http.MethodGet, pathf("/v1/projects/username/%s", username), nil, nil)
}

// ProjectsForGroup lists the projects of a unix group.
func (c *Client) ProjectsForGroup(ctx context.Context, group string) ([]Record, error) {
	const op = "projects for group"
	if group == "" {
		return nil, invalidArgf("%s: group is required", op)
	}
	return c.callRecords(ctx, op, http.MethodGet, pathf("/v1/projects/group/%s", group), nil, nil)
}

// CreateProject submits a new project. The payload carries title, typeId,
// description, source, fieldId, piId and optionally the requested
// allocations.
func (c *Client) CreateProject(ctx context.Context, project Record) (Record, error) {
	const op = "create project"
	if project == nil {
		return nil, invalidArgf("%s: project payload is required", op)
	}
	return c.callRecord(ctx, op, http.MethodPost, "/v1/projects", nil, project)
}

// EditProject updates the project identified by project["id"].
func (c *Client) EditProject(ctx context.Context, project Record) (Record, error) {
	const op = "edit project"
	id, ok := project.ID()
	if !ok {
		return nil, invalidArgf("%s: project id is required", op)
	}
	return c.callRecord(ctx, op, http.MethodPut, pathf("/v1/projects/%s", id), nil, project)
}

// ProjectUsers lists the members of a project.
func (c *Client) ProjectUsers(ctx context.Context, projectID int64) ([]Record, error) {
	const op = "get project users"
	if projectID == 0 {
		return nil, invalidArgf("%s: project id is required", op)
	}
	return c.callRecords(ctx, op, http.MethodGet, pathf("/v1/projects/%s/users", projectID), nil, nil)
}

// AddProjectUser adds username to a project.
func (c *Client) AddProjectUser(ctx context.Context, projectID int64, username string) (bool, error) {
	return c.membership(ctx, "add project user", http.MethodPost, projectID, username)
}

// RemoveProjectUser removes username from a project.
func (c *Client) RemoveProjectUser(ctx context.Context, projectID int64, username string) (bool, error) {
	return c.membership(ctx, "remove project user", http.MethodDelete, projectID, username)
}

func (c *Client) membership(ctx context.Context, op, method string, projectID int64, username string) (bool, error) {
	if projectID == 0 || username == "" {
		return false, invalidArgf("%s: project id and username are required", op)
	}
	raw, err := c.call(ctx, op, method, pathf("/v1/projects/%s/users/%s", projectID, username), nil, nil)
	if err != nil {
		return false, err
	}
	return notFalse(raw), nil
}
