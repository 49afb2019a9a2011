// Package models hydrates TAS records into typed User, Project and Allocation
// values and maps model operations back onto the endpoint client.
//
// Every attribute is a Field, so a key the service left out and a key it sent
// as null stay distinguishable. Hydration reads an explicit list of keys per
// type and ignores the rest. Remote constructors (GetUser, GetProject,
// ListProjects) and local ones (NewUser, NewProject, NewAllocation) share the
// same hydration; a record that does not fit is rejected as a whole, with
// tas.ErrInvalidArgument for local records and tas.ErrProtocol for records
// returned by the service.
//
// Models hold no client. Operations that talk to the service take an API,
// which *tas.Client satisfies.
package models

import (
	"context"

	"github.com/dmitrijs2005/gotas/pkg/tas"
)

// API is the part of *tas.Client the models call.
type API interface {
	GetUser(ctx context.Context, sel tas.UserSelector) (tas.Record, error)
	SaveUser(ctx context.Context, id int64, user tas.Record) (tas.Record, error)
	VerifyUser(ctx context.Context, id int64, code, password string) (bool, error)
	RequestPasswordReset(ctx context.Context, username, source string) (any, error)
	ConfirmPasswordReset(ctx context.Context, username, code, newPassword, source string) (bool, error)

	GetProject(ctx context.Context, id int64) (tas.Record, error)
	ProjectsForUser(ctx context.Context, username string) ([]tas.Record, error)
	ProjectsForGroup(ctx context.Context, group string) ([]tas.Record, error)
	CreateProject(ctx context.Context, project tas.Record) (tas.Record, error)
	EditProject(ctx context.Context, project tas.Record) (tas.Record, error)
	ProjectUsers(ctx context.Context, projectID int64) ([]tas.Record, error)
	AddProjectUser(ctx context.Context, projectID int64, username string) (bool, error)
	RemoveProjectUser(ctx context.Context, projectID int64, username string) (bool, error)

	CreateAllocation(ctx context.Context, allocation tas.Record) (tas.Record, error)
	EditAllocation(ctx context.Context, allocation tas.Record) (tas.Record, error)
	AllocationApproval(ctx context.Context, id int64, allocation tas.Record) (tas.Record, error)
}

var _ API = (*tas.Client)(nil)
