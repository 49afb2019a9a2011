package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gotas/pkg/tas"
)

// ProjectType is one of the project categories the service accepts as typeId.
type ProjectType struct {
	ID   int64
	Name string
}

// ProjectTypes in the order the service presents them.
var ProjectTypes = []ProjectType{
	{ID: 0, Name: "Research"},
	{ID: 2, Name: "Startup"},
	{ID: 4, Name: "Educational"},
	{ID: 1, Name: "Institutional"},
	{ID: 6, Name: "Partner"},
}

// ProjectTypeName returns the name for a typeId.
func ProjectTypeName(id int64) (string, bool) {
	for _, t := range ProjectTypes {
		if t.ID == id {
			return t.Name, true
		}
	}
	return "", false
}

// Project is a research project with its principal investigator and
// allocations. PI is never nil and Allocations never nil on a hydrated
// Project.
type Project struct {
	ID          Field[int64]
	ChargeCode  Field[string]
	Title       Field[string]
	TypeID      Field[int64]
	Type        Field[string]
	Description Field[string]
	Source      Field[string]
	FieldID     Field[int64]
	FieldName   Field[string]
	PIID        Field[int64]
	GID         Field[int64]

	PI          *User
	Allocations []*Allocation
}

func hydrateProject(rec tas.Record) (*Project, error) {
	h := newHydrator("project", rec)
	p := &Project{
		ID:          h.intField("id"),
		ChargeCode:  h.stringField("chargeCode"),
		Title:       h.stringField("title"),
		TypeID:      h.intField("typeId"),
		Type:        h.stringField("type"),
		Description: h.stringField("description"),
		Source:      h.stringField("source"),
		FieldID:     h.intField("fieldId"),
		FieldName:   h.stringField("field"),
		PIID:        h.intField("piId"),
		GID:         h.intField("gid"),
	}
	piRec, hasPI := h.record("pi")
	allocRecs := h.list("allocations")
	if h.err != nil {
		return nil, h.err
	}

	p.PI = &User{}
	if hasPI {
		pi, err := hydrateUser(piRec)
		if err != nil {
			return nil, fmt.Errorf("project.pi: %w", err)
		}
		p.PI = pi
	}

	p.Allocations = make([]*Allocation, 0, len(allocRecs))
	for i, ar := range allocRecs {
		a, err := hydrateAllocation(ar)
		if err != nil {
			return nil, fmt.Errorf("project.allocations[%d]: %w", i, err)
		}
		p.Allocations = append(p.Allocations, a)
	}
	return p, nil
}

// NewProject builds a Project from a caller-supplied record. A missing or
// null pi yields an empty User; missing allocations yield an empty list.
func NewProject(rec tas.Record) (*Project, error) {
	if rec == nil {
		return nil, localError("new project", errors.New("record is nil"))
	}
	p, err := hydrateProject(rec)
	if err != nil {
		return nil, localError("new project", err)
	}
	return p, nil
}

func projectFromRemote(op string, rec tas.Record) (*Project, error) {
	if rec == nil {
		return nil, remoteError(op, errors.New("project record is null"))
	}
	p, err := hydrateProject(rec)
	if err != nil {
		return nil, remoteError(op, err)
	}
	return p, nil
}

// GetProject fetches and hydrates one project, its pi and its allocations.
func GetProject(ctx context.Context, api API, id int64) (*Project, error) {
	rec, err := api.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return projectFromRemote("get project", rec)
}

// ProjectFilter selects projects by exactly one of Username or Group.
type ProjectFilter struct {
	Username string
	Group    string
}

// ListProjects fetches the projects of a user or of a unix group.
func ListProjects(ctx context.Context, api API, f ProjectFilter) ([]*Project, error) {
	const op = "list projects"
	var (
		recs []tas.Record
		err  error
	)
	switch {
	case f.Username != "" && f.Group != "":
		return nil, fmt.Errorf("%s: %w: only one of username or group may be given", op, tas.ErrInvalidArgument)
	case f.Username != "":
		recs, err = api.ProjectsForUser(ctx, f.Username)
	case f.Group != "":
		recs, err = api.ProjectsForGroup(ctx, f.Group)
	default:
		return nil, fmt.Errorf("%s: %w: username or group is required", op, tas.ErrInvalidArgument)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*Project, 0, len(recs))
	for i, rec := range recs {
		p, err := projectFromRemote(op, rec)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// AsDict returns the project as a record with pi and allocations nested as
// records. Absent attributes are left out, and so is a pi with none set.
func (p *Project) AsDict() tas.Record {
	rec := make(tas.Record)
	put(rec, "id", p.ID)
	put(rec, "chargeCode", p.ChargeCode)
	put(rec, "title", p.Title)
	put(rec, "typeId", p.TypeID)
	put(rec, "type", p.Type)
	put(rec, "description", p.Description)
	put(rec, "source", p.Source)
	put(rec, "fieldId", p.FieldID)
	put(rec, "field", p.FieldName)
	put(rec, "piId", p.PIID)
	put(rec, "gid", p.GID)

	if p.PI != nil {
		if pi := p.PI.AsDict(); len(pi) > 0 {
			rec["pi"] = pi
		}
	}
	allocs := make([]tas.Record, 0, len(p.Allocations))
	for _, a := range p.Allocations {
		allocs = append(allocs, a.AsDict())
	}
	rec["allocations"] = allocs
	return rec
}

func (p *Project) String() string {
	if code, ok := p.ChargeCode.Get(); ok {
		return code
	}
	return "<new project>"
}

// AllocationsBy returns the allocations matching status (case-insensitive)
// and resource. An empty resource matches every resource.
func (p *Project) AllocationsBy(status, resource string) []*Allocation {
	var out []*Allocation
	for _, a := range p.Allocations {
		if !strings.EqualFold(a.Status.OrZero(), status) {
			continue
		}
		if resource != "" && a.Resource.OrZero() != resource {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (p *Project) HasAllocations(status, resource string) bool {
	return len(p.AllocationsBy(status, resource)) > 0
}

func (p *Project) ActiveAllocations() []*Allocation {
	return p.AllocationsBy(StatusActive, "")
}

func (p *Project) HasActiveAllocations() bool {
	return p.HasAllocations(StatusActive, "")
}

func (p *Project) PendingAllocations() []*Allocation {
	return p.AllocationsBy(StatusPending, "")
}

func (p *Project) HasPendingAllocations() bool {
	return p.HasAllocations(StatusPending, "")
}

func (p *Project) identified() (int64, bool) {
	id, ok := p.ID.Get()
	return id, ok && id != 0
}

// Save submits a new project and replaces p with what the service stored,
// including the assigned id. A project that already has an id is rejected;
// use Edit.
func (p *Project) Save(ctx context.Context, api API) error {
	const op = "save project"
	if _, ok := p.identified(); ok {
		return fmt.Errorf("%s: %w: project already exists, use Edit", op, tas.ErrInvalidArgument)
	}
	rec, err := api.CreateProject(ctx, p.AsDict())
	if err != nil {
		return err
	}
	saved, err := projectFromRemote(op, rec)
	if err != nil {
		return err
	}
	*p = *saved
	return nil
}

// Edit sends the project's current attributes as an update. When the service
// echoes the stored record, p is refreshed from it.
func (p *Project) Edit(ctx context.Context, api API) error {
	const op = "edit project"
	if _, ok := p.identified(); !ok {
		return fmt.Errorf("%s: %w: project has no id, use Save", op, tas.ErrInvalidArgument)
	}
	rec, err := api.EditProject(ctx, p.AsDict())
	if err != nil || rec == nil {
		return err
	}
	saved, err := projectFromRemote(op, rec)
	if err != nil {
		return err
	}
	*p = *saved
	return nil
}

// Users lists the project's members.
func (p *Project) Users(ctx context.Context, api API) ([]*User, error) {
	const op = "project users"
	id, ok := p.identified()
	if !ok {
		return nil, fmt.Errorf("%s: %w: project has no id", op, tas.ErrInvalidArgument)
	}
	recs, err := api.ProjectUsers(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]*User, 0, len(recs))
	for _, rec := range recs {
		u, err := userFromRemote(op, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (p *Project) AddUser(ctx context.Context, api API, username string) (bool, error) {
	id, ok := p.identified()
	if !ok {
		return false, fmt.Errorf("add project user: %w: project has no id", tas.ErrInvalidArgument)
	}
	return api.AddProjectUser(ctx, id, username)
}

func (p *Project) RemoveUser(ctx context.Context, api API, username string) (bool, error) {
	id, ok := p.identified()
	if !ok {
		return false, fmt.Errorf("remove project user: %w: project has no id", tas.ErrInvalidArgument)
	}
	return api.RemoveProjectUser(ctx, id, username)
}
