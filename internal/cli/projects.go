package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gotas/pkg/tas"
	"github.com/dmitrijs2005/gotas/pkg/tas/models"
)

// allocationSummary is the per-allocation digest printed by projects get.
type allocationSummary struct {
	ID                 int64   `json:"id"`
	Resource           string  `json:"resource"`
	Status             string  `json:"status"`
	PercentComputeUsed float64 `json:"percentComputeUsed"`
	DaysLeft           *int    `json:"daysLeft"`
	UpForRenewal       bool    `json:"upForRenewal"`
}

type projectView struct {
	Project     tas.Record          `json:"project"`
	Allocations []allocationSummary `json:"allocations"`
}

func summarize(p *models.Project) projectView {
	v := projectView{Project: p.AsDict(), Allocations: make([]allocationSummary, 0, len(p.Allocations))}
	for _, al := range p.Allocations {
		s := allocationSummary{
			ID:                 al.ID.OrZero(),
			Resource:           al.Resource.OrZero(),
			Status:             al.Status.OrZero(),
			PercentComputeUsed: al.PercentComputeUsed(),
			UpForRenewal:       al.UpForRenewal(),
		}
		if days, ok := al.DaysLeft(); ok {
			s.DaysLeft = &days
		}
		v.Allocations = append(v.Allocations, s)
	}
	return v
}

func (a *App) projectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse projects and manage their members",
	}

	var filter models.ProjectFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List the projects of a user or a unix group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			projects, err := models.ListProjects(cmd.Context(), c, filter)
			if err != nil {
				return err
			}
			out := make([]tas.Record, 0, len(projects))
			for _, p := range projects {
				out = append(out, p.AsDict())
			}
			return a.print(out)
		},
	}
	list.Flags().StringVar(&filter.Username, "username", "", "list projects this user belongs to")
	list.Flags().StringVar(&filter.Group, "group", "", "list projects owning this unix group")
	list.MarkFlagsOneRequired("username", "group")
	list.MarkFlagsMutuallyExclusive("username", "group")

	get := &cobra.Command{
		Use:   "get <project-id>",
		Short: "Show a project with an allocation summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				return err
			}
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			p, err := models.GetProject(cmd.Context(), c, id)
			if err != nil {
				return err
			}
			return a.print(summarize(p))
		},
	}

	users := &cobra.Command{
		Use:   "users <project-id>",
		Short: "List project members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := projectRef(args[0])
			if err != nil {
				return err
			}
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			members, err := p.Users(cmd.Context(), c)
			if err != nil {
				return err
			}
			out := make([]tas.Record, 0, len(members))
			for _, u := range members {
				out = append(out, u.AsDict())
			}
			return a.print(out)
		},
	}

	addUser := &cobra.Command{
		Use:   "add-user <project-id> <username>",
		Short: "Add a user to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := projectRef(args[0])
			if err != nil {
				return err
			}
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			ok, err := p.AddUser(cmd.Context(), c, args[1])
			if err != nil {
				return err
			}
			return a.print(map[string]any{"project": p.ID.OrZero(), "username": args[1], "added": ok})
		},
	}

	removeUser := &cobra.Command{
		Use:   "remove-user <project-id> <username>",
		Short: "Remove a user from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := projectRef(args[0])
			if err != nil {
				return err
			}
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			ok, err := p.RemoveUser(cmd.Context(), c, args[1])
			if err != nil {
				return err
			}
			return a.print(map[string]any{"project": p.ID.OrZero(), "username": args[1], "removed": ok})
		},
	}

	cmd.AddCommand(list, get, users, addUser, removeUser)
	return cmd
}

// projectRef builds an id-only project for the membership operations.
func projectRef(arg string) (*models.Project, error) {
	id, err := parseID("project id", arg)
	if err != nil {
		return nil, err
	}
	return models.NewProject(map[string]any{"id": id})
}
