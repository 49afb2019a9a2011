package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) institutionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "institutions",
		Aliases: []string{"inst"},
		Short:   "Browse institutions and their departments",
	}

	var directory bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List institutions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			if directory {
				insts, err := c.DirectoryInstitutions(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(insts)
			}
			recs, err := c.Institutions(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(recs)
		},
	}
	list.Flags().BoolVar(&directory, "directory", false, "read the department tree from the SOAP directory service")

	get := &cobra.Command{
		Use:   "get <institution-id>",
		Short: "Show an institution with its departments flattened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("institution id", args[0])
			if err != nil {
				return err
			}
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			inst, err := c.GetInstitution(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(inst)
		},
	}

	var department int64
	departments := &cobra.Command{
		Use:   "departments <institution-id>",
		Short: "List the departments of an institution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("institution id", args[0])
			if err != nil {
				return err
			}
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			if department != 0 {
				dept, err := c.GetDepartment(cmd.Context(), id, department)
				if err != nil {
					return err
				}
				return a.print(dept)
			}
			depts, err := c.GetDepartments(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(depts)
		},
	}
	departments.Flags().Int64Var(&department, "department", 0, "show only this department and its sub-departments")

	cmd.AddCommand(list, get, departments)
	return cmd
}

func (a *App) countriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List countries known to the directory service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			countries, err := c.Countries(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(countries)
		},
	}
}

func (a *App) fieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List fields of science",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			fields, err := c.Fields(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(fields)
		},
	}
}
