package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gotas/pkg/jobs"
)

func (a *App) jobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Query accounted jobs",
	}

	var q jobs.Query
	list := &cobra.Command{
		Use:   "list",
		Short: "List jobs run on a resource between two dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.jobsClient()
			if err != nil {
				return err
			}
			recs, err := c.GetJobs(cmd.Context(), q)
			if err != nil {
				return err
			}
			return a.print(recs)
		},
	}
	f := list.Flags()
	f.StringVar(&q.Resource, "resource", "", "resource name, e.g. stampede2.tacc.utexas.edu")
	f.StringVar(&q.Start, "start", "", "first day, YYYY-MM-DD")
	f.StringVar(&q.End, "end", "", "last day, YYYY-MM-DD")
	f.Int64Var(&q.AllocationID, "allocation-id", 0, "only jobs charged to this allocation")
	f.StringVar(&q.Username, "username", "", "only jobs of this user")
	f.StringVar(&q.Queue, "queue", "", "only jobs of this queue")
	for _, name := range []string{"resource", "start", "end"} {
		_ = list.MarkFlagRequired(name)
	}

	cmd.AddCommand(list)
	return cmd
}
