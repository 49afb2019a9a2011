package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gotas/pkg/tas/models"
)

func (a *App) allocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocations",
		Short: "Review allocation requests",
	}

	var (
		status                   string
		compute, memory, storage float64
		summary, reviewer        string
		reviewerID               int64
	)
	approve := &cobra.Command{
		Use:   "approve <allocation-id>",
		Short: "Record a review decision for an allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("allocation id", args[0])
			if err != nil {
				return err
			}
			rec := map[string]any{"id": id}
			switch {
			case strings.EqualFold(status, models.StatusApproved):
				rec["status"] = models.StatusApproved
			case strings.EqualFold(status, models.StatusRejected):
				rec["status"] = models.StatusRejected
			default:
				return fmt.Errorf("status must be %s or %s, got %q", models.StatusApproved, models.StatusRejected, status)
			}
			flags := cmd.Flags()
			if flags.Changed("compute") {
				rec["computeAllocated"] = compute
			}
			if flags.Changed("memory") {
				rec["memoryAllocated"] = memory
			}
			if flags.Changed("storage") {
				rec["storageAllocated"] = storage
			}
			if summary != "" {
				rec["decisionSummary"] = summary
			}
			if reviewer != "" {
				rec["reviewer"] = reviewer
			}
			if reviewerID != 0 {
				rec["reviewerId"] = reviewerID
			}

			al, err := models.NewAllocation(rec)
			if err != nil {
				return err
			}
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			if err := al.Review(cmd.Context(), c); err != nil {
				return err
			}
			return a.print(al.AsDict())
		},
	}
	f := approve.Flags()
	f.StringVar(&status, "status", models.StatusApproved, "decision: Approved or Rejected")
	f.Float64Var(&compute, "compute", 0, "SUs granted")
	f.Float64Var(&memory, "memory", 0, "memory granted")
	f.Float64Var(&storage, "storage", 0, "storage granted")
	f.StringVar(&summary, "summary", "", "decision summary shown to the requestor")
	f.StringVar(&reviewer, "reviewer", "", "reviewer username")
	f.Int64Var(&reviewerID, "reviewer-id", 0, "reviewer user id")

	cmd.AddCommand(approve)
	return cmd
}
