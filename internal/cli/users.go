package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gotas/pkg/tas"
	"github.com/dmitrijs2005/gotas/pkg/tas/models"
)

func (a *App) userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Look up and verify user accounts",
	}

	var sel tas.UserSelector
	get := &cobra.Command{
		Use:   "get",
		Short: "Show a user by id, username or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			u, err := models.GetUser(cmd.Context(), c, sel)
			if err != nil {
				return err
			}
			return a.print(u.AsDict())
		},
	}
	get.Flags().Int64Var(&sel.ID, "id", 0, "user id")
	get.Flags().StringVar(&sel.Username, "username", "", "username")
	get.Flags().StringVar(&sel.Email, "email", "", "email address")
	get.MarkFlagsOneRequired("id", "username", "email")
	get.MarkFlagsMutuallyExclusive("id", "username", "email")

	var (
		id          int64
		code        string
		setPassword bool
	)
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Activate an account with its verification code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			u, err := models.NewUser(map[string]any{"id": id})
			if err != nil {
				return err
			}
			var pw []byte
			if setPassword {
				if pw, err = GetNewPassword(a.errOut, "Password: "); err != nil {
					return err
				}
				defer wipe(pw)
			}
			ok, err := u.Verify(cmd.Context(), c, code, string(pw))
			if err != nil {
				return err
			}
			return a.print(map[string]any{"id": id, "verified": ok})
		},
	}
	verify.Flags().Int64Var(&id, "id", 0, "user id")
	verify.Flags().StringVar(&code, "code", "", "verification code")
	verify.Flags().BoolVar(&setPassword, "set-password", false, "prompt for a password to set while verifying")
	_ = verify.MarkFlagRequired("id")
	_ = verify.MarkFlagRequired("code")

	cmd.AddCommand(get, verify)
	return cmd
}
