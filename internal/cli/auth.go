package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gotas/pkg/tas/models"
)

var errCredentialsRejected = errors.New("credentials rejected")

func (a *App) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Check user credentials",
	}

	var username string
	login := &cobra.Command{
		Use:   "login",
		Short: "Check a username and password against TAS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			if username == "" {
				if username, err = GetSimpleText(a.reader, "Username", a.errOut); err != nil {
					return err
				}
			}
			pw, err := GetPassword(a.errOut, "Password: ")
			if err != nil {
				return err
			}
			defer wipe(pw)

			ok, err := c.Authenticate(cmd.Context(), username, string(pw))
			if err != nil {
				return err
			}
			if err := a.print(map[string]any{"username": username, "authenticated": ok}); err != nil {
				return err
			}
			if !ok {
				return errCredentialsRejected
			}
			return nil
		},
	}
	login.Flags().StringVarP(&username, "username", "u", "", "username; prompted when omitted")
	cmd.AddCommand(login)
	return cmd
}

func (a *App) passwordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Reset or change a user's password",
	}

	var username, code, source string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Email a password reset code to the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			u, err := models.NewUser(map[string]any{"username": username})
			if err != nil {
				return err
			}
			res, err := u.RequestPasswordReset(cmd.Context(), c, source)
			if err != nil {
				return err
			}
			return a.print(map[string]any{"username": username, "result": res})
		},
	}

	confirm := &cobra.Command{
		Use:   "confirm",
		Short: "Set a new password using an emailed reset code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			u, err := models.NewUser(map[string]any{"username": username})
			if err != nil {
				return err
			}
			pw, err := GetNewPassword(a.errOut, "New password: ")
			if err != nil {
				return err
			}
			defer wipe(pw)

			ok, err := u.ConfirmPasswordReset(cmd.Context(), c, code, string(pw), source)
			if err != nil {
				return err
			}
			return a.print(map[string]any{"username": username, "confirmed": ok})
		},
	}

	change := &cobra.Command{
		Use:   "change",
		Short: "Change a password given the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.tasClient()
			if err != nil {
				return err
			}
			current, err := GetPassword(a.errOut, "Current password: ")
			if err != nil {
				return err
			}
			defer wipe(current)
			pw, err := GetNewPassword(a.errOut, "New password: ")
			if err != nil {
				return err
			}
			defer wipe(pw)

			ok, err := c.ChangePassword(cmd.Context(), username, string(current), string(pw))
			if err != nil {
				return err
			}
			return a.print(map[string]any{"username": username, "changed": ok})
		},
	}

	for _, sub := range []*cobra.Command{reset, confirm, change} {
		sub.Flags().StringVarP(&username, "username", "u", "", "account username")
		_ = sub.MarkFlagRequired("username")
	}
	for _, sub := range []*cobra.Command{reset, confirm} {
		sub.Flags().StringVar(&source, "source", "", "portal the request originates from")
	}
	confirm.Flags().StringVar(&code, "code", "", "reset code from the email")
	_ = confirm.MarkFlagRequired("code")

	cmd.AddCommand(reset, confirm, change)
	return cmd
}
