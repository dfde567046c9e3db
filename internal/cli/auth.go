package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/ponto/internal/model"
)

func newLoginCmd() *cobra.Command {
	var (
		email    string
		password string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			if email == "" {
				remembered, ok, err := client.Session.RememberedEmail(ctx)
				if err != nil {
					return err
				}
				label := "Email: "
				if ok {
					label = fmt.Sprintf("Email [%s]: ", remembered)
				}
				if email, err = prompt(label); err != nil {
					return err
				}
				if email == "" && ok {
					email = remembered
				}
			}
			if password == "" {
				var err error
				if password, err = promptSecret("Password: "); err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}

			profile, err := client.API.Login(ctx, email, password, remember)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Logged in as %s", profile.Nome))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email (defaults to the remembered one)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted if omitted)")
	cmd.Flags().BoolVar(&remember, "remember", false, "Remember the email for the next login")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Session.Logout(commandContext(cmd)); err != nil {
				return err
			}
			out.Success("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := currentProfile(cmd)
			if err != nil {
				return err
			}
			out.Print(profile)
			return nil
		},
	}
}

// currentProfile returns the cached profile, sending the user to login when
// there is no usable session
func currentProfile(cmd *cobra.Command) (model.Profile, error) {
	profile, err := client.Session.CurrentProfile(commandContext(cmd))
	if errors.Is(err, model.ErrNoSession) || errors.Is(err, model.ErrProfileIncomplete) {
		out.Hint("Run `ponto login` to sign in.")
	}
	return profile, err
}
