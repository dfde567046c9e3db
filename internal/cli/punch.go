package cli

import (
	"github.com/spf13/cobra"
)

func newPunchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "punch",
		Short: "Record a punch for the logged-in employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			profile, err := currentProfile(cmd)
			if err != nil {
				return err
			}

			msg, err := client.API.Punch(ctx, profile.ID)
			if err != nil {
				return err
			}
			out.Success(msg)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the logged-in employee and their punches",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := currentProfile(cmd)
			if err != nil {
				return err
			}

			employee, err := client.API.GetEmployee(commandContext(cmd), profile.ID)
			if err != nil {
				return err
			}
			out.Print(employee)
			return nil
		},
	}
}
