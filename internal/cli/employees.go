package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/ponto/internal/model"
	"github.com/mcoot/ponto/internal/ponto"
)

func newEmployeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"funcionarios"},
		Short:   "Employee management commands (administrators)",
	}

	cmd.AddCommand(newEmployeesListCmd())
	cmd.AddCommand(newEmployeesGetCmd())
	cmd.AddCommand(newEmployeesCreateCmd())
	cmd.AddCommand(newEmployeesUpdateCmd())
	cmd.AddCommand(newEmployeesDeleteCmd())

	return cmd
}

func newEmployeesListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := client.API.ListEmployees(commandContext(cmd))
			if err != nil {
				return err
			}
			out.Print(ponto.FilterByName(employees, filter))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only show employees whose name contains this text")

	return cmd
}

func newEmployeesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an employee and their punches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			employee, err := client.API.GetEmployee(commandContext(cmd), id)
			if err != nil {
				return err
			}
			out.Print(employee)
			return nil
		},
	}
}

func newEmployeesCreateCmd() *cobra.Command {
	var req model.NewEmployee

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Senha == "" {
				var err error
				if req.Senha, err = promptSecret("Password: "); err != nil {
					return err
				}
			}
			if req.Nome == "" || req.Email == "" || req.Senha == "" {
				return fmt.Errorf("--name, --email and a password are required")
			}

			created, err := client.API.CreateEmployee(commandContext(cmd), req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Employee %d registered", created.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Nome, "name", "", "Name (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&req.Senha, "password", "", "Password (prompted if omitted)")
	cmd.Flags().BoolVar(&req.Administrador, "admin", false, "Grant administrator access")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newEmployeesUpdateCmd() *cobra.Command {
	var (
		nome, email, senha string
		admin              bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an employee; only the given fields change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var update model.EmployeeUpdate
			if cmd.Flags().Changed("name") {
				update.Nome = &nome
			}
			if cmd.Flags().Changed("email") {
				update.Email = &email
			}
			if cmd.Flags().Changed("password") {
				update.Senha = &senha
			}
			if cmd.Flags().Changed("admin") {
				update.Administrador = &admin
			}

			if _, err := client.API.UpdateEmployee(commandContext(cmd), id, update); err != nil {
				return err
			}

			out.Success("Employee updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&nome, "name", "", "New name")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&senha, "password", "", "New password (blank keeps the current one)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Administrator access")

	return cmd
}

func newEmployeesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete employee %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					out.PrintMessage("Cancelled")
					return nil
				}
			}

			if err := client.API.DeleteEmployee(commandContext(cmd), id); err != nil {
				return err
			}

			out.Success("Employee deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", s)
	}
	return id, nil
}
