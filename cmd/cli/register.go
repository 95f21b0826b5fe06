package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/teachforge-io/agent/internal/models"
)

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create a new teacher account",
	PreRunE: preRunClientE,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req models.RegisterRequest

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&req.Username),
				huh.NewInput().
					Title("Email").
					Value(&req.Email),
				huh.NewInput().
					Title("Full name").
					Value(&req.FullName),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&req.Password),
			),
		)

		if err := form.Run(); err != nil {
			return fmt.Errorf("registration cancelled: %w", err)
		}

		user, err := apiClient.Register(commandContext(cmd), req)
		if err != nil {
			fmt.Println(errorStyle.Render("Registration failed"))
			return err
		}

		fmt.Println(successStyle.Render("Account created!"))
		fmt.Printf("Run 'teachforge login' to sign in as %s\n", user.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
