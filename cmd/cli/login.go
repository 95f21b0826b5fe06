package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/teachforge-io/agent/internal/models"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Authenticate with the TeachForge server",
	Long:    "Prompts for credentials and establishes a session with the TeachForge server",
	PreRunE: preRunClientE,
	RunE:    runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {

	// Set up signal handling for graceful cancellation
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nLogin cancelled.")
		cancel()
	}()

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	if len(username) == 0 || len(password) == 0 {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&username),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
			),
		)

		if err := form.Run(); err != nil {
			return fmt.Errorf("login prompt cancelled: %w", err)
		}
	}

	if len(username) == 0 {
		return fmt.Errorf("username is required")
	}

	_, err := apiClient.Login(ctx, models.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		if models.IsUnauthorized(err) {
			fmt.Println(errorStyle.Render("Invalid username or password"))
			return err
		}
		fmt.Println(errorStyle.Render("Login failed"))
		return err
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Login successful!"))
	if user := sessionStore.User(); user != nil {
		fmt.Printf("Signed in as %s\n", user.DisplayName())
	}
	fmt.Println()

	return nil
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Username (prompted when omitted)")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")

	// Add the command to the root
	rootCmd.AddCommand(loginCmd)
}
