package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the current session",
	PreRunE: preRunClientE,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(headerStyle.Render("Current Session"))
		fmt.Println()

		if !sessionStore.Authenticated() {
			fmt.Println(infoStyle.Render("Not logged in"))
			return nil
		}

		user := sessionStore.User()
		if user != nil {
			fmt.Printf("User:      %s\n", user.DisplayName())
			if len(user.Email) > 0 {
				fmt.Printf("Email:     %s\n", user.Email)
			}
			if len(user.School) > 0 {
				fmt.Printf("School:    %s\n", user.School)
			}
			if len(user.Subject) > 0 {
				fmt.Printf("Subject:   %s\n", user.Subject)
			}
		}
		fmt.Printf("Endpoint:  %s\n", cfg.GetAPIEndpoint())

		if sessionStore.Transient() {
			fmt.Println(warningStyle.Render("Transient session (will not survive a restart)"))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
