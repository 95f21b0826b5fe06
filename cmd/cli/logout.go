package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Clear the local session",
	Long:    "Clears the stored session so the next start is unauthenticated. The server is not notified.",
	PreRunE: preRunClientE,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessionStore.ClearAuth(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}

		fmt.Println(successStyle.Render("Logged out"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
