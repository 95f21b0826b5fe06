//go:build devbuild

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teachforge-io/agent/internal/models"
)

// dev-login injects a session without backend validation. The session is
// transient: it is never persisted and is exempt from startup verification,
// so a new process starts unauthenticated again. Only compiled into
// development builds (-tags devbuild); release binaries do not carry this
// command at all.
var devLoginCmd = &cobra.Command{
	Use:     "dev-login",
	Short:   "Inject a local developer session (development builds only)",
	Hidden:  true,
	PreRunE: preRunClientE,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessionStore.MarkTransient(true); err != nil {
			return err
		}
		if err := sessionStore.SetAuth("dev-token", &models.User{Username: "dev"}); err != nil {
			return err
		}

		fmt.Println(warningStyle.Render("Developer session injected (this process only)"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devLoginCmd)
}
